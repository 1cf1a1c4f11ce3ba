package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

const FileName = "config.yaml"

type Config struct {
	Artifacts struct {
		Dir        string `yaml:"dir"`
		ModelFile  string `yaml:"model_file"`
		ScalerFile string `yaml:"scaler_file"`
		ModelType  string `yaml:"model_type"`
		ScalerType string `yaml:"scaler_type"`
	} `yaml:"artifacts"`
	Http struct {
		Port    int           `yaml:"port"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"http"`
	Log struct {
		Level       string `yaml:"level"`
		File        string `yaml:"file"`
		MaxSizeMB   int    `yaml:"max_size_mb"`
		MaxBackups  int    `yaml:"max_backups"`
		MaxAgeDays  int    `yaml:"max_age_days"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

func Default() *Config {
	var config Config
	config.Artifacts.Dir = "artifacts"
	config.Artifacts.ModelFile = "model.json"
	config.Artifacts.ScalerFile = "scaler.json"
	config.Artifacts.ModelType = "logistic_regression"
	config.Artifacts.ScalerType = "standard"
	config.Http.Port = 8501
	config.Http.Timeout = 15 * time.Second
	config.Log.Level = "info"
	config.Log.MaxSizeMB = 50
	config.Log.MaxBackups = 3
	config.Log.MaxAgeDays = 28
	return &config
}

// Find looks for config.yaml in the working directory, then in its parent.
func Find() (string, bool) {
	for _, path := range []string{FileName, filepath.Join("..", FileName)} {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Load decodes the file over the defaults. Relative artifact and log paths are
// resolved against the directory holding the file.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	config.resolve(filepath.Dir(path))
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (c *Config) resolve(base string) {
	if !filepath.IsAbs(c.Artifacts.Dir) {
		c.Artifacts.Dir = filepath.Join(base, c.Artifacts.Dir)
	}
	if c.Log.File != "" && !filepath.IsAbs(c.Log.File) {
		c.Log.File = filepath.Join(base, c.Log.File)
	}
}

func (c *Config) Validate() error {
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.Http.Port)
	}
	if c.Http.Timeout <= 0 {
		return fmt.Errorf("invalid http timeout %s", c.Http.Timeout)
	}
	if c.Artifacts.ModelFile == "" || c.Artifacts.ScalerFile == "" {
		return errors.New("artifact file names are required")
	}
	return nil
}

func (c *Config) ModelPath() string {
	return filepath.Join(c.Artifacts.Dir, c.Artifacts.ModelFile)
}

func (c *Config) ScalerPath() string {
	return filepath.Join(c.Artifacts.Dir, c.Artifacts.ScalerFile)
}

// Watch reloads the file whenever it is written or recreated and passes the new
// config to onChange. It watches the parent directory so editors that replace the
// file on save are still picked up. The watcher stops when ctx is done.
func Watch(ctx context.Context, path string, logger *zap.Logger, onChange func(*Config)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				config, err := Load(abs)
				if err != nil {
					logger.Warn("config reload failed", zap.String("path", abs), zap.Error(err))
					continue
				}
				onChange(config)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
