package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
artifacts:
  dir: models
  model_type: decision_tree
http:
  port: 9000
  timeout: 5s
log:
  level: debug
  file: logs/heartrisk.log
`)
	config, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Port != 9000 {
		t.Errorf("expected port 9000, got %d", config.Http.Port)
	}
	if config.Http.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", config.Http.Timeout)
	}
	if config.Artifacts.ModelType != "decision_tree" {
		t.Errorf("unexpected model type %q", config.Artifacts.ModelType)
	}
	if config.Artifacts.ScalerType != "standard" {
		t.Errorf("expected default scaler type, got %q", config.Artifacts.ScalerType)
	}
	if config.ModelPath() != filepath.Join(dir, "models", "model.json") {
		t.Errorf("unexpected model path %s", config.ModelPath())
	}
	if config.ScalerPath() != filepath.Join(dir, "models", "scaler.json") {
		t.Errorf("unexpected scaler path %s", config.ScalerPath())
	}
	if config.Log.File != filepath.Join(dir, "logs", "heartrisk.log") {
		t.Errorf("unexpected log file %s", config.Log.File)
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	config, err := Load(writeConfig(t, dir, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Port != Default().Http.Port {
		t.Errorf("expected default port, got %d", config.Http.Port)
	}
	if config.Artifacts.Dir != filepath.Join(dir, "artifacts") {
		t.Errorf("unexpected artifacts dir %s", config.Artifacts.Dir)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "http:\n  port: 70000\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), FileName)); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "log:\n  level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	if err := Watch(ctx, path, zap.NewNop(), func(c *Config) { changes <- c }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeConfig(t, dir, "log:\n  level: debug\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case config := <-changes:
			if config.Log.Level == "debug" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for config reload")
		}
	}
}
