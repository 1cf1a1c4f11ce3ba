package ml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	ModelLogisticRegression = "logistic_regression"
	ModelDecisionTree       = "decision_tree"

	ScalerStandard = "standard"
	ScalerMinMax   = "minmax"
)

// ArtifactConfig names the two artifact files and the format of each.
type ArtifactConfig struct {
	ModelType  string
	ModelPath  string
	ScalerType string
	ScalerPath string
}

// Artifacts holds the loaded scaler and classifier. Both are read-only after load.
type Artifacts struct {
	Scaler     Scaler
	Classifier Classifier
}

func LoadModel(modelType, path string) (Classifier, error) {
	var model interface {
		Classifier
		artifact
	}
	switch modelType {
	case ModelLogisticRegression:
		model = &LogisticRegression{}
	case ModelDecisionTree:
		model = &DecisionTree{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelType)
	}
	if err := model.Load(path); err != nil {
		return nil, err
	}
	return model, nil
}

func LoadScaler(scalerType, path string) (Scaler, error) {
	var scaler interface {
		Scaler
		artifact
	}
	switch scalerType {
	case ScalerStandard:
		scaler = &StandardScaler{}
	case ScalerMinMax:
		scaler = &MinMaxScaler{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScaler, scalerType)
	}
	if err := scaler.Load(path); err != nil {
		return nil, err
	}
	return scaler, nil
}

// LoadArtifacts checks that both files exist before decoding either of them, so a
// missing artifact is always reported as ErrArtifactsMissing.
func LoadArtifacts(cfg ArtifactConfig) (*Artifacts, error) {
	for _, path := range []string{cfg.ModelPath, cfg.ScalerPath} {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s not found", ErrArtifactsMissing, path)
			}
			return nil, err
		}
	}

	scaler, err := LoadScaler(cfg.ScalerType, cfg.ScalerPath)
	if err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}
	model, err := LoadModel(cfg.ModelType, cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if err := checkArity(cfg.ScalerPath, scaler); err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}
	if err := checkArity(cfg.ModelPath, model); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return &Artifacts{Scaler: scaler, Classifier: model}, nil
}

// checkArity rejects artifacts fitted on anything other than FeatureCount inputs, so
// a mismatched file fails at startup instead of on every request.
func checkArity(path string, v interface{}) error {
	counter, ok := v.(featureCounter)
	if !ok {
		return nil
	}
	if n := counter.Features(); n != FeatureCount {
		return fmt.Errorf("%w: %s expects %d features, need %d", ErrInvalidArtifact, path, n, FeatureCount)
	}
	return nil
}
