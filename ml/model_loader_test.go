package ml

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeArtifact(t *testing.T, dir, name string, v interface{}) string {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testScalerFile() standardScalerFile {
	return standardScalerFile{
		Mean:         []float64{60.8, 0.43, 581.8, 0.42, 38.1, 0.35, 263358.0, 1.39, 136.6, 0.65, 0.32},
		Scale:        []float64{11.9, 0.5, 968.7, 0.49, 11.8, 0.48, 97641.0, 1.03, 4.4, 0.48, 0.47},
		FeatureNames: FeatureNames(),
	}
}

func testModelFile() logisticRegressionFile {
	return logisticRegressionFile{
		Classes:   []int{0, 1},
		Coef:      []float64{0.68, 0.05, 0.12, 0.03, -0.91, 0.09, -0.06, 0.72, -0.27, -0.08, 0.02},
		Intercept: -0.93,
	}
}

func writeTestArtifacts(t *testing.T) ArtifactConfig {
	t.Helper()
	dir := t.TempDir()
	return ArtifactConfig{
		ModelType:  ModelLogisticRegression,
		ModelPath:  writeArtifact(t, dir, "model.json", testModelFile()),
		ScalerType: ScalerStandard,
		ScalerPath: writeArtifact(t, dir, "scaler.json", testScalerFile()),
	}
}

func TestLoadArtifacts(t *testing.T) {
	cfg := writeTestArtifacts(t)
	artifacts, err := LoadArtifacts(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artifacts.Scaler == nil || artifacts.Classifier == nil {
		t.Fatal("expected scaler and classifier")
	}
}

func TestLoadArtifactsMissing(t *testing.T) {
	cfg := writeTestArtifacts(t)

	missingModel := cfg
	missingModel.ModelPath = filepath.Join(t.TempDir(), "model.json")
	if _, err := LoadArtifacts(missingModel); !errors.Is(err, ErrArtifactsMissing) {
		t.Fatalf("expected ErrArtifactsMissing for missing model, got %v", err)
	}

	missingScaler := cfg
	missingScaler.ScalerPath = filepath.Join(t.TempDir(), "scaler.json")
	if _, err := LoadArtifacts(missingScaler); !errors.Is(err, ErrArtifactsMissing) {
		t.Fatalf("expected ErrArtifactsMissing for missing scaler, got %v", err)
	}
}

func TestLoadArtifactsUnsupportedType(t *testing.T) {
	cfg := writeTestArtifacts(t)
	cfg.ModelType = "random_forest"
	if _, err := LoadArtifacts(cfg); !errors.Is(err, ErrUnsupportedModel) {
		t.Fatalf("expected ErrUnsupportedModel, got %v", err)
	}

	cfg = writeTestArtifacts(t)
	cfg.ScalerType = "robust"
	if _, err := LoadArtifacts(cfg); !errors.Is(err, ErrUnsupportedScaler) {
		t.Fatalf("expected ErrUnsupportedScaler, got %v", err)
	}
}

func TestLoadArtifactsMalformed(t *testing.T) {
	cfg := writeTestArtifacts(t)
	if err := os.WriteFile(cfg.ModelPath, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadArtifacts(cfg); !errors.Is(err, ErrInvalidArtifact) {
		t.Fatalf("expected ErrInvalidArtifact, got %v", err)
	}
}

func TestLoadDecisionTreeModel(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "tree.json", decisionTreeFile{
		Classes: []int{0, 1},
		Nodes:   testTreeNodes(),
	})
	model, err := LoadModel(ModelDecisionTree, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := model.(*DecisionTree); !ok {
		t.Fatalf("expected *DecisionTree, got %T", model)
	}
}

func TestLoadArtifactsRejectsWrongArity(t *testing.T) {
	scaler := testScalerFile()
	model := testModelFile()

	tests := []struct {
		name       string
		modelType  string
		model      interface{}
		scalerType string
		scaler     interface{}
	}{
		{
			name:       "short scaler",
			modelType:  ModelLogisticRegression,
			model:      model,
			scalerType: ScalerStandard,
			scaler:     standardScalerFile{Mean: scaler.Mean[:10], Scale: scaler.Scale[:10]},
		},
		{
			name:       "long scaler",
			modelType:  ModelLogisticRegression,
			model:      model,
			scalerType: ScalerStandard,
			scaler:     standardScalerFile{Mean: append(scaler.Mean, 1), Scale: append(scaler.Scale, 1)},
		},
		{
			name:       "short min-max scaler",
			modelType:  ModelLogisticRegression,
			model:      model,
			scalerType: ScalerMinMax,
			scaler:     minMaxScalerFile{DataMin: make([]float64, 5), DataMax: []float64{1, 1, 1, 1, 1}},
		},
		{
			name:       "short coefficients",
			modelType:  ModelLogisticRegression,
			model:      logisticRegressionFile{Classes: []int{0, 1}, Coef: model.Coef[:7], Intercept: model.Intercept},
			scalerType: ScalerStandard,
			scaler:     scaler,
		},
		{
			name:       "tree with mismatched n_features",
			modelType:  ModelDecisionTree,
			model:      decisionTreeFile{Classes: []int{0, 1}, NFeatures: 12, Nodes: testTreeNodes()},
			scalerType: ScalerStandard,
			scaler:     scaler,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := ArtifactConfig{
				ModelType:  tt.modelType,
				ModelPath:  writeArtifact(t, dir, "model.json", tt.model),
				ScalerType: tt.scalerType,
				ScalerPath: writeArtifact(t, dir, "scaler.json", tt.scaler),
			}
			artifacts, err := LoadArtifacts(cfg)
			if !errors.Is(err, ErrInvalidArtifact) {
				t.Fatalf("expected ErrInvalidArtifact, got %v", err)
			}
			if artifacts != nil {
				t.Fatal("expected no artifacts")
			}
		})
	}
}

func TestLoadArtifactsDecisionTree(t *testing.T) {
	dir := t.TempDir()
	cfg := ArtifactConfig{
		ModelType:  ModelDecisionTree,
		ModelPath:  writeArtifact(t, dir, "model.json", decisionTreeFile{Classes: []int{0, 1}, Nodes: testTreeNodes()}),
		ScalerType: ScalerStandard,
		ScalerPath: writeArtifact(t, dir, "scaler.json", testScalerFile()),
	}
	if _, err := LoadArtifacts(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
