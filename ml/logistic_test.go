package ml

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestLogisticRegressionProbabilities(t *testing.T) {
	model, err := NewLogisticRegression([]int{0, 1}, []float64{1, 0}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	proba, err := model.PredictProba([]float64{2, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 1 / (1 + math.Exp(-2))
	if math.Abs(proba[1]-want) > 1e-12 {
		t.Fatalf("expected p1 %v, got %v", want, proba[1])
	}
	label, err := model.Predict([]float64{2, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 1 {
		t.Fatalf("expected label 1, got %d", label)
	}
}

func TestLogisticRegressionTieIsLowRisk(t *testing.T) {
	model, err := NewLogisticRegression(nil, []float64{0, 0}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	label, err := model.Predict([]float64{3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 0 {
		t.Fatalf("expected label 0 on a tie, got %d", label)
	}
}

func TestLogisticRegressionReversedClasses(t *testing.T) {
	model, err := NewLogisticRegression([]int{1, 0}, []float64{1}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	proba, err := model.PredictProba([]float64{3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The sigmoid is the probability of classes[1], which is label 0 here.
	if proba[0] <= proba[1] {
		t.Fatalf("expected label 0 to dominate, got %v", proba)
	}
}

func TestLogisticRegressionRejectsClasses(t *testing.T) {
	if _, err := NewLogisticRegression([]int{0, 2}, []float64{1}, 0); !errors.Is(err, ErrInvalidArtifact) {
		t.Fatalf("expected ErrInvalidArtifact, got %v", err)
	}
	if _, err := NewLogisticRegression([]int{0, 1, 2}, []float64{1}, 0); !errors.Is(err, ErrInvalidArtifact) {
		t.Fatalf("expected ErrInvalidArtifact, got %v", err)
	}
}

func TestLogisticRegressionLabelMatchesProbabilities(t *testing.T) {
	file := testModelFile()
	model, err := NewLogisticRegression(file.Classes, file.Coef, file.Intercept)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		x := make([]float64, FeatureCount)
		for j := range x {
			x[j] = rnd.NormFloat64() * 3
		}
		proba, err := model.PredictProba(x)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(proba[0]+proba[1]-1) > 1e-6 {
			t.Fatalf("probabilities do not sum to 1: %v", proba)
		}
		label, err := model.Predict(x)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if label != argmax(proba) {
			t.Fatalf("label %d inconsistent with %v", label, proba)
		}
	}
}
