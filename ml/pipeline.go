package ml

import (
	"errors"
	"fmt"
)

// Prediction is the outcome of one inference call. Probabilities is indexed by label.
type Prediction struct {
	Label         int
	Probabilities [2]float64
}

// Confidence is the probability of the predicted label.
func (p Prediction) Confidence() float64 {
	return p.Probabilities[p.Label]
}

func (p Prediction) HighRisk() bool {
	return p.Label == 1
}

// Pipeline scales a feature vector and classifies it. It holds no per-call state and
// is safe for concurrent use as long as the artifacts are not mutated.
type Pipeline struct {
	scaler     Scaler
	classifier Classifier
}

func NewPipeline(artifacts *Artifacts) (*Pipeline, error) {
	if artifacts == nil || artifacts.Scaler == nil || artifacts.Classifier == nil {
		return nil, errors.New("pipeline needs a scaler and a classifier")
	}
	return &Pipeline{scaler: artifacts.Scaler, classifier: artifacts.Classifier}, nil
}

func (p *Pipeline) Predict(features []float64) (Prediction, error) {
	if err := checkShape(features, FeatureCount); err != nil {
		return Prediction{}, err
	}
	scaled, err := p.scaler.Transform(features)
	if err != nil {
		return Prediction{}, fmt.Errorf("scale features: %w", err)
	}
	label, err := p.classifier.Predict(scaled)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}
	proba, err := p.classifier.PredictProba(scaled)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict probability: %w", err)
	}
	if label != 0 && label != 1 {
		return Prediction{}, fmt.Errorf("%w: classifier returned label %d", ErrInvalidArtifact, label)
	}
	return Prediction{Label: label, Probabilities: proba}, nil
}
