package ml

import "errors"

var (
	ErrArtifactsMissing  = errors.New("model artifacts missing, train first")
	ErrShape             = errors.New("feature vector shape mismatch")
	ErrInvalidArtifact   = errors.New("invalid model artifact")
	ErrUnsupportedModel  = errors.New("unsupported model type")
	ErrUnsupportedScaler = errors.New("unsupported scaler type")
)

// Scaler applies a pre-fitted per-feature transform. Parameters are frozen at load
// time and never refit.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
}

// Classifier maps a scaled feature vector to a label and a probability pair.
// PredictProba is indexed by label: index 0 is low risk, index 1 is high risk.
type Classifier interface {
	Predict(features []float64) (int, error)
	PredictProba(features []float64) ([2]float64, error)
}

type artifact interface {
	Load(path string) error
}

// featureCounter reports how many input features an adapter was fitted on.
type featureCounter interface {
	Features() int
}
