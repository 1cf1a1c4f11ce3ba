package ml

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is a fitted binary linear classifier. The sigmoid of the
// decision function is the probability of classes[1].
type LogisticRegression struct {
	classes   [2]int
	coef      *mat.VecDense
	intercept float64
}

type logisticRegressionFile struct {
	Classes   []int     `json:"classes"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func NewLogisticRegression(classes []int, coef []float64, intercept float64) (*LogisticRegression, error) {
	order, err := parseClasses(classes)
	if err != nil {
		return nil, err
	}
	if len(coef) == 0 {
		return nil, fmt.Errorf("%w: empty coefficients", ErrInvalidArtifact)
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, fmt.Errorf("%w: intercept is not finite", ErrInvalidArtifact)
	}
	return &LogisticRegression{
		classes:   order,
		coef:      mat.NewVecDense(len(coef), append([]float64(nil), coef...)),
		intercept: intercept,
	}, nil
}

func (lr *LogisticRegression) Load(path string) error {
	var file logisticRegressionFile
	if err := readArtifact(path, &file); err != nil {
		return err
	}
	loaded, err := NewLogisticRegression(file.Classes, file.Coef, file.Intercept)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	*lr = *loaded
	return nil
}

func (lr *LogisticRegression) Features() int {
	if lr.coef == nil {
		return 0
	}
	return lr.coef.Len()
}

func (lr *LogisticRegression) Predict(features []float64) (int, error) {
	proba, err := lr.PredictProba(features)
	if err != nil {
		return 0, err
	}
	return argmax(proba), nil
}

func (lr *LogisticRegression) PredictProba(features []float64) ([2]float64, error) {
	if lr.coef == nil {
		return [2]float64{}, errors.New("logistic regression not loaded")
	}
	if err := checkShape(features, lr.coef.Len()); err != nil {
		return [2]float64{}, err
	}
	x := mat.NewVecDense(len(features), append([]float64(nil), features...))
	p := sigmoid(mat.Dot(lr.coef, x) + lr.intercept)
	return byLabel(lr.classes, [2]float64{1 - p, p}), nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
