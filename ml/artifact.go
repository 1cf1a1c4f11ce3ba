package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

func readArtifact(path string, v interface{}) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, path, err)
	}
	return nil
}

func checkShape(features []float64, want int) error {
	if len(features) != want {
		return fmt.Errorf("%w: expected %d features, got %d", ErrShape, want, len(features))
	}
	for i, value := range features {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%w: feature %d is not a finite number", ErrShape, i)
		}
	}
	return nil
}

// checkFeatureNames accepts an empty list; artifacts exported without names are
// trusted to follow FeatureNames order.
func checkFeatureNames(names []string) error {
	if len(names) == 0 {
		return nil
	}
	want := FeatureNames()
	if len(names) != len(want) {
		return fmt.Errorf("%w: expected %d feature names, got %d", ErrInvalidArtifact, len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			return fmt.Errorf("%w: feature %d is %q, expected %q", ErrInvalidArtifact, i, names[i], want[i])
		}
	}
	return nil
}

// parseClasses validates the label order stored with a classifier. An absent list
// means [0, 1].
func parseClasses(classes []int) ([2]int, error) {
	if len(classes) == 0 {
		return [2]int{0, 1}, nil
	}
	if len(classes) != 2 {
		return [2]int{}, fmt.Errorf("%w: expected 2 classes, got %d", ErrInvalidArtifact, len(classes))
	}
	if (classes[0] == 0 && classes[1] == 1) || (classes[0] == 1 && classes[1] == 0) {
		return [2]int{classes[0], classes[1]}, nil
	}
	return [2]int{}, fmt.Errorf("%w: classes must be 0 and 1, got %v", ErrInvalidArtifact, classes)
}

// byLabel reorders probabilities given in artifact class order into label order.
func byLabel(classes [2]int, proba [2]float64) [2]float64 {
	var out [2]float64
	out[classes[0]] = proba[0]
	out[classes[1]] = proba[1]
	return out
}

// argmax breaks ties towards label 0.
func argmax(proba [2]float64) int {
	if proba[1] > proba[0] {
		return 1
	}
	return 0
}
