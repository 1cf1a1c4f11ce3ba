package ml

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StandardScaler standardizes each feature as (x - mean) / scale.
type StandardScaler struct {
	mean  *mat.VecDense
	scale *mat.VecDense
}

type standardScalerFile struct {
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
	FeatureNames []string  `json:"feature_names,omitempty"`
}

// NewStandardScaler copies the fitted parameters. A zero scale entry is treated as 1.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, fmt.Errorf("%w: empty mean", ErrInvalidArtifact)
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("%w: mean has %d entries, scale has %d", ErrInvalidArtifact, len(mean), len(scale))
	}
	scales := make([]float64, len(scale))
	for i, v := range scale {
		if v == 0 {
			v = 1
		}
		scales[i] = v
	}
	return &StandardScaler{
		mean:  mat.NewVecDense(len(mean), append([]float64(nil), mean...)),
		scale: mat.NewVecDense(len(scales), scales),
	}, nil
}

func (s *StandardScaler) Load(path string) error {
	var file standardScalerFile
	if err := readArtifact(path, &file); err != nil {
		return err
	}
	if err := checkFeatureNames(file.FeatureNames); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	loaded, err := NewStandardScaler(file.Mean, file.Scale)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	*s = *loaded
	return nil
}

func (s *StandardScaler) Features() int {
	if s.mean == nil {
		return 0
	}
	return s.mean.Len()
}

func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if s.mean == nil {
		return nil, errors.New("standard scaler not loaded")
	}
	if err := checkShape(features, s.mean.Len()); err != nil {
		return nil, err
	}
	out := append([]float64(nil), features...)
	x := mat.NewVecDense(len(out), out)
	x.SubVec(x, s.mean)
	x.DivElemVec(x, s.scale)
	return out, nil
}

// MinMaxScaler maps each feature from its fitted [min, max] onto the feature range.
type MinMaxScaler struct {
	scale  *mat.VecDense
	offset *mat.VecDense
}

type minMaxScalerFile struct {
	DataMin      []float64 `json:"data_min"`
	DataMax      []float64 `json:"data_max"`
	FeatureRange []float64 `json:"feature_range,omitempty"`
	FeatureNames []string  `json:"feature_names,omitempty"`
}

func NewMinMaxScaler(dataMin, dataMax []float64, featureRange [2]float64) (*MinMaxScaler, error) {
	if len(dataMin) == 0 {
		return nil, fmt.Errorf("%w: empty data_min", ErrInvalidArtifact)
	}
	if len(dataMin) != len(dataMax) {
		return nil, fmt.Errorf("%w: data_min has %d entries, data_max has %d", ErrInvalidArtifact, len(dataMin), len(dataMax))
	}
	lo, hi := featureRange[0], featureRange[1]
	if hi <= lo {
		return nil, fmt.Errorf("%w: feature range [%g, %g] is empty", ErrInvalidArtifact, lo, hi)
	}

	scale := make([]float64, len(dataMin))
	offset := make([]float64, len(dataMin))
	for i := range dataMin {
		span := dataMax[i] - dataMin[i]
		if span < 0 {
			return nil, fmt.Errorf("%w: feature %d has data_max %g below data_min %g", ErrInvalidArtifact, i, dataMax[i], dataMin[i])
		}
		if span == 0 {
			span = 1
		}
		scale[i] = (hi - lo) / span
		offset[i] = lo - dataMin[i]*scale[i]
	}
	return &MinMaxScaler{
		scale:  mat.NewVecDense(len(scale), scale),
		offset: mat.NewVecDense(len(offset), offset),
	}, nil
}

func (s *MinMaxScaler) Load(path string) error {
	var file minMaxScalerFile
	if err := readArtifact(path, &file); err != nil {
		return err
	}
	if err := checkFeatureNames(file.FeatureNames); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	featureRange := [2]float64{0, 1}
	if len(file.FeatureRange) != 0 {
		if len(file.FeatureRange) != 2 {
			return fmt.Errorf("%s: %w: feature_range needs 2 values", path, ErrInvalidArtifact)
		}
		featureRange = [2]float64{file.FeatureRange[0], file.FeatureRange[1]}
	}
	loaded, err := NewMinMaxScaler(file.DataMin, file.DataMax, featureRange)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	*s = *loaded
	return nil
}

func (s *MinMaxScaler) Features() int {
	if s.scale == nil {
		return 0
	}
	return s.scale.Len()
}

func (s *MinMaxScaler) Transform(features []float64) ([]float64, error) {
	if s.scale == nil {
		return nil, errors.New("min-max scaler not loaded")
	}
	if err := checkShape(features, s.scale.Len()); err != nil {
		return nil, err
	}
	out := append([]float64(nil), features...)
	x := mat.NewVecDense(len(out), out)
	x.MulElemVec(x, s.scale)
	x.AddVec(x, s.offset)
	return out, nil
}
