// Package linear scores linear regression artifacts.
package linear

import (
	"errors"
	"fmt"

	"github.com/go-sod/insight/internal/artifact"
	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/predictor"
	"gonum.org/v1/gonum/floats"
)

var _ predictor.Regressor = (*Regression)(nil)

var ErrNoCoefficients = errors.New("linear model has no coefficients")

// Payload is the artifact body of a fitted linear model.
type Payload struct {
	Features  []string  `json:"features"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

type Regression struct {
	features  []string
	coef      []float64
	intercept float64
}

func New(p Payload) (*Regression, error) {
	if len(p.Coef) == 0 {
		return nil, ErrNoCoefficients
	}
	if len(p.Features) > 0 && len(p.Features) != len(p.Coef) {
		return nil, fmt.Errorf("linear model declares %d features and %d coefficients", len(p.Features), len(p.Coef))
	}
	coef := make([]float64, len(p.Coef))
	copy(coef, p.Coef)
	return &Regression{features: p.Features, coef: coef, intercept: p.Intercept}, nil
}

// FromArtifact decodes a KindLinearRegression artifact.
func FromArtifact(a artifact.Artifact) (*Regression, error) {
	if err := a.Expect(artifact.KindLinearRegression); err != nil {
		return nil, err
	}
	var p Payload
	if err := a.Unmarshal(&p); err != nil {
		return nil, err
	}
	return New(p)
}

func (r *Regression) Predict(vec feature.Vector) (float64, error) {
	if err := predictor.CheckDimensions(vec, len(r.coef)); err != nil {
		return 0, err
	}
	return floats.Dot(r.coef, vec.Points()) + r.intercept, nil
}

func (r *Regression) Features() []string {
	return r.features
}
