// Package sales predicts product sales from advertising budgets.
package sales

import (
	"fmt"

	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/predictor"
)

const Component = "sales"

type Estimate struct {
	Sales     float64        `json:"sales"`
	Formatted string         `json:"formatted"`
	Vector    feature.Vector `json:"vector"`
}

type Service struct {
	model predictor.Regressor
}

func NewService(model predictor.Regressor) (*Service, error) {
	if err := feature.SalesSchemaV1.Check(model.Features()); err != nil {
		return nil, err
	}
	return &Service{model: model}, nil
}

func (s *Service) Predict(in feature.SalesInput) (*Estimate, error) {
	vec, err := feature.AssembleSales(in)
	if err != nil {
		return nil, err
	}
	v, err := s.model.Predict(vec)
	if err != nil {
		return nil, fmt.Errorf("sales model: %w", err)
	}
	return &Estimate{
		Sales:     v,
		Formatted: fmt.Sprintf("%.2f", v),
		Vector:    vec,
	}, nil
}
