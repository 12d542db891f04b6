// Package carprice estimates the resale price of a used car.
package carprice

import (
	"fmt"

	"github.com/go-sod/insight/internal/category"
	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/predictor"
)

const Component = "carprice"

type Estimate struct {
	Price     float64        `json:"price"`
	Formatted string         `json:"formatted"`
	Vector    feature.Vector `json:"vector"`
}

type Service struct {
	model predictor.Regressor
}

// NewService fails when the model declares a feature order other than
// feature.CarSchemaV1.
func NewService(model predictor.Regressor) (*Service, error) {
	if err := feature.CarSchemaV1.Check(model.Features()); err != nil {
		return nil, err
	}
	return &Service{model: model}, nil
}

func (s *Service) Predict(in feature.CarInput) (*Estimate, error) {
	vec, err := feature.AssembleCar(in)
	if err != nil {
		return nil, err
	}
	price, err := s.model.Predict(vec)
	if err != nil {
		return nil, fmt.Errorf("car price model: %w", err)
	}
	return &Estimate{
		Price:     price,
		Formatted: FormatPrice(price),
		Vector:    vec,
	}, nil
}

// FormatPrice renders a price in lakhs of rupees.
func FormatPrice(price float64) string {
	return fmt.Sprintf("₹ %.2f Lakhs", price)
}

// Options lists the accepted labels of every categorical input.
func Options() map[string][]string {
	out := map[string][]string{}
	for _, m := range []category.Mapping{
		category.FuelType,
		category.SellerType,
		category.Transmission,
		category.Owner,
	} {
		out[m.Field()] = m.Labels()
	}
	return out
}
