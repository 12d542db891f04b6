package feature

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-sod/insight/internal/category"
)

const (
	MinCarYear = 1990
	MaxCarYear = 2025
)

var ErrOutOfRange = errors.New("value out of range")

// RangeError names the offending input field.
type RangeError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %v %s", e.Field, e.Value, e.Reason)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

type CarInput struct {
	Year         int
	PresentPrice float64
	KmsDriven    float64
	Mileage      float64
	FuelType     string
	SellerType   string
	Transmission string
	Owner        string
}

// AssembleCar builds a CarSchemaV1 vector:
// [year, present_price, kms, fuel, seller, transmission, owner, mileage].
func AssembleCar(in CarInput) (Vector, error) {
	if in.Year < MinCarYear || in.Year > MaxCarYear {
		return nil, &RangeError{
			Field:  "year",
			Value:  float64(in.Year),
			Reason: fmt.Sprintf("must be between %d and %d", MinCarYear, MaxCarYear),
		}
	}
	if err := nonNegative("presentPrice", in.PresentPrice); err != nil {
		return nil, err
	}
	if err := nonNegative("kmsDriven", in.KmsDriven); err != nil {
		return nil, err
	}
	if err := nonNegative("mileage", in.Mileage); err != nil {
		return nil, err
	}

	fuel, err := category.FuelType.Encode(in.FuelType)
	if err != nil {
		return nil, err
	}
	seller, err := category.SellerType.Encode(in.SellerType)
	if err != nil {
		return nil, err
	}
	transmission, err := category.Transmission.Encode(in.Transmission)
	if err != nil {
		return nil, err
	}
	owner, err := category.Owner.Encode(in.Owner)
	if err != nil {
		return nil, err
	}

	return Vector{
		float64(in.Year),
		in.PresentPrice,
		in.KmsDriven,
		float64(fuel),
		float64(seller),
		float64(transmission),
		float64(owner),
		in.Mileage,
	}, nil
}

type SalesInput struct {
	TV        float64
	Radio     float64
	Newspaper float64
}

func AssembleSales(in SalesInput) (Vector, error) {
	if err := nonNegative("tv", in.TV); err != nil {
		return nil, err
	}
	if err := nonNegative("radio", in.Radio); err != nil {
		return nil, err
	}
	if err := nonNegative("newspaper", in.Newspaper); err != nil {
		return nil, err
	}
	return Vector{in.TV, in.Radio, in.Newspaper}, nil
}

type IrisInput struct {
	SepalLength float64
	SepalWidth  float64
	PetalLength float64
	PetalWidth  float64
}

func AssembleIris(in IrisInput) (Vector, error) {
	vec := Vector{in.SepalLength, in.SepalWidth, in.PetalLength, in.PetalWidth}
	for i, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &RangeError{Field: IrisSchemaV1.Fields[i], Value: v, Reason: "must be a finite number"}
		}
	}
	return vec, nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &RangeError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	if v < 0 {
		return &RangeError{Field: field, Value: v, Reason: "must not be negative"}
	}
	return nil
}

// IsValidation reports whether err is caused by user input rather than by
// the model or the server.
func IsValidation(err error) bool {
	return errors.Is(err, ErrOutOfRange) || errors.Is(err, category.ErrUnknownLabel)
}
