package feature

import (
	"errors"
	"math"
	"testing"

	"github.com/go-sod/insight/internal/category"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCar() CarInput {
	return CarInput{
		Year:         2015,
		PresentPrice: 5.59,
		KmsDriven:    27000,
		Mileage:      18.0,
		FuelType:     "Diesel",
		SellerType:   "Dealer",
		Transmission: "Manual",
		Owner:        "First",
	}
}

func TestAssembleCar(t *testing.T) {
	vec, err := AssembleCar(validCar())
	require.NoError(t, err)
	assert.Equal(t, Vector{2015, 5.59, 27000, 1, 0, 1, 0, 18.0}, vec)
	assert.Equal(t, CarSchemaV1.Len(), vec.Dimensions())
}

func TestAssembleCar_SwapNumerics(t *testing.T) {
	in := validCar()
	in.PresentPrice, in.Mileage = 18.0, 5.59

	base, err := AssembleCar(validCar())
	require.NoError(t, err)
	swapped, err := AssembleCar(in)
	require.NoError(t, err)

	for i := range base {
		switch i {
		case 1:
			assert.Equal(t, base[7], swapped[1])
		case 7:
			assert.Equal(t, base[1], swapped[7])
		default:
			assert.Equal(t, base[i], swapped[i], "position %d changed", i)
		}
	}
}

func TestAssembleCar_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*CarInput)
		expected error
	}{
		{name: "year_low", mutate: func(c *CarInput) { c.Year = 1989 }, expected: ErrOutOfRange},
		{name: "year_high", mutate: func(c *CarInput) { c.Year = 2026 }, expected: ErrOutOfRange},
		{name: "negative_price", mutate: func(c *CarInput) { c.PresentPrice = -1 }, expected: ErrOutOfRange},
		{name: "negative_kms", mutate: func(c *CarInput) { c.KmsDriven = -10 }, expected: ErrOutOfRange},
		{name: "nan_mileage", mutate: func(c *CarInput) { c.Mileage = math.NaN() }, expected: ErrOutOfRange},
		{name: "unknown_fuel", mutate: func(c *CarInput) { c.FuelType = "Electric" }, expected: category.ErrUnknownLabel},
		{name: "unknown_seller", mutate: func(c *CarInput) { c.SellerType = "Broker" }, expected: category.ErrUnknownLabel},
		{name: "unknown_transmission", mutate: func(c *CarInput) { c.Transmission = "CVT" }, expected: category.ErrUnknownLabel},
		{name: "unknown_owner", mutate: func(c *CarInput) { c.Owner = "Fourth" }, expected: category.ErrUnknownLabel},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in := validCar()
			test.mutate(&in)
			_, err := AssembleCar(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, test.expected), "got %v", err)
		})
	}
}

func TestAssembleCar_Boundaries(t *testing.T) {
	in := validCar()
	in.Year = MinCarYear
	in.PresentPrice, in.KmsDriven, in.Mileage = 0, 0, 0
	vec, err := AssembleCar(in)
	require.NoError(t, err)
	assert.Equal(t, Vector{1990, 0, 0, 1, 0, 1, 0, 0}, vec)
}

func TestAssembleSales(t *testing.T) {
	vec, err := AssembleSales(SalesInput{TV: 230.1, Radio: 37.8, Newspaper: 69.2})
	require.NoError(t, err)
	assert.Equal(t, Vector{230.1, 37.8, 69.2}, vec)

	_, err = AssembleSales(SalesInput{TV: 1, Radio: -0.5})
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestAssembleIris(t *testing.T) {
	vec, err := AssembleIris(IrisInput{SepalLength: 5.1, SepalWidth: 3.5, PetalLength: 1.4, PetalWidth: 0.2})
	require.NoError(t, err)
	assert.Equal(t, Vector{5.1, 3.5, 1.4, 0.2}, vec)

	_, err = AssembleIris(IrisInput{SepalLength: math.Inf(1)})
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestSchema_Check(t *testing.T) {
	tests := []struct {
		name     string
		features []string
		err      bool
	}{
		{name: "empty", features: nil},
		{name: "exact", features: CarSchemaV1.Fields},
		{
			name: "case_insensitive",
			features: []string{
				"year", "present_price", "kms_driven", "fuel_type",
				"seller_type", "transmission", "owner", "mileage",
			},
		},
		{name: "short", features: []string{"Year"}, err: true},
		{
			name: "swapped",
			features: []string{
				"Year", "Present_Price", "Kms_Driven", "Fuel_Type",
				"Seller_Type", "Transmission", "Mileage", "Owner",
			},
			err: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := CarSchemaV1.Check(test.features)
			if test.err {
				assert.True(t, errors.Is(err, ErrSchemaMismatch))
				return
			}
			assert.NoError(t, err)
		})
	}
}
