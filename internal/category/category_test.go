package category

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping_Encode(t *testing.T) {
	tests := []struct {
		name     string
		mapping  Mapping
		label    string
		expected int
	}{
		{name: "fuel_cng", mapping: FuelType, label: "CNG", expected: 0},
		{name: "fuel_diesel", mapping: FuelType, label: "Diesel", expected: 1},
		{name: "fuel_petrol", mapping: FuelType, label: "Petrol", expected: 2},
		{name: "seller_dealer", mapping: SellerType, label: "Dealer", expected: 0},
		{name: "seller_individual", mapping: SellerType, label: "Individual", expected: 1},
		{name: "transmission_automatic", mapping: Transmission, label: "Automatic", expected: 0},
		{name: "transmission_manual", mapping: Transmission, label: "Manual", expected: 1},
		{name: "owner_first", mapping: Owner, label: "First", expected: 0},
		{name: "owner_second", mapping: Owner, label: "Second", expected: 1},
		{name: "owner_third", mapping: Owner, label: "Third", expected: 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.mapping.Encode(test.label)
			require.NoError(t, err)
			assert.Equal(t, test.expected, got)
		})
	}
}

func TestMapping_EncodeUnknown(t *testing.T) {
	tests := []struct {
		name    string
		mapping Mapping
		label   string
	}{
		{name: "electric", mapping: FuelType, label: "Electric"},
		{name: "lowercase", mapping: FuelType, label: "diesel"},
		{name: "empty", mapping: Owner, label: ""},
		{name: "fourth_owner", mapping: Owner, label: "Fourth"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.mapping.Encode(test.label)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownLabel))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, test.mapping.Field(), verr.Field)
			assert.Equal(t, test.label, verr.Label)
		})
	}
}

func TestMapping_Labels(t *testing.T) {
	assert.Equal(t, []string{"CNG", "Diesel", "Petrol"}, FuelType.Labels())
	assert.Equal(t, []string{"First", "Second", "Third"}, Owner.Labels())
}

func TestNewMapping_Copies(t *testing.T) {
	codes := map[string]int{"a": 1}
	m := NewMapping("x", codes)
	codes["b"] = 2

	_, err := m.Encode("b")
	assert.Error(t, err)
}
