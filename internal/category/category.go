// Package category maps closed sets of string labels to the integer codes the
// pre-fit models were trained with.
package category

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownLabel = errors.New("unknown category label")

// ValidationError reports a label outside the closed enumeration of a field.
type ValidationError struct {
	Field   string
	Label   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q is not one of [%s]", e.Field, e.Label, strings.Join(e.Allowed, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrUnknownLabel
}

// Mapping is an immutable label to code table for one categorical field.
type Mapping struct {
	field string
	codes map[string]int
}

// NewMapping copies codes, so later changes to the argument are not visible.
func NewMapping(field string, codes map[string]int) Mapping {
	m := Mapping{field: field, codes: make(map[string]int, len(codes))}
	for k, v := range codes {
		m.codes[k] = v
	}
	return m
}

// Encode returns the code for label. Labels are matched exactly.
func (m Mapping) Encode(label string) (int, error) {
	code, ok := m.codes[label]
	if !ok {
		return 0, &ValidationError{Field: m.field, Label: label, Allowed: m.Labels()}
	}
	return code, nil
}

func (m Mapping) Field() string {
	return m.field
}

// Labels returns the allowed labels ordered by code.
func (m Mapping) Labels() []string {
	labels := make([]string, 0, len(m.codes))
	for k := range m.codes {
		labels = append(labels, k)
	}
	sort.Slice(labels, func(i, j int) bool {
		if m.codes[labels[i]] == m.codes[labels[j]] {
			return labels[i] < labels[j]
		}
		return m.codes[labels[i]] < m.codes[labels[j]]
	})
	return labels
}

// Car price model encodings.
var (
	FuelType     = NewMapping("fuelType", map[string]int{"CNG": 0, "Diesel": 1, "Petrol": 2})
	SellerType   = NewMapping("sellerType", map[string]int{"Dealer": 0, "Individual": 1})
	Transmission = NewMapping("transmission", map[string]int{"Automatic": 0, "Manual": 1})
	Owner        = NewMapping("owner", map[string]int{"First": 0, "Second": 1, "Third": 2})
)
