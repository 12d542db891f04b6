// Package feature assembles raw inputs into the ordered numeric vectors the
// pre-fit models consume. The order of every schema is a versioned contract
// with the model artifact that was fit against it.
package feature

import (
	"errors"
	"fmt"
	"strings"
)

var ErrSchemaMismatch = errors.New("feature schema mismatch")

type Schema struct {
	Name    string
	Version string
	Fields  []string
}

func (s Schema) Len() int {
	return len(s.Fields)
}

// Check verifies that an artifact's declared feature order equals the schema.
// An empty declaration is accepted, artifacts are not required to carry one.
func (s Schema) Check(features []string) error {
	if len(features) == 0 {
		return nil
	}
	if len(features) != len(s.Fields) {
		return fmt.Errorf(
			"%w: %s/%s expects %d features, artifact declares %d",
			ErrSchemaMismatch, s.Name, s.Version, len(s.Fields), len(features),
		)
	}
	for i := range features {
		if !strings.EqualFold(strings.TrimSpace(features[i]), s.Fields[i]) {
			return fmt.Errorf(
				"%w: %s/%s position %d is %q, artifact declares %q",
				ErrSchemaMismatch, s.Name, s.Version, i, s.Fields[i], features[i],
			)
		}
	}
	return nil
}

var (
	CarSchemaV1 = Schema{
		Name:    "carprice",
		Version: "v1",
		Fields: []string{
			"Year", "Present_Price", "Kms_Driven", "Fuel_Type",
			"Seller_Type", "Transmission", "Owner", "Mileage",
		},
	}
	SalesSchemaV1 = Schema{
		Name:    "sales",
		Version: "v1",
		Fields:  []string{"TV", "Radio", "Newspaper"},
	}
	IrisSchemaV1 = Schema{
		Name:    "iris",
		Version: "v1",
		Fields:  []string{"SepalLengthCm", "SepalWidthCm", "PetalLengthCm", "PetalWidthCm"},
	}
)
