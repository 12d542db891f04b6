// Package predictor defines the contracts between request handlers and the
// pre-fit models they invoke.
package predictor

import (
	"errors"
	"fmt"

	"github.com/go-sod/insight/internal/feature"
)

var ErrDimensionMismatch = errors.New("vector dimension does not match model")

// Regressor maps a fixed shape feature vector into a scalar.
type Regressor interface {
	Predict(vec feature.Vector) (float64, error)
	// Features is the feature order the model was fit with, if known.
	Features() []string
}

// VectorClassifier maps a feature vector into one of a closed set of classes.
type VectorClassifier interface {
	Classify(vec feature.Vector) (*Classification, error)
	Classes() []string
}

// TextClassifier maps free text into one of a closed set of classes.
type TextClassifier interface {
	ClassifyText(text string) (*Classification, error)
	Classes() []string
}

type ClassProbability struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

type Classification struct {
	Class         int                `json:"class"`
	Label         string             `json:"label"`
	Confidence    float64            `json:"confidence"`
	Probabilities []ClassProbability `json:"probabilities"`
}

// NewClassification picks the most probable class. Ties go to the lowest class
// index.
func NewClassification(labels []string, probs []float64) (*Classification, error) {
	if len(labels) == 0 || len(labels) != len(probs) {
		return nil, fmt.Errorf("classification has %d labels and %d probabilities", len(labels), len(probs))
	}
	best := 0
	out := &Classification{Probabilities: make([]ClassProbability, len(labels))}
	for i := range labels {
		out.Probabilities[i] = ClassProbability{Label: labels[i], Probability: probs[i]}
		if probs[i] > probs[best] {
			best = i
		}
	}
	out.Class = best
	out.Label = labels[best]
	out.Confidence = probs[best]
	return out, nil
}

// CheckDimensions is shared by the vector models.
func CheckDimensions(vec feature.Vector, want int) error {
	if vec.Dimensions() != want {
		return fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, vec.Dimensions(), want)
	}
	return nil
}
