// Package spam flags email text as spam or ham.
package spam

import (
	"fmt"

	"github.com/go-sod/insight/internal/predictor"
)

const (
	Component = "spam"

	VerdictSpam = "spam"
	VerdictHam  = "ham"
)

type Verdict struct {
	Verdict       string                       `json:"label"`
	Spam          bool                         `json:"spam"`
	Class         string                       `json:"class"`
	Confidence    float64                      `json:"confidence"`
	Probabilities []predictor.ClassProbability `json:"probabilities"`
}

type Service struct {
	model     predictor.TextClassifier
	spamLabel string
}

func NewService(model predictor.TextClassifier, spamLabel string) (*Service, error) {
	for _, c := range model.Classes() {
		if c == spamLabel {
			return &Service{model: model, spamLabel: spamLabel}, nil
		}
	}
	return nil, fmt.Errorf("spam label %q is not a class of the model %v", spamLabel, model.Classes())
}

// Check classifies text. Blank text is text.ErrEmptyText from the model.
func (s *Service) Check(text string) (*Verdict, error) {
	c, err := s.model.ClassifyText(text)
	if err != nil {
		return nil, err
	}
	v := &Verdict{
		Verdict:       VerdictHam,
		Spam:          c.Label == s.spamLabel,
		Class:         c.Label,
		Confidence:    c.Confidence,
		Probabilities: c.Probabilities,
	}
	if v.Spam {
		v.Verdict = VerdictSpam
	}
	return v, nil
}
