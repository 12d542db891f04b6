package setup

import (
	"fmt"

	"github.com/go-sod/insight/internal/artifact"
	"github.com/go-sod/insight/internal/predictor"
	"github.com/go-sod/insight/internal/predictor/forest"
	"github.com/go-sod/insight/internal/predictor/linear"
	"github.com/go-sod/insight/internal/predictor/text"
)

// ProvideRegressorFor decodes a regression artifact of any supported kind.
func ProvideRegressorFor(a artifact.Artifact) (predictor.Regressor, error) {
	switch a.Kind {
	case artifact.KindLinearRegression:
		r, err := linear.FromArtifact(a)
		if err != nil {
			return nil, err
		}
		return r, nil
	case artifact.KindForestRegression:
		f, err := forest.FromArtifact(a)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %s is %q, expected a regressor", artifact.ErrUnexpectedKind, a.Name, a.Kind)
	}
}

func ProvideTextModelFor(vectorizer, classifier artifact.Artifact) (*text.Model, error) {
	v, err := text.VectorizerFromArtifact(vectorizer)
	if err != nil {
		return nil, fmt.Errorf("vectorizer %s: %w", vectorizer.Name, err)
	}
	c, err := text.ClassifierFromArtifact(classifier)
	if err != nil {
		return nil, fmt.Errorf("classifier %s: %w", classifier.Name, err)
	}
	return text.NewModel(v, c)
}
