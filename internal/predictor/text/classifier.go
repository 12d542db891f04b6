package text

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-sod/insight/internal/artifact"
	"github.com/go-sod/insight/internal/predictor"
	"gonum.org/v1/gonum/floats"
)

var _ predictor.TextClassifier = (*Model)(nil)

const (
	KindMultinomialNB = "multinomial_nb"
	KindLogistic      = "logistic"
)

var ErrEmptyText = errors.New("text is empty")

type ClassifierPayload struct {
	Kind    string   `json:"kind"`
	Classes []int    `json:"classes"`
	Labels  []string `json:"labels"`
	// multinomial_nb
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
	// logistic; a binary model has a single row
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// Classifier scores sparse term vectors.
type Classifier struct {
	kind      string
	classes   []int
	labels    []string
	prior     []float64
	weights   [][]float64
	intercept []float64
}

func NewClassifier(p ClassifierPayload) (*Classifier, error) {
	if len(p.Classes) < 2 {
		return nil, fmt.Errorf("classifier needs at least two classes, got %d", len(p.Classes))
	}
	labels := p.Labels
	if len(labels) == 0 {
		labels = make([]string, len(p.Classes))
		for i, c := range p.Classes {
			labels[i] = strconv.Itoa(c)
		}
	}
	if len(labels) != len(p.Classes) {
		return nil, fmt.Errorf("classifier has %d labels for %d classes", len(labels), len(p.Classes))
	}

	c := &Classifier{kind: p.Kind, classes: p.Classes, labels: labels}
	switch p.Kind {
	case KindMultinomialNB:
		if len(p.ClassLogPrior) != len(p.Classes) || len(p.FeatureLogProb) != len(p.Classes) {
			return nil, fmt.Errorf("naive bayes model does not have one row per class")
		}
		c.prior = p.ClassLogPrior
		c.weights = p.FeatureLogProb
	case KindLogistic:
		rows := len(p.Classes)
		if rows == 2 {
			rows = 1
		}
		if len(p.Coef) != rows || len(p.Intercept) != rows {
			return nil, fmt.Errorf("logistic model has %d coefficient rows, expected %d", len(p.Coef), rows)
		}
		c.weights = p.Coef
		c.intercept = p.Intercept
	default:
		return nil, fmt.Errorf("classifier kind %q is not supported", p.Kind)
	}
	return c, nil
}

func ClassifierFromArtifact(a artifact.Artifact) (*Classifier, error) {
	if err := a.Expect(artifact.KindTextClassifier); err != nil {
		return nil, err
	}
	var p ClassifierPayload
	if err := a.Unmarshal(&p); err != nil {
		return nil, err
	}
	return NewClassifier(p)
}

func (c *Classifier) Classes() []string {
	return c.labels
}

// Dimensions is the feature width the weights expect.
func (c *Classifier) Dimensions() int {
	return len(c.weights[0])
}

// Probabilities returns one probability per class, in class order.
func (c *Classifier) Probabilities(x Sparse) ([]float64, error) {
	scores := make([]float64, len(c.weights))
	for row := range c.weights {
		s, err := dot(c.weights[row], x)
		if err != nil {
			return nil, err
		}
		scores[row] = s
	}

	switch c.kind {
	case KindMultinomialNB:
		floats.Add(scores, c.prior)
		return softmax(scores), nil
	default:
		floats.Add(scores, c.intercept)
		if len(scores) == 1 {
			p := 1 / (1 + math.Exp(-scores[0]))
			return []float64{1 - p, p}, nil
		}
		return softmax(scores), nil
	}
}

func (c *Classifier) Predict(x Sparse) (*predictor.Classification, error) {
	probs, err := c.Probabilities(x)
	if err != nil {
		return nil, err
	}
	return predictor.NewClassification(c.labels, probs)
}

// Model chains a vectorizer and a classifier fit on its output.
type Model struct {
	vectorizer *Vectorizer
	classifier *Classifier
}

func NewModel(v *Vectorizer, c *Classifier) (*Model, error) {
	if v.Len() != c.Dimensions() {
		return nil, fmt.Errorf(
			"vectorizer produces %d features, classifier expects %d",
			v.Len(), c.Dimensions(),
		)
	}
	return &Model{vectorizer: v, classifier: c}, nil
}

func (m *Model) ClassifyText(text string) (*predictor.Classification, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	return m.classifier.Predict(m.vectorizer.Transform(text))
}

func (m *Model) Classes() []string {
	return m.classifier.Classes()
}

func dot(w []float64, x Sparse) (float64, error) {
	var s float64
	for _, idx := range x.Indices() {
		if idx >= len(w) {
			return 0, fmt.Errorf("%w: term index %d, weights %d", predictor.ErrDimensionMismatch, idx, len(w))
		}
		s += w[idx] * x[idx]
	}
	return s, nil
}

func softmax(scores []float64) []float64 {
	lse := floats.LogSumExp(scores)
	out := make([]float64, len(scores))
	for i := range scores {
		out[i] = math.Exp(scores[i] - lse)
	}
	return out
}
