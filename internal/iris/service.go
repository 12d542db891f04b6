// Package iris trains a k-nearest-neighbours species classifier at startup and
// serves predictions from it.
package iris

import (
	"fmt"

	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/geom"
	"github.com/go-sod/insight/internal/predictor"
	"github.com/go-sod/insight/internal/predictor/knn"
)

const Component = "iris"

// Summary describes the trained model.
type Summary struct {
	Accuracy  float64  `json:"accuracy"`
	K         int      `json:"k"`
	TrainSize int      `json:"trainSize"`
	TestSize  int      `json:"testSize"`
	Species   []string `json:"species"`
}

type Service struct {
	model   predictor.VectorClassifier
	summary Summary
}

// Train splits ds with a seeded stratified split, fits the classifier on the
// training part and scores it on the rest.
func Train(cfg *Config, ds *Dataset) (*Service, error) {
	distance, err := geom.DistanceFuncFor(geom.DistanceFuncType(cfg.Distance))
	if err != nil {
		return nil, err
	}
	train, test, err := knn.StratifiedSplit(ds.Samples, cfg.TestSize, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("split iris dataset: %w", err)
	}
	opts := []knn.Option{knn.WithK(cfg.K), knn.WithDistance(distance)}
	switch cfg.Search {
	case "", "brute":
	case "kdtree":
		opts = append(opts, knn.WithKDTree())
	default:
		return nil, fmt.Errorf("unknown neighbour search %q", cfg.Search)
	}
	clf, err := knn.Train(ds.Labels.Labels(), train, opts...)
	if err != nil {
		return nil, fmt.Errorf("train iris classifier: %w", err)
	}
	accuracy, err := clf.Accuracy(test)
	if err != nil {
		return nil, fmt.Errorf("score iris classifier: %w", err)
	}
	return NewService(clf, Summary{
		Accuracy:  accuracy,
		K:         clf.K(),
		TrainSize: len(train),
		TestSize:  len(test),
		Species:   clf.Classes(),
	}), nil
}

func NewService(model predictor.VectorClassifier, summary Summary) *Service {
	return &Service{model: model, summary: summary}
}

func (s *Service) Summary() Summary {
	return s.summary
}

func (s *Service) Classify(in feature.IrisInput) (*predictor.Classification, error) {
	vec, err := feature.AssembleIris(in)
	if err != nil {
		return nil, err
	}
	c, err := s.model.Classify(vec)
	if err != nil {
		return nil, fmt.Errorf("iris classifier: %w", err)
	}
	return c, nil
}
