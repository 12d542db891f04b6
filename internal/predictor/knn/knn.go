// Package knn is a k-nearest-neighbours classifier searching either by brute
// force or through a k-d tree.
package knn

import (
	"errors"
	"fmt"

	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/geom"
	"github.com/go-sod/insight/internal/predictor"
	"github.com/go-sod/insight/pkg/container/kdtree"
	"github.com/go-sod/insight/pkg/pqueue"
)

var _ predictor.VectorClassifier = (*Classifier)(nil)

const DefaultK = 5

var ErrNotEnoughSamples = errors.New("not enough training samples")

type Option func(*Classifier)

func WithK(k int) Option {
	return func(c *Classifier) {
		c.k = k
	}
}

func WithDistance(fn geom.DistanceFn) Option {
	return func(c *Classifier) {
		c.distFunc = fn
	}
}

// WithKDTree indexes the training set in a k-d tree. Neighbours are the same
// as with the brute force search.
func WithKDTree() Option {
	return func(c *Classifier) {
		c.useTree = true
	}
}

// Classifier is immutable once trained and safe for concurrent use.
type Classifier struct {
	k        int
	dims     int
	labels   []string
	train    []Sample
	distFunc geom.DistanceFn
	useTree  bool
	index    *kdtree.Tree
}

type Neighbor struct {
	Sample   Sample
	Distance float64
}

// Train stores the training set. Every sample class must index labels.
func Train(labels []string, train []Sample, opts ...Option) (*Classifier, error) {
	c := &Classifier{
		k:        DefaultK,
		labels:   labels,
		distFunc: geom.EuclideanDistance,
	}
	for _, f := range opts {
		f(c)
	}
	if c.k < 1 {
		return nil, fmt.Errorf("k must be positive, got %d", c.k)
	}
	if len(train) < c.k {
		return nil, fmt.Errorf("%w: %d samples for k=%d", ErrNotEnoughSamples, len(train), c.k)
	}
	c.dims = train[0].Vec.Dimensions()
	for i, s := range train {
		if s.Vec.Dimensions() != c.dims {
			return nil, fmt.Errorf("sample %d has %d dimensions, expected %d", i, s.Vec.Dimensions(), c.dims)
		}
		if s.Class < 0 || s.Class >= len(labels) {
			return nil, fmt.Errorf("sample %d has class %d, labels %d", i, s.Class, len(labels))
		}
	}
	c.train = make([]Sample, len(train))
	copy(c.train, train)

	if c.useTree {
		points := make([][]float64, len(c.train))
		for i, s := range c.train {
			points[i] = s.Vec.Points()
		}
		c.index = kdtree.New(kdtree.DistanceFn(c.distFunc))
		if err := c.index.Build(points...); err != nil {
			return nil, fmt.Errorf("index training set: %w", err)
		}
	}
	return c, nil
}

// Neighbors returns the k closest training samples, nearest first. Equal
// distances keep training order.
func (c *Classifier) Neighbors(vec feature.Vector) ([]Neighbor, error) {
	if err := predictor.CheckDimensions(vec, c.dims); err != nil {
		return nil, err
	}
	if c.index != nil {
		found, err := c.index.KNN(vec.Points(), c.k)
		if err != nil {
			return nil, err
		}
		nn := make([]Neighbor, len(found))
		for i, f := range found {
			nn[i] = Neighbor{Sample: c.train[f.Index], Distance: f.Distance}
		}
		return nn, nil
	}
	pq := pqueue.New[Neighbor](pqueue.WithCap(uint(c.k)))
	for _, s := range c.train {
		distance, err := c.distFunc(vec.Points(), s.Vec.Points())
		if err != nil {
			return nil, fmt.Errorf(
				"unable to compute distance between %v and %v: %w",
				vec.Points(), s.Vec.Points(), err,
			)
		}
		pq.Push(Neighbor{Sample: s, Distance: distance}, distance)
	}
	return pq.PopAll(), nil
}

// Probabilities is the share of the k neighbours in each class.
func (c *Classifier) Probabilities(vec feature.Vector) ([]float64, error) {
	nn, err := c.Neighbors(vec)
	if err != nil {
		return nil, err
	}
	probs := make([]float64, len(c.labels))
	for _, n := range nn {
		probs[n.Sample.Class]++
	}
	for i := range probs {
		probs[i] /= float64(len(nn))
	}
	return probs, nil
}

// Classify is a majority vote; ties go to the lowest class index.
func (c *Classifier) Classify(vec feature.Vector) (*predictor.Classification, error) {
	probs, err := c.Probabilities(vec)
	if err != nil {
		return nil, err
	}
	return predictor.NewClassification(c.labels, probs)
}

// Accuracy is the share of test samples classified correctly.
func (c *Classifier) Accuracy(test []Sample) (float64, error) {
	if len(test) == 0 {
		return 0, fmt.Errorf("%w: empty test set", ErrNotEnoughSamples)
	}
	var correct int
	for _, s := range test {
		got, err := c.Classify(s.Vec)
		if err != nil {
			return 0, err
		}
		if got.Class == s.Class {
			correct++
		}
	}
	return float64(correct) / float64(len(test)), nil
}

func (c *Classifier) Classes() []string {
	return c.labels
}

func (c *Classifier) K() int {
	return c.k
}

func (c *Classifier) Len() int {
	return len(c.train)
}
