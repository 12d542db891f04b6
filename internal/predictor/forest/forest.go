// Package forest scores random forest regression artifacts exported as
// flattened binary trees.
package forest

import (
	"errors"
	"fmt"

	"github.com/go-sod/insight/internal/artifact"
	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/predictor"
	"gonum.org/v1/gonum/stat"
)

var _ predictor.Regressor = (*Forest)(nil)

const leaf = -1

var (
	ErrNoTrees     = errors.New("forest has no trees")
	ErrMalformTree = errors.New("malformed tree")
)

// Tree is one regression tree in array form. Node i is a leaf when
// ChildrenLeft[i] == -1; otherwise samples with x[Feature[i]] <= Threshold[i]
// go left.
type Tree struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

type Payload struct {
	Features    []string `json:"features"`
	NumFeatures int      `json:"n_features"`
	Trees       []Tree   `json:"trees"`
}

type Forest struct {
	features    []string
	numFeatures int
	trees       []Tree
}

func New(p Payload) (*Forest, error) {
	if len(p.Trees) == 0 {
		return nil, ErrNoTrees
	}
	n := p.NumFeatures
	if n == 0 {
		n = len(p.Features)
	}
	if n == 0 {
		return nil, fmt.Errorf("forest does not declare its number of features")
	}
	for i := range p.Trees {
		if err := validate(p.Trees[i], n); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return &Forest{features: p.Features, numFeatures: n, trees: p.Trees}, nil
}

func FromArtifact(a artifact.Artifact) (*Forest, error) {
	if err := a.Expect(artifact.KindForestRegression); err != nil {
		return nil, err
	}
	var p Payload
	if err := a.Unmarshal(&p); err != nil {
		return nil, err
	}
	return New(p)
}

// Predict averages the leaf values reached in every tree.
func (f *Forest) Predict(vec feature.Vector) (float64, error) {
	if err := predictor.CheckDimensions(vec, f.numFeatures); err != nil {
		return 0, err
	}
	out := make([]float64, len(f.trees))
	for i := range f.trees {
		out[i] = f.trees[i].predict(vec)
	}
	return stat.Mean(out, nil), nil
}

func (f *Forest) Features() []string {
	return f.features
}

func (f *Forest) Len() int {
	return len(f.trees)
}

func (t Tree) predict(vec feature.Vector) float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if vec.Dim(t.Feature[node]) <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

// validate makes sure predict can neither index out of range nor loop.
func validate(t Tree, numFeatures int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("%w: no nodes", ErrMalformTree)
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("%w: node arrays differ in length", ErrMalformTree)
	}
	for i := 0; i < n; i++ {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == leaf {
			if r != leaf {
				return fmt.Errorf("%w: node %d has one child", ErrMalformTree, i)
			}
			continue
		}
		if l <= i || r <= i || l >= n || r >= n {
			return fmt.Errorf("%w: node %d children %d/%d out of order", ErrMalformTree, i, l, r)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= numFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d", ErrMalformTree, i, t.Feature[i])
		}
	}
	return nil
}
