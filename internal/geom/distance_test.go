package geom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistances(t *testing.T) {
	tests := []struct {
		name     string
		fn       DistanceFn
		p        []float64
		p1       []float64
		expected float64
		err      error
	}{
		{name: "euclidean", fn: EuclideanDistance, p: []float64{1.2, 2.0}, p1: []float64{2.0, 3.0}, expected: 1.2806248474865698},
		{name: "euclidean", fn: EuclideanDistance, p: []float64{10, 2.0}, p1: []float64{5, 3.0}, expected: 5.0990195135927845},
		{name: "euclidean_iris", fn: EuclideanDistance, p: []float64{5.1, 3.5, 1.4, 0.2}, p1: []float64{5.1, 3.5, 1.4, 0.2}, expected: 0},
		{name: "chebyshev", fn: ChebyshevDistance, p: []float64{1.2, 2.0}, p1: []float64{2.0, 3.0}, expected: 1},
		{name: "chebyshev", fn: ChebyshevDistance, p: []float64{10, 2.0}, p1: []float64{5, 3.0}, expected: 5},
		{name: "manhattan", fn: ManhattanDistance, p: []float64{1.2, 2.0}, p1: []float64{2.0, 3.0}, expected: 1.8},
		{name: "manhattan", fn: ManhattanDistance, p: []float64{10, 2.0}, p1: []float64{5, 3.0}, expected: 6},
		{name: "euclidean_err", fn: EuclideanDistance, p: []float64{5, 2.0}, p1: []float64{3}, err: ErrDimNotEqual},
		{name: "chebyshev_err", fn: ChebyshevDistance, p: []float64{2.0}, p1: []float64{3, 4.0}, err: ErrDimNotEqual},
		{name: "manhattan_err", fn: ManhattanDistance, p: []float64{2.0}, p1: []float64{3, 4.0}, err: ErrDimNotEqual},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.fn(test.p, test.p1)
			if test.err != nil {
				assert.True(t, errors.Is(err, test.err), "the dimension of the vectors is different, got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, test.expected, got, 1e-12)
		})
	}
}

func TestDistanceFuncFor(t *testing.T) {
	for _, d := range []DistanceFuncType{DistanceFuncTypeEuclidean, DistanceFuncTypeChebyshev, DistanceFuncTypeManhattan} {
		fn, err := DistanceFuncFor(d)
		assert.NoError(t, err)
		assert.NotNil(t, fn)
	}
	_, err := DistanceFuncFor("COSINE")
	assert.Error(t, err)
}
