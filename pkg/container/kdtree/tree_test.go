package kdtree

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manhattan(vec, vec1 []float64) (float64, error) {
	var d float64
	for i := range vec {
		d += math.Abs(vec[i] - vec1[i])
	}
	return d, nil
}

func euclidean(vec, vec1 []float64) (float64, error) {
	var d float64
	for i := range vec {
		d += (vec[i] - vec1[i]) * (vec[i] - vec1[i])
	}
	return math.Sqrt(d), nil
}

func brute(points [][]float64, q []float64, k int, fn DistanceFn) []Neighbor {
	all := make([]Neighbor, len(points))
	for i, p := range points {
		d, _ := fn(q, p)
		all[i] = Neighbor{Index: i, Distance: d}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Distance < all[j].Distance })
	return all[:k]
}

func TestTree_KNNMatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	points := make([][]float64, 200)
	for i := range points {
		// a coarse grid produces plenty of ties
		points[i] = []float64{float64(rnd.Intn(10)), float64(rnd.Intn(10)), float64(rnd.Intn(10))}
	}
	for name, fn := range map[string]DistanceFn{"euclidean": euclidean, "manhattan": manhattan} {
		t.Run(name, func(t *testing.T) {
			tree := New(fn)
			require.NoError(t, tree.Build(points...))
			for i := 0; i < 50; i++ {
				q := []float64{rnd.Float64() * 10, rnd.Float64() * 10, float64(rnd.Intn(10))}
				got, err := tree.KNN(q, 7)
				require.NoError(t, err)
				assert.Equal(t, brute(points, q, 7, fn), got)
			}
		})
	}
}

func TestTree_KNNDuplicates(t *testing.T) {
	tree := New(euclidean)
	require.NoError(t, tree.Build([]float64{1, 1}, []float64{0, 0}, []float64{1, 1}, []float64{1, 1}))

	got, err := tree.KNN([]float64{1, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, []Neighbor{{Index: 0}, {Index: 2}}, got)

	got, err = tree.KNN([]float64{0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Equal(t, 1, got[0].Index)
}

func TestTree_Invalid(t *testing.T) {
	tree := New(euclidean)
	_, err := tree.KNN([]float64{1}, 1)
	assert.ErrorIs(t, err, ErrEmpty)

	assert.Error(t, tree.Build([]float64{1, 2}, []float64{1}))
	require.NoError(t, tree.Build([]float64{1, 2}))
	_, err = tree.KNN([]float64{1}, 1)
	assert.Error(t, err)
	_, err = tree.KNN([]float64{1, 2}, 0)
	assert.Error(t, err)
}
