package knn

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-sod/insight/internal/feature"
	"github.com/valyala/fastrand"
)

type Sample struct {
	Vec   feature.Vector
	Class int
}

// StratifiedSplit partitions samples into train and test sets, keeping the
// class proportions of the input in both. ceil(n*testFraction) samples go to
// test; per class shares are rounded by largest remainder. The same input and
// seed always give the same partitions.
func StratifiedSplit(samples []Sample, testFraction float64, seed uint32) (train, test []Sample, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction %v must be in (0, 1)", testFraction)
	}
	n := len(samples)
	nTest := int(math.Ceil(float64(n) * testFraction))
	if nTest < 1 || nTest >= n {
		return nil, nil, fmt.Errorf("cannot split %d samples with test fraction %v", n, testFraction)
	}

	byClass := map[int][]int{}
	for i, s := range samples {
		byClass[s.Class] = append(byClass[s.Class], i)
	}
	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	quota := allocate(classes, byClass, nTest, testFraction)

	rng := &fastrand.RNG{}
	rng.Seed(rngState(seed))
	var trainIdx, testIdx []int
	for _, c := range classes {
		idx := append([]int(nil), byClass[c]...)
		for i := len(idx) - 1; i > 0; i-- {
			j := int(rng.Uint32n(uint32(i + 1)))
			idx[i], idx[j] = idx[j], idx[i]
		}
		testIdx = append(testIdx, idx[:quota[c]]...)
		trainIdx = append(trainIdx, idx[quota[c]:]...)
	}
	sort.Ints(trainIdx)
	sort.Ints(testIdx)

	train = make([]Sample, len(trainIdx))
	for i, idx := range trainIdx {
		train[i] = samples[idx]
	}
	test = make([]Sample, len(testIdx))
	for i, idx := range testIdx {
		test[i] = samples[idx]
	}
	return train, test, nil
}

func allocate(classes []int, byClass map[int][]int, nTest int, frac float64) map[int]int {
	quota := make(map[int]int, len(classes))
	type rest struct {
		class int
		frac  float64
	}
	rests := make([]rest, 0, len(classes))
	assigned := 0
	for _, c := range classes {
		share := float64(len(byClass[c])) * frac
		q := int(math.Floor(share))
		quota[c] = q
		assigned += q
		rests = append(rests, rest{class: c, frac: share - float64(q)})
	}
	sort.SliceStable(rests, func(i, j int) bool {
		return rests[i].frac > rests[j].frac
	})
	for i := 0; assigned < nTest && i < len(rests); i++ {
		c := rests[i].class
		if quota[c] < len(byClass[c]) {
			quota[c]++
			assigned++
		}
	}
	return quota
}

// rngState maps seed to a non-zero generator state. fastrand reseeds a zero
// state from a random source, which would make the split irreproducible.
func rngState(seed uint32) uint32 {
	const mix = 0x9e3779b9
	if s := seed ^ mix; s != 0 {
		return s
	}
	return mix
}
