package iris

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-sod/insight/internal/feature"
	"github.com/go-sod/insight/internal/predictor/knn"
)

const ColumnSpecies = "Species"

// Dataset is the labelled iris table, species encoded in sorted order.
type Dataset struct {
	Labels  *knn.LabelEncoder
	Samples []knn.Sample
}

func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open iris dataset %s: %w", path, err)
	}
	defer f.Close()

	ds, err := ParseDataset(f)
	if err != nil {
		return nil, fmt.Errorf("iris dataset %s: %w", path, err)
	}
	return ds, nil
}

// ParseDataset reads the four IrisSchemaV1 columns and Species. Any other
// column, Id included, is ignored.
func ParseDataset(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	cols := map[string]int{}
	for i, h := range headers {
		cols[strings.TrimSpace(h)] = i
	}
	want := append(append([]string(nil), feature.IrisSchemaV1.Fields...), ColumnSpecies)
	idx := make([]int, len(want))
	for i, name := range want {
		c, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		idx[i] = c
	}

	var (
		vectors []feature.Vector
		species []string
	)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		vec := make(feature.Vector, feature.IrisSchemaV1.Len())
		for i := range vec {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[idx[i]]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, want[i], err)
			}
			vec[i] = v
		}
		label := strings.TrimSpace(row[idx[len(idx)-1]])
		if label == "" {
			return nil, fmt.Errorf("line %d: empty species", line)
		}
		vectors = append(vectors, vec)
		species = append(species, label)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no rows", knn.ErrNotEnoughSamples)
	}

	labels := knn.FitLabels(species)
	samples := make([]knn.Sample, len(vectors))
	for i := range vectors {
		class, err := labels.Encode(species[i])
		if err != nil {
			return nil, err
		}
		samples[i] = knn.Sample{Vec: vectors[i], Class: class}
	}
	return &Dataset{Labels: labels, Samples: samples}, nil
}
