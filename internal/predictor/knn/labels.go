package knn

import (
	"fmt"
	"sort"
)

// LabelEncoder maps the distinct class names, sorted, to 0..n-1.
type LabelEncoder struct {
	labels []string
	index  map[string]int
}

func FitLabels(values []string) *LabelEncoder {
	index := map[string]int{}
	for _, v := range values {
		index[v] = 0
	}
	labels := make([]string, 0, len(index))
	for v := range index {
		labels = append(labels, v)
	}
	sort.Strings(labels)
	for i, v := range labels {
		index[v] = i
	}
	return &LabelEncoder{labels: labels, index: index}
}

func (e *LabelEncoder) Encode(label string) (int, error) {
	idx, ok := e.index[label]
	if !ok {
		return 0, fmt.Errorf("unknown class %q", label)
	}
	return idx, nil
}

func (e *LabelEncoder) Decode(class int) (string, error) {
	if class < 0 || class >= len(e.labels) {
		return "", fmt.Errorf("class %d out of range [0, %d)", class, len(e.labels))
	}
	return e.labels[class], nil
}

func (e *LabelEncoder) Labels() []string {
	return e.labels
}
