// Package text turns free text into sparse term vectors and scores them with
// pre-fit linear text classifiers.
package text

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/go-sod/insight/internal/artifact"
)

// Same tokens as a maximal run of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

type VectorizerPayload struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	Lowercase   *bool          `json:"lowercase"`
	Binary      bool           `json:"binary"`
	SublinearTF bool           `json:"sublinear_tf"`
	Norm        string         `json:"norm"`
	NgramRange  [2]int         `json:"ngram_range"`
	StopWords   []string       `json:"stop_words"`
}

// Sparse is a term vector keyed by vocabulary index.
type Sparse map[int]float64

// Indices returns the set indices in increasing order, so sums over a Sparse
// are reproducible.
func (s Sparse) Indices() []int {
	idx := make([]int, 0, len(s))
	for i := range s {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

type Vectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	lowercase   bool
	binary      bool
	sublinearTF bool
	norm        string
	minN, maxN  int
	stopWords   map[string]struct{}
}

func NewVectorizer(p VectorizerPayload) (*Vectorizer, error) {
	if len(p.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer has an empty vocabulary")
	}
	for term, idx := range p.Vocabulary {
		if idx < 0 || idx >= len(p.Vocabulary) {
			return nil, fmt.Errorf("vectorizer term %q has index %d outside [0, %d)", term, idx, len(p.Vocabulary))
		}
	}
	if len(p.IDF) > 0 && len(p.IDF) != len(p.Vocabulary) {
		return nil, fmt.Errorf("vectorizer has %d idf weights for %d terms", len(p.IDF), len(p.Vocabulary))
	}
	switch p.Norm {
	case "", "l1", "l2":
	default:
		return nil, fmt.Errorf("vectorizer norm %q is not supported", p.Norm)
	}
	minN, maxN := p.NgramRange[0], p.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("vectorizer ngram range [%d, %d] is invalid", minN, maxN)
	}
	v := &Vectorizer{
		vocabulary:  p.Vocabulary,
		idf:         p.IDF,
		lowercase:   p.Lowercase == nil || *p.Lowercase,
		binary:      p.Binary,
		sublinearTF: p.SublinearTF,
		norm:        p.Norm,
		minN:        minN,
		maxN:        maxN,
		stopWords:   make(map[string]struct{}, len(p.StopWords)),
	}
	for _, w := range p.StopWords {
		v.stopWords[w] = struct{}{}
	}
	return v, nil
}

func VectorizerFromArtifact(a artifact.Artifact) (*Vectorizer, error) {
	if err := a.Expect(artifact.KindTextVectorizer); err != nil {
		return nil, err
	}
	var p VectorizerPayload
	if err := a.Unmarshal(&p); err != nil {
		return nil, err
	}
	return NewVectorizer(p)
}

func (v *Vectorizer) Len() int {
	return len(v.vocabulary)
}

// Tokens splits text the way the vectorizer was fit: lowercase, word runs of
// length two or more, stop words removed.
func (v *Vectorizer) Tokens(text string) []string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	raw := tokenPattern.FindAllString(text, -1)
	tokens := raw[:0]
	for _, t := range raw {
		if _, stop := v.stopWords[t]; !stop {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Transform counts in-vocabulary n-grams, then applies binary, sublinear tf,
// idf and normalization in that order. Out of vocabulary terms are dropped.
func (v *Vectorizer) Transform(text string) Sparse {
	tokens := v.Tokens(text)
	out := Sparse{}
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := tokens[i]
			if n > 1 {
				term = strings.Join(tokens[i:i+n], " ")
			}
			if idx, ok := v.vocabulary[term]; ok {
				out[idx]++
			}
		}
	}

	for idx, tf := range out {
		switch {
		case v.binary:
			tf = 1
		case v.sublinearTF:
			tf = 1 + math.Log(tf)
		}
		if len(v.idf) > 0 {
			tf *= v.idf[idx]
		}
		out[idx] = tf
	}

	var norm float64
	switch v.norm {
	case "l2":
		for _, idx := range out.Indices() {
			norm += out[idx] * out[idx]
		}
		norm = math.Sqrt(norm)
	case "l1":
		for _, idx := range out.Indices() {
			norm += math.Abs(out[idx])
		}
	}
	if norm > 0 {
		for idx := range out {
			out[idx] /= norm
		}
	}
	return out
}
