// Package artifact describes the envelope pre-fit models, vectorizers and
// forests are shipped in, and how they are read from disk.
package artifact

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type Kind string

const (
	KindLinearRegression Kind = "linear_regression"
	KindForestRegression Kind = "random_forest_regressor"
	KindTextVectorizer   Kind = "text_vectorizer"
	KindTextClassifier   Kind = "text_classifier"
)

var (
	ErrNotFound         = errors.New("artifact not found")
	ErrChecksumMismatch = errors.New("artifact checksum mismatch")
	ErrUnexpectedKind   = errors.New("unexpected artifact kind")
)

type Artifact struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Kind      Kind            `json:"kind"`
	Version   string          `json:"version"`
	Checksum  string          `json:"checksum"`
	CreatedAt time.Time       `json:"createdAt"`
	Payload   json.RawMessage `json:"payload"`
}

// New wraps payload and stamps it with an id and a checksum.
func New(name string, kind Kind, version string, payload []byte) (Artifact, error) {
	compact, err := compactJSON(payload)
	if err != nil {
		return Artifact{}, fmt.Errorf("artifact %s: invalid payload: %w", name, err)
	}
	return Artifact{
		ID:        uuid.New(),
		Name:      name,
		Kind:      kind,
		Version:   version,
		Checksum:  checksum(compact),
		CreatedAt: time.Now().UTC(),
		Payload:   compact,
	}, nil
}

// Verify recomputes the payload checksum. Artifacts without a checksum pass.
func (a Artifact) Verify() error {
	if a.Checksum == "" {
		return nil
	}
	compact, err := compactJSON(a.Payload)
	if err != nil {
		return fmt.Errorf("artifact %s: invalid payload: %w", a.Name, err)
	}
	if sum := checksum(compact); sum != a.Checksum {
		return fmt.Errorf("%w: %s has %s, computed %s", ErrChecksumMismatch, a.Name, a.Checksum, sum)
	}
	return nil
}

// Expect fails when the artifact is not of kind k.
func (a Artifact) Expect(k Kind) error {
	if a.Kind != k {
		return fmt.Errorf("%w: %s is %q, expected %q", ErrUnexpectedKind, a.Name, a.Kind, k)
	}
	return nil
}

// Unmarshal decodes the payload into v.
func (a Artifact) Unmarshal(v interface{}) error {
	if len(a.Payload) == 0 {
		return fmt.Errorf("artifact %s: empty payload", a.Name)
	}
	if err := json.Unmarshal(a.Payload, v); err != nil {
		return fmt.Errorf("artifact %s: decode payload: %w", a.Name, err)
	}
	return nil
}

func Decode(r io.Reader) (Artifact, error) {
	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return Artifact{}, fmt.Errorf("decode artifact: %w", err)
	}
	if err := a.Verify(); err != nil {
		return Artifact{}, err
	}
	return a, nil
}

// ReadFile loads an artifact envelope from path.
func ReadFile(path string) (Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Artifact{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Artifact{}, fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func WriteFile(path string, a Artifact) error {
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact %s: %w", a.Name, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	return nil
}

func compactJSON(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func checksum(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
