package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNew_Verify(t *testing.T) {
	a, err := New("carprice", KindLinearRegression, "v1", []byte(`{ "coef": [1, 2],  "intercept": 3 }`))
	require.NoError(t, err)
	assert.Equal(t, `{"coef":[1,2],"intercept":3}`, string(a.Payload))
	assert.NoError(t, a.Verify())

	a.Payload = []byte(`{"coef":[1,2],"intercept":4}`)
	assert.True(t, errors.Is(a.Verify(), ErrChecksumMismatch))
}

func TestNew_InvalidPayload(t *testing.T) {
	_, err := New("broken", KindLinearRegression, "v1", []byte(`{"coef":`))
	assert.Error(t, err)
}

func TestArtifact_Expect(t *testing.T) {
	a := Artifact{Name: "x", Kind: KindTextVectorizer}
	assert.NoError(t, a.Expect(KindTextVectorizer))
	assert.True(t, errors.Is(a.Expect(KindTextClassifier), ErrUnexpectedKind))
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	a, err := New("sales", KindLinearRegression, "v1", []byte(`{"coef":[0.05,0.1,0],"intercept":4.6}`))
	require.NoError(t, err)
	require.NoError(t, WriteFile(path, a))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.Checksum, got.Checksum)

	var payload struct {
		Coef      []float64 `json:"coef"`
		Intercept float64   `json:"intercept"`
	}
	require.NoError(t, got.Unmarshal(&payload))
	assert.Equal(t, []float64{0.05, 0.1, 0}, payload.Coef)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, IsNotFound(err))
}

type getterMock struct {
	mock.Mock
}

func (m *getterMock) Get(ctx context.Context, name string) (Artifact, error) {
	args := m.Called(name)
	return args.Get(0).(Artifact), args.Error(1)
}

func TestResolver_Resolve(t *testing.T) {
	dir := t.TempDir()
	fileArtifact, err := New("file", KindLinearRegression, "v1", []byte(`{}`))
	require.NoError(t, err)
	defaultPath := filepath.Join(dir, "default.json")
	require.NoError(t, WriteFile(defaultPath, fileArtifact))

	stored, err := New("stored", KindLinearRegression, "v7", []byte(`{}`))
	require.NoError(t, err)
	store := &getterMock{}
	store.On("Get", "stored").Return(stored, nil)

	manifestPath := filepath.Join(dir, "insight.toml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("[artifacts.carprice]\nname = \"stored\"\n"), 0o644))
	manifest, err := LoadManifest(manifestPath)
	require.NoError(t, err)

	r := NewResolver(manifest, store)
	ctx := context.Background()

	got, err := r.Resolve(ctx, "carprice", defaultPath)
	require.NoError(t, err)
	assert.Equal(t, "v7", got.Version)

	got, err = r.Resolve(ctx, "sales", defaultPath)
	require.NoError(t, err)
	assert.Equal(t, fileArtifact.ID, got.ID)

	_, err = r.Resolve(ctx, "spam", "")
	assert.True(t, IsNotFound(err))

	_, err = NewResolver(manifest, nil).Resolve(ctx, "carprice", defaultPath)
	assert.Error(t, err)
	store.AssertExpectations(t)
}
