package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-sod/insight/internal/artifact"
	"github.com/go-sod/insight/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := &database.Config{
		FileName:    filepath.Join(t.TempDir(), "artifacts.db"),
		OpenTimeout: time.Second,
	}
	db, err := database.NewFromEnv(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(context.Background()) })
	return New(db)
}

func TestDB_StoreGet(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	v1, err := artifact.New("carprice", artifact.KindLinearRegression, "v1", []byte(`{"coef":[1],"intercept":0}`))
	require.NoError(t, err)
	require.NoError(t, db.Store(ctx, v1))

	v2, err := artifact.New("carprice", artifact.KindLinearRegression, "v2", []byte(`{"coef":[2],"intercept":1}`))
	require.NoError(t, err)
	v2.CreatedAt = v1.CreatedAt.Add(time.Second)
	require.NoError(t, db.Store(ctx, v2))

	got, err := db.Get(ctx, "carprice")
	require.NoError(t, err)
	assert.Equal(t, v2.ID, got.ID)
	assert.Equal(t, "v2", got.Version)
	assert.NoError(t, got.Verify())

	versions, err := db.Versions(ctx, "carprice")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "v1", versions[0].Version)

	names, err := db.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"carprice"}, names)
}

func TestDB_GetMissing(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, artifact.ErrNotFound))
}

func TestDB_Delete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	a, err := artifact.New("sales", artifact.KindLinearRegression, "v1", []byte(`{}`))
	require.NoError(t, err)
	require.NoError(t, db.Store(ctx, a))
	require.NoError(t, db.Delete(ctx, "sales"))

	_, err = db.Get(ctx, "sales")
	assert.True(t, errors.Is(err, artifact.ErrNotFound))

	err = db.Delete(ctx, "sales")
	assert.True(t, errors.Is(err, artifact.ErrNotFound))
}
