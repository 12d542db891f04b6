package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, errors.Is(run(context.Background(), nil, &out), flag.ErrHelp))
	assert.Error(t, run(context.Background(), []string{"train"}, &out))

	require.NoError(t, run(context.Background(), []string{"version"}, &out))
	assert.Contains(t, out.String(), "INSIGHT")
}

func TestRun_ArtifactLifecycle(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	db := filepath.Join(dir, "artifacts.db")
	payload := filepath.Join(dir, "sales.json")
	require.NoError(t, os.WriteFile(payload, []byte(`{"features":["tv","radio","newspaper"],"coef":[0.05,0.1,0],"intercept":4.5}`), 0600))

	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"artifact", "put", "-db", db, "-payload", payload, "-name", "sales", "-kind", "linear_regression"}, &out))
	assert.Contains(t, out.String(), "stored sales v1")

	out.Reset()
	require.NoError(t, run(ctx, []string{"artifact", "list", "-db", db, "-all"}, &out))
	assert.Contains(t, out.String(), "linear_regression")

	out.Reset()
	require.NoError(t, run(ctx, []string{"artifact", "inspect", "-db", db, "-name", "sales"}, &out))
	assert.Contains(t, out.String(), `"intercept": 4.5`)
	assert.NotContains(t, out.String(), "checksum:")

	out.Reset()
	require.NoError(t, run(ctx, []string{"artifact", "delete", "-db", db, "-name", "sales"}, &out))
	assert.Error(t, run(ctx, []string{"artifact", "inspect", "-db", db, "-name", "sales"}, &out))
}

func TestRun_ArtifactPutNeedsSource(t *testing.T) {
	db := filepath.Join(t.TempDir(), "artifacts.db")
	assert.Error(t, run(context.Background(), []string{"artifact", "put", "-db", db}, &bytes.Buffer{}))
}
