package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"apply-wizard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	ctx := context.Background()

	first := NewLocalStore(NewFileBackend(path))
	require.NoError(t, first.Open(ctx))
	require.NoError(t, first.Save(ctx, "personalInfo", models.Record{"firstName": "Ana", "age": "30"}))

	second := NewLocalStore(NewFileBackend(path))
	require.NoError(t, second.Open(ctx))
	rec, err := second.Load(ctx, "personalInfo")
	require.NoError(t, err)
	assert.Equal(t, models.Record{"firstName": "Ana", "age": "30"}, rec)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileBackend_MissingFileReadsEmpty(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "storage.json"))
	_, found, err := backend.Get(context.Background(), "skills")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileBackend_CorruptFileFailsPing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("[1,2"), 0o600))

	backend := NewFileBackend(path)
	assert.Error(t, backend.Ping(context.Background()))

	store := NewLocalStore(backend)
	assert.Error(t, store.Open(context.Background()))
	assert.False(t, store.Ready())
}
