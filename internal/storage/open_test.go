package storage

import (
	"context"
	"path/filepath"
	"testing"

	"apply-wizard/internal/common/config"
	"apply-wizard/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFromConfig(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	tests := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{name: "memory", cfg: config.StorageConfig{Driver: config.DriverMemory}},
		{name: "file", cfg: config.StorageConfig{Driver: config.DriverFile, File: config.FileConfig{Path: filepath.Join(t.TempDir(), "s.json")}}},
		{name: "redis", cfg: config.StorageConfig{Driver: config.DriverRedis, Redis: config.RedisConfig{Address: mr.Addr()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeFn, err := OpenFromConfig(context.Background(), tt.cfg, "ns", logger.NewTestLogger(t))
			require.NoError(t, err)
			defer closeFn()
			assert.True(t, store.Ready())
			assert.Equal(t, "ns", store.Namespace())
		})
	}
}

func TestNewBackend_UnknownDriver(t *testing.T) {
	_, _, err := NewBackend(context.Background(), config.StorageConfig{Driver: "sqlite"})
	assert.Error(t, err)
}
