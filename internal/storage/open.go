package storage

import (
	"context"
	"fmt"

	"apply-wizard/internal/common/config"
	"apply-wizard/internal/common/database"
	"apply-wizard/internal/common/logger"
)

// NewBackend builds the backend selected by cfg.Driver. The returned close
// function releases any connection the backend holds.
func NewBackend(ctx context.Context, cfg config.StorageConfig) (Backend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryBackend(), noop, nil
	case config.DriverFile, "":
		return NewFileBackend(cfg.File.Path), noop, nil
	case config.DriverRedis:
		client, err := database.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisBackend(client), client.Close, nil
	case config.DriverPostgres:
		client, err := database.NewPostgres(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		backend := NewPostgresBackend(client)
		if err := backend.EnsureSchema(ctx); err != nil {
			client.Close()
			return nil, nil, err
		}
		return backend, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// OpenFromConfig builds the configured backend and opens a LocalStore on it.
func OpenFromConfig(ctx context.Context, cfg config.StorageConfig, namespace string, log logger.Logger) (*LocalStore, func() error, error) {
	backend, closeFn, err := NewBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if namespace == "" {
		namespace = cfg.Namespace
	}
	store := NewLocalStore(backend, WithNamespace(namespace), WithLogger(log))
	if err := store.Open(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}
