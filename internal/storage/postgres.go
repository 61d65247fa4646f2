package storage

import (
	"context"
	"fmt"

	"apply-wizard/internal/common/database"
)

const (
	createTableQuery = `CREATE TABLE IF NOT EXISTS wizard_storage (
		storage_key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	selectValueQuery = `SELECT value FROM wizard_storage WHERE storage_key = $1`

	upsertValueQuery = `INSERT INTO wizard_storage (storage_key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (storage_key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
)

// PostgresBackend keeps one row per key in the wizard_storage table.
type PostgresBackend struct {
	client *database.PostgresClient
}

func NewPostgresBackend(client *database.PostgresClient) *PostgresBackend {
	return &PostgresBackend{client: client}
}

// EnsureSchema creates the storage table when it does not exist yet.
func (p *PostgresBackend) EnsureSchema(ctx context.Context) error {
	if _, err := p.client.Exec(ctx, createTableQuery); err != nil {
		return fmt.Errorf("create wizard_storage: %w", err)
	}
	return nil
}

func (p *PostgresBackend) Get(ctx context.Context, key string) (string, bool, error) {
	return p.client.QueryString(ctx, selectValueQuery, key)
}

func (p *PostgresBackend) Set(ctx context.Context, key, value string) error {
	_, err := p.client.Exec(ctx, upsertValueQuery, key, value)
	return err
}

func (p *PostgresBackend) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}
