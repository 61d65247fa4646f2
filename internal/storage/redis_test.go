package storage

import (
	"context"
	"errors"
	"testing"

	"apply-wizard/internal/common/config"
	"apply-wizard/internal/common/database"
	apperrors "apply-wizard/internal/common/errors"
	"apply-wizard/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBackend_RoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	store := NewLocalStore(NewRedisBackend(client), WithNamespace("s1"))
	require.NoError(t, store.Open(ctx))

	rec, err := store.Load(ctx, "skills")
	require.NoError(t, err)
	assert.Empty(t, rec)
	got, err := mr.Get("s1:skills")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)

	want := models.Record{"leadership": "4", "languagesSpoken": []interface{}{"English", "German"}}
	require.NoError(t, store.Save(ctx, "skills", want))
	assert.Zero(t, mr.TTL("s1:skills"))

	loaded, err := store.Load(ctx, "skills")
	require.NoError(t, err)
	assert.Equal(t, want, loaded)
}

func TestRedisBackend_Errors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	backend := NewRedisBackend(database.NewRedisFromClient(db))
	store := NewLocalStore(backend)
	ctx := context.Background()

	mock.ExpectPing().SetVal("PONG")
	require.NoError(t, store.Open(ctx))

	mock.ExpectGet("personalInfo").SetErr(errors.New("connection reset"))
	_, err := store.Load(ctx, "personalInfo")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStoreReadFailed))

	mock.ExpectGet("personalInfo").RedisNil()
	mock.ExpectSet("personalInfo", "{}", 0).SetErr(errors.New("READONLY"))
	_, err = store.Load(ctx, "personalInfo")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStoreWriteFailed))

	assert.NoError(t, mock.ExpectationsWereMet())
}
