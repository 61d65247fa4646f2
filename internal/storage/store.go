package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"apply-wizard/internal/common/errors"
	"apply-wizard/internal/common/logger"
	"apply-wizard/internal/models"
)

var (
	// ErrNotReady means the store has not been opened yet. Callers treat it
	// as "still loading", not as a failure.
	ErrNotReady = errors.New("STORE_NOT_READY")
)

// LocalStore reads and writes whole step records, one JSON document per key.
type LocalStore struct {
	backend   Backend
	namespace string
	logger    logger.Logger

	mu    sync.RWMutex
	ready bool
}

type Option func(*LocalStore)

// WithNamespace prefixes every key with "ns:".
func WithNamespace(ns string) Option {
	return func(s *LocalStore) { s.namespace = ns }
}

func WithLogger(log logger.Logger) Option {
	return func(s *LocalStore) { s.logger = log }
}

func NewLocalStore(backend Backend, opts ...Option) *LocalStore {
	s := &LocalStore{
		backend: backend,
		logger:  logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithFields(map[string]interface{}{"component": "local-store"})
	return s
}

// Open pings the backend; the store serves loads only after Open succeeds.
func (s *LocalStore) Open(ctx context.Context) error {
	if err := s.backend.Ping(ctx); err != nil {
		s.logger.Error("store unavailable", map[string]interface{}{"error": err})
		return errors.NewStoreUnavailableError(err)
	}
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
	s.logger.Debug("store ready", map[string]interface{}{"namespace": s.namespace})
	return nil
}

func (s *LocalStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *LocalStore) Namespace() string { return s.namespace }

func (s *LocalStore) storageKey(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

// Load returns the record stored under key. An absent, empty or null value
// is materialized as "{}" and returned as an empty record.
func (s *LocalStore) Load(ctx context.Context, key string) (models.Record, error) {
	rec, found, err := s.Peek(ctx, key)
	if err != nil || found {
		return rec, err
	}

	full := s.storageKey(key)
	if err := s.backend.Set(ctx, full, "{}"); err != nil {
		s.logger.Error("store write failed", map[string]interface{}{"key": full, "error": err})
		return nil, errors.NewStoreWriteFailedError(full, err)
	}
	return models.Record{}, nil
}

// Peek reads the record under key without writing anything. found is false
// for an absent, empty or null value.
func (s *LocalStore) Peek(ctx context.Context, key string) (models.Record, bool, error) {
	if !s.Ready() {
		return nil, false, ErrNotReady
	}

	full := s.storageKey(key)
	raw, found, err := s.backend.Get(ctx, full)
	if err != nil {
		s.logger.Error("store read failed", map[string]interface{}{"key": full, "error": err})
		return nil, false, errors.NewStoreReadFailedError(full, err)
	}

	trimmed := strings.TrimSpace(raw)
	if !found || trimmed == "" || trimmed == "null" {
		return models.Record{}, false, nil
	}

	rec, err := models.Decode([]byte(trimmed))
	if err != nil {
		return nil, false, errors.NewRecordDecodeError(full, err)
	}
	return rec, true, nil
}

// Save overwrites the record stored under key. Nothing is merged.
func (s *LocalStore) Save(ctx context.Context, key string, rec models.Record) error {
	if !s.Ready() {
		return ErrNotReady
	}

	full := s.storageKey(key)
	data, err := rec.Encode()
	if err != nil {
		return errors.NewStoreWriteFailedError(full, fmt.Errorf("encode: %w", err))
	}
	if err := s.backend.Set(ctx, full, string(data)); err != nil {
		s.logger.Error("store write failed", map[string]interface{}{"key": full, "error": err})
		return errors.NewStoreWriteFailedError(full, err)
	}
	s.logger.Debug("record saved", map[string]interface{}{"key": full, "bytes": len(data)})
	return nil
}
