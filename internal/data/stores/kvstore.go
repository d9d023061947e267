package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Yamikowu/studdy/internal/core/kv"
	"github.com/Yamikowu/studdy/internal/data/db"
)

// KVStore keeps study data in the SQLite kv_store table. Values are JSON,
// timestamps are unix nanoseconds. A row past its expiry reads as missing
// and is dropped on the way out.
type KVStore struct {
	db  *db.DB
	now func() time.Time
}

var _ kv.KV = (*KVStore)(nil)

func NewKVStore(database *db.DB) *KVStore {
	return &KVStore{db: database, now: time.Now}
}

func (s *KVStore) Get(ctx context.Context, key string, dest any) error {
	row, err := s.fetch(ctx, key)
	if err != nil {
		return fmt.Errorf("kv get %q: %w", key, err)
	}
	if err := json.Unmarshal(row.Value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

func (s *KVStore) Set(ctx context.Context, key string, value any) error {
	return s.put(ctx, key, value, sql.NullInt64{})
}

func (s *KVStore) SetTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	deadline := s.now().Add(ttl)
	return s.put(ctx, key, value, sql.NullInt64{Int64: deadline.UnixNano(), Valid: true})
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.db.Queries().KVDelete(ctx, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	count, err := s.db.Queries().KVHas(ctx, key)
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	if count == 0 {
		return false, nil
	}
	switch _, err := s.fetch(ctx, key); {
	case err == nil:
		return true, nil
	case kv.IsNotFound(err):
		return false, nil
	default:
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
}

// ListKeys returns live keys sorted by name.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := s.db.Queries().KVListKeys(ctx, s.clock())
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	return keys, nil
}

func (s *KVStore) GetRaw(ctx context.Context, key string) (kv.Entry, error) {
	row, err := s.fetch(ctx, key)
	if err != nil {
		return kv.Entry{}, fmt.Errorf("kv get raw %q: %w", key, err)
	}
	return toEntry(row), nil
}

// CountExpired reports how many rows are past their expiry but not yet swept.
func (s *KVStore) CountExpired(ctx context.Context) (int, error) {
	n, err := s.db.Queries().KVCountExpired(ctx, s.clock())
	if err != nil {
		return 0, fmt.Errorf("kv count expired: %w", err)
	}
	return int(n), nil
}

func (s *KVStore) SweepExpired(ctx context.Context) error {
	if err := s.db.Queries().KVSweepExpired(ctx, s.clock()); err != nil {
		return fmt.Errorf("kv sweep expired: %w", err)
	}
	return nil
}

// fetch loads a live row. Expired rows are deleted and reported as
// sql.ErrNoRows.
func (s *KVStore) fetch(ctx context.Context, key string) (db.KvStore, error) {
	row, err := s.db.Queries().KVGet(ctx, key)
	if err != nil {
		return db.KvStore{}, err
	}
	if row.ExpiresAt.Valid && row.ExpiresAt.Int64 <= s.now().UnixNano() {
		_ = s.db.Queries().KVDelete(ctx, key)
		return db.KvStore{}, sql.ErrNoRows
	}
	return row, nil
}

func (s *KVStore) put(ctx context.Context, key string, value any, expiresAt sql.NullInt64) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	stamp := s.now().UnixNano()
	err = s.db.Queries().KVSet(ctx, db.KVSetParams{
		Key:       key,
		Value:     data,
		ExpiresAt: expiresAt,
		CreatedAt: stamp,
		UpdatedAt: stamp,
	})
	switch {
	case err == nil:
		return nil
	case IsBusyError(err):
		return fmt.Errorf("kv set %q: database is busy: %w", key, err)
	default:
		return fmt.Errorf("kv set %q: %w", key, err)
	}
}

func (s *KVStore) clock() sql.NullInt64 {
	return sql.NullInt64{Int64: s.now().UnixNano(), Valid: true}
}

func toEntry(row db.KvStore) kv.Entry {
	e := kv.Entry{
		Key:       row.Key,
		Value:     json.RawMessage(row.Value),
		CreatedAt: time.Unix(0, row.CreatedAt),
		UpdatedAt: time.Unix(0, row.UpdatedAt),
	}
	if row.ExpiresAt.Valid {
		t := time.Unix(0, row.ExpiresAt.Int64)
		e.ExpiresAt = &t
	}
	return e
}
