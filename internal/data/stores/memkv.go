package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Yamikowu/studdy/internal/core/kv"
	mapkv "github.com/Yamikowu/studdy/pkg/kv"
)

type memEntry struct {
	value     json.RawMessage
	expiresAt *time.Time
	createdAt time.Time
	updatedAt time.Time
}

// MemoryKV implements kv.KV in process memory. Nothing survives the process.
type MemoryKV struct {
	data *mapkv.Store[string, memEntry]
	now  func() time.Time
}

var _ kv.KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: mapkv.New[string, memEntry](), now: time.Now}
}

// WithClock replaces the clock used for TTL checks.
func (m *MemoryKV) WithClock(now func() time.Time) *MemoryKV {
	m.now = now
	return m
}

func (m *MemoryKV) lookup(key string) (memEntry, bool) {
	e, ok := m.data.Get(key)
	if !ok {
		return memEntry{}, false
	}
	if e.expiresAt != nil && !e.expiresAt.After(m.now()) {
		m.data.Delete(key)
		return memEntry{}, false
	}
	return e, true
}

func (m *MemoryKV) Get(_ context.Context, key string, dest any) error {
	e, ok := m.lookup(key)
	if !ok {
		return fmt.Errorf("kv get %q: %w", key, sql.ErrNoRows)
	}
	if err := json.Unmarshal(e.value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value any) error {
	return m.set(key, value, nil)
}

func (m *MemoryKV) SetTTL(_ context.Context, key string, value any, ttl time.Duration) error {
	expiresAt := m.now().Add(ttl)
	return m.set(key, value, &expiresAt)
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.data.Delete(key)
	return nil
}

func (m *MemoryKV) Has(_ context.Context, key string) (bool, error) {
	_, ok := m.lookup(key)
	return ok, nil
}

func (m *MemoryKV) ListKeys(_ context.Context) ([]string, error) {
	keys := make([]string, 0, m.data.Len())
	for _, k := range m.data.Keys() {
		if _, ok := m.lookup(k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryKV) GetRaw(_ context.Context, key string) (kv.Entry, error) {
	e, ok := m.lookup(key)
	if !ok {
		return kv.Entry{}, fmt.Errorf("kv get raw %q: %w", key, sql.ErrNoRows)
	}
	return kv.Entry{
		Key:       key,
		Value:     e.value,
		ExpiresAt: e.expiresAt,
		CreatedAt: e.createdAt,
		UpdatedAt: e.updatedAt,
	}, nil
}

// CountExpired reports entries past their TTL that have not been swept.
func (m *MemoryKV) CountExpired(_ context.Context) (int, error) {
	now := m.now()
	n := 0
	for _, k := range m.data.Keys() {
		if e, ok := m.data.Get(k); ok && e.expiresAt != nil && !e.expiresAt.After(now) {
			n++
		}
	}
	return n, nil
}

// SweepExpired deletes all entries whose TTL has passed.
func (m *MemoryKV) SweepExpired(_ context.Context) error {
	now := m.now()
	m.data.DeleteFunc(func(_ string, e memEntry) bool {
		return e.expiresAt != nil && !e.expiresAt.After(now)
	})
	return nil
}

func (m *MemoryKV) set(key string, value any, expiresAt *time.Time) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	now := m.now()
	created := now
	if prev, ok := m.data.Get(key); ok {
		created = prev.createdAt
	}
	m.data.Set(key, memEntry{value: data, expiresAt: expiresAt, createdAt: created, updatedAt: now})
	return nil
}
