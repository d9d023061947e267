package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Yamikowu/studdy/internal/core/kv"
)

var (
	// ErrNotFound is returned when an item or subtask does not exist.
	ErrNotFound = errors.New("todo item not found")
)

// Storage keys, scoped under Namespace.
const (
	Namespace     = "studdy"
	itemsKey      = "todos"
	skipMarkerKey = "skipLunchDate"

	// SnapshotKey is the full key holding the item list.
	SnapshotKey = Namespace + ":" + itemsKey
)

// Store persists the item list as a single snapshot under one key.
type Store struct {
	raw     *kv.TypedKV[json.RawMessage]
	items   *kv.TypedKV[[]Item]
	markers *kv.TypedKV[SkipMarker]
	log     zerolog.Logger
}

// NewStore creates a Store over the given key-value backend.
func NewStore(store kv.KV) *Store {
	return &Store{
		raw:     kv.Scoped[json.RawMessage](store, Namespace),
		items:   kv.Scoped[[]Item](store, Namespace),
		markers: kv.Scoped[SkipMarker](store, Namespace),
		log:     zerolog.Nop(),
	}
}

// WithLogger sets the logger used to report records dropped by Load.
func (s *Store) WithLogger(log zerolog.Logger) *Store {
	s.log = log
	return s
}

// Load returns the stored snapshot. found is false when nothing has been
// saved yet, which callers use to decide whether to seed. A snapshot that is
// not a JSON array loads as empty, and elements that do not decode as an
// Item are skipped.
func (s *Store) Load(ctx context.Context) (items []Item, found bool, err error) {
	raw, found, err := s.raw.Lookup(ctx, itemsKey)
	if err != nil {
		return nil, false, fmt.Errorf("load todos: %w", err)
	}
	if !found {
		return []Item{}, false, nil
	}

	items, skipped, ok := DecodeItems(raw)
	if !ok {
		s.log.Warn().Ctx(ctx).Msg("stored todos are not a list; treating as empty")
	}
	for _, i := range skipped {
		s.log.Debug().Ctx(ctx).Int("index", i).Msg("skipping malformed todo")
	}
	return items, true, nil
}

// DecodeItems decodes a stored snapshot element by element. ok is false when
// data is not a JSON array; skipped holds the indexes of elements that failed
// to decode.
func DecodeItems(data []byte) (items []Item, skipped []int, ok bool) {
	items = []Item{}

	var elems []json.RawMessage
	if len(bytes.TrimSpace(data)) == 0 || json.Unmarshal(data, &elems) != nil {
		return items, nil, false
	}

	for i, elem := range elems {
		var it Item
		if err := json.Unmarshal(elem, &it); err != nil {
			skipped = append(skipped, i)
			continue
		}
		items = append(items, it)
	}
	return items, skipped, true
}

// Save replaces the stored snapshot.
func (s *Store) Save(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	if err := s.items.Set(ctx, itemsKey, items); err != nil {
		return fmt.Errorf("save todos: %w", err)
	}
	return nil
}

// SkipMarker returns the current lunch skip marker, or nil when none is set
// or it has expired.
func (s *Store) SkipMarker(ctx context.Context) (*SkipMarker, error) {
	m, ok, err := s.markers.Lookup(ctx, skipMarkerKey)
	if err != nil {
		return nil, fmt.Errorf("load skip marker: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// SetSkipMarker stores m with SkipMarkerTTL.
func (s *Store) SetSkipMarker(ctx context.Context, m SkipMarker) error {
	if err := s.markers.SetTTL(ctx, skipMarkerKey, m, SkipMarkerTTL); err != nil {
		return fmt.Errorf("save skip marker: %w", err)
	}
	return nil
}

// ClearSkipMarker removes the skip marker.
func (s *Store) ClearSkipMarker(ctx context.Context) error {
	if err := s.markers.Delete(ctx, skipMarkerKey); err != nil {
		return fmt.Errorf("clear skip marker: %w", err)
	}
	return nil
}
