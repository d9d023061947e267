package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yamikowu/studdy/internal/core/config"
	"github.com/Yamikowu/studdy/internal/core/course"
	"github.com/Yamikowu/studdy/internal/core/todo"
	"github.com/Yamikowu/studdy/internal/data/stores"
)

type itemList []todo.Item

func (l itemList) List(context.Context) ([]todo.Item, error) { return l, nil }

type courseList []course.Course

func (l courseList) List(context.Context) ([]course.Course, error) { return l, nil }

type failingItems struct{}

func (failingItems) List(context.Context) ([]todo.Item, error) { return nil, errors.New("boom") }

func TestRunAll_SetsStatusStrAndSummary(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Seed = false

	results := RunAll(context.Background(), []Check{
		NewConfigCheck(&cfg, filepath.Join(t.TempDir(), "missing.yaml")),
	})

	require.Len(t, results, 1)
	for _, item := range results[0].Items {
		assert.Equal(t, string(item.Status), item.StatusStr)
	}

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, warned, "seed disabled warning")
	assert.Equal(t, 0, failed)
}

func TestCountFixable(t *testing.T) {
	results := []Result{{Items: []CheckItem{
		{Status: StatusWarn, Fixable: true},
		{Status: StatusPass, Fixable: true},
		{Status: StatusFail},
	}}}
	assert.Equal(t, 1, CountFixable(results))
}

func TestConfigCheck_InvalidFields(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Theme = "nope"

	result := NewConfigCheck(&cfg, "").Run(context.Background())

	var failed []string
	for _, item := range result.Items {
		if item.Status == StatusFail {
			failed = append(failed, item.Label)
		}
	}
	assert.Contains(t, failed, "theme")
}

func TestConfigCheck_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: gruvbox\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	result := NewConfigCheck(&cfg, path).Run(context.Background())
	require.NotEmpty(t, result.Items)
	assert.Equal(t, path, result.Items[0].Detail)
}

func TestStorageCheck(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 11, 12, 9, 0, 0, 0, time.Local)
	store := stores.NewMemoryKV().WithClock(func() time.Time { return now })
	require.NoError(t, store.Set(ctx, todo.SnapshotKey, []todo.Item{{ID: "1", Title: "x"}}))
	require.NoError(t, store.SetTTL(ctx, "studdy:skipLunchDate", "2025-11-12", time.Hour))

	result := NewStorageCheck(store, "in-memory", true).Run(ctx)

	require.Len(t, result.Items, 3)
	assert.Equal(t, "in-memory", result.Items[0].Detail)
	assert.Equal(t, "expired keys", result.Items[1].Label)
	assert.Equal(t, StatusPass, result.Items[1].Status)
	assert.Equal(t, "none", result.Items[1].Detail)
	assert.Equal(t, "2 readable", result.Items[2].Detail)
}

func TestStorageCheck_NoAutofix(t *testing.T) {
	result := NewStorageCheck(stores.NewMemoryKV(), "in-memory", false).Run(context.Background())

	require.Len(t, result.Items, 3)
	assert.Equal(t, StatusPass, result.Items[1].Status)
	assert.Equal(t, "0 readable", result.Items[2].Detail)
	assert.Zero(t, CountFixable([]Result{result}))
}

func TestStorageCheck_ExpiredKeys(t *testing.T) {
	ctx := context.Background()
	staleStore := func(t *testing.T) *stores.MemoryKV {
		now := time.Date(2025, 11, 12, 9, 0, 0, 0, time.Local)
		store := stores.NewMemoryKV().WithClock(func() time.Time { return now })
		require.NoError(t, store.Set(ctx, todo.SnapshotKey, []todo.Item{}))
		require.NoError(t, store.SetTTL(ctx, "studdy:skipLunchDate", "2025-11-12", time.Minute))
		now = now.Add(time.Hour)
		return store
	}

	t.Run("reported as fixable", func(t *testing.T) {
		result := NewStorageCheck(staleStore(t), "in-memory", false).Run(ctx)

		expired := result.Items[1]
		assert.Equal(t, "expired keys", expired.Label)
		assert.Equal(t, StatusWarn, expired.Status)
		assert.True(t, expired.Fixable)
		assert.Equal(t, "1 expired", expired.Detail)
		assert.Equal(t, 1, CountFixable([]Result{result}))
	})

	t.Run("swept with autofix", func(t *testing.T) {
		store := staleStore(t)
		result := NewStorageCheck(store, "in-memory", true).Run(ctx)

		expired := result.Items[1]
		assert.Equal(t, StatusPass, expired.Status)
		assert.Equal(t, "swept 1", expired.Detail)
		assert.Zero(t, CountFixable([]Result{result}))

		n, err := store.CountExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestStorageCheck_MalformedSnapshot(t *testing.T) {
	tests := []struct {
		name   string
		value  json.RawMessage
		detail string
	}{
		{name: "not a list", value: json.RawMessage(`{"todos":[]}`), detail: "not a list; read as empty"},
		{name: "bad element", value: json.RawMessage(`[{"id":"a"},{"id":2}]`), detail: "1 malformed items skipped, 1 kept"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := stores.NewMemoryKV()
			require.NoError(t, store.Set(ctx, todo.SnapshotKey, tt.value))

			result := NewStorageCheck(store, "in-memory", false).Run(ctx)

			var found *CheckItem
			for i := range result.Items {
				if result.Items[i].Label == todo.SnapshotKey {
					found = &result.Items[i]
				}
			}
			require.NotNil(t, found)
			assert.Equal(t, StatusWarn, found.Status)
			assert.Equal(t, tt.detail, found.Detail)
		})
	}
}

func TestItemsCheck(t *testing.T) {
	items := itemList{
		{ID: "a", Title: "ok", Time: "2025-11-12T09:00", CourseID: "1"},
		{ID: "b", Title: "bad time", Time: "tomorrow-ish"},
		{ID: "c", Title: "bad deadline", Deadline: "soon", Category: todo.Quiz},
		{ID: "d", Title: "orphan", CourseID: "zzz"},
	}
	courses := courseList{{ID: "1", Name: "Operating Systems"}}

	result := NewItemsCheck(items, courses, time.Local).Run(context.Background())

	require.Len(t, result.Items, 4)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "4 items, 1 courses", result.Items[0].Detail)

	assert.Equal(t, "b bad time", result.Items[1].Label)
	assert.Contains(t, result.Items[1].Detail, "hidden from the timeline")
	assert.Equal(t, "c bad deadline", result.Items[2].Label)
	assert.Equal(t, "d orphan", result.Items[3].Label)
	assert.Contains(t, result.Items[3].Detail, "unknown course")
}

func TestItemsCheck_ListError(t *testing.T) {
	result := NewItemsCheck(failingItems{}, courseList{}, time.Local).Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Equal(t, "boom", result.Items[0].Detail)
}
