package doctor

import (
	"context"
	"fmt"

	"github.com/Yamikowu/studdy/internal/core/kv"
	"github.com/Yamikowu/studdy/internal/core/todo"
)

// Sweeper counts and removes expired keys.
type Sweeper interface {
	CountExpired(ctx context.Context) (int, error)
	SweepExpired(ctx context.Context) error
}

// StorageCheck verifies that every stored key can be read back.
type StorageCheck struct {
	store    kv.KV
	location string
	autofix  bool
}

// NewStorageCheck creates a storage check. location describes the backend
// for display. With autofix set, expired keys are swept when the store
// supports it.
func NewStorageCheck(store kv.KV, location string, autofix bool) *StorageCheck {
	return &StorageCheck{store: store, location: location, autofix: autofix}
}

func (c *StorageCheck) Name() string {
	return "Storage"
}

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	result.Items = append(result.Items, CheckItem{
		Label:  "backend",
		Status: StatusPass,
		Detail: c.location,
	})

	if s, ok := c.store.(Sweeper); ok {
		result.Items = append(result.Items, c.checkExpired(ctx, s))
	}

	keys, err := c.store.ListKeys(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "keys",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	unreadable := 0
	for _, key := range keys {
		entry, err := c.store.GetRaw(ctx, key)
		switch {
		case kv.IsNotFound(err):
		case err != nil:
			unreadable++
			result.Items = append(result.Items, CheckItem{
				Label:  key,
				Status: StatusFail,
				Detail: err.Error(),
			})
		case key == todo.SnapshotKey:
			if item, bad := checkSnapshot(entry.Value); bad {
				result.Items = append(result.Items, item)
			}
		}
	}

	if unreadable == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "keys",
			Status: StatusPass,
			Detail: fmt.Sprintf("%d readable", len(keys)),
		})
	}

	return result
}

func (c *StorageCheck) checkExpired(ctx context.Context, s Sweeper) CheckItem {
	item := CheckItem{Label: "expired keys", Status: StatusPass, Detail: "none"}

	n, err := s.CountExpired(ctx)
	switch {
	case err != nil:
		item.Status = StatusFail
		item.Detail = err.Error()
		return item
	case n == 0:
		return item
	}

	if !c.autofix {
		item.Status = StatusWarn
		item.Detail = fmt.Sprintf("%d expired", n)
		item.Fixable = true
		return item
	}

	if err := s.SweepExpired(ctx); err != nil {
		item.Status = StatusFail
		item.Detail = err.Error()
		return item
	}
	item.Detail = fmt.Sprintf("swept %d", n)
	return item
}

// checkSnapshot reports a todo snapshot that only partly decodes.
func checkSnapshot(data []byte) (CheckItem, bool) {
	items, skipped, ok := todo.DecodeItems(data)
	switch {
	case !ok:
		return CheckItem{
			Label:  todo.SnapshotKey,
			Status: StatusWarn,
			Detail: "not a list; read as empty",
		}, true
	case len(skipped) > 0:
		return CheckItem{
			Label:  todo.SnapshotKey,
			Status: StatusWarn,
			Detail: fmt.Sprintf("%d malformed items skipped, %d kept", len(skipped), len(items)),
		}, true
	}
	return CheckItem{}, false
}
