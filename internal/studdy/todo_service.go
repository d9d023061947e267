package studdy

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/Yamikowu/studdy/internal/core/timeline"
	"github.com/Yamikowu/studdy/internal/core/todo"
	"github.com/Yamikowu/studdy/pkg/randid"
)

const idLength = 8

// ErrSubtaskNotFound is returned when a subtask ID does not exist on an item.
var ErrSubtaskNotFound = errors.New("subtask not found")

// TodoService wraps todo.Store with seeding, daily recurrence and the
// create/edit rules of the item forms.
type TodoService struct {
	store *todo.Store
	rule  todo.LunchRule
	seed  bool
	now   func() time.Time
	log   zerolog.Logger
}

// NewTodoService creates a new TodoService.
func NewTodoService(store *todo.Store, rule todo.LunchRule, seed bool, log zerolog.Logger) *TodoService {
	return &TodoService{
		store: store,
		rule:  rule,
		seed:  seed,
		now:   time.Now,
		log:   log.With().Str("component", "todo-service").Logger(),
	}
}

// WithClock replaces the clock used for daily recurrence.
func (s *TodoService) WithClock(now func() time.Time) *TodoService {
	s.now = now
	return s
}

// Now returns the service clock's current time.
func (s *TodoService) Now() time.Time { return s.now() }

// List returns every item after seeding an empty store and applying the
// daily lunch rule. A snapshot changed by either step is written back.
func (s *TodoService) List(ctx context.Context) ([]todo.Item, error) {
	items, found, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	changed := false
	if !found && s.seed {
		s.log.Info().Ctx(ctx).Msg("seeding default todos")
		items = todo.DefaultItems()
		changed = true
	}

	now := s.now()
	skip, err := s.store.SkipMarker(ctx)
	if err != nil {
		return nil, err
	}
	if skip != nil && !skip.ValidAt(now) {
		s.log.Debug().Ctx(ctx).Str("date", skip.Date).Msg("clearing stale lunch skip marker")
		if err := s.store.ClearSkipMarker(ctx); err != nil {
			return nil, err
		}
		skip = nil
	}

	normalized := todo.NormalizeDailyRecurrence(items, now, skip, s.rule)
	if changed || !reflect.DeepEqual(items, normalized) {
		if err := s.store.Save(ctx, normalized); err != nil {
			return nil, err
		}
	}

	return normalized, nil
}

// Get returns the item with the given ID.
func (s *TodoService) Get(ctx context.Context, id string) (todo.Item, error) {
	items, err := s.List(ctx)
	if err != nil {
		return todo.Item{}, err
	}
	i := todo.Find(items, id)
	if i < 0 {
		return todo.Item{}, fmt.Errorf("%w: %s", todo.ErrNotFound, id)
	}
	return items[i], nil
}

// Create normalizes, validates and stores a new item. The item gets a fresh
// ID unless it carries an unused one.
func (s *TodoService) Create(ctx context.Context, it todo.Item) (todo.Item, error) {
	var created todo.Item
	err := s.mutate(ctx, func(items []todo.Item) ([]todo.Item, error) {
		it = todo.Normalize(it)
		if err := todo.Validate(it); err != nil {
			return nil, err
		}
		it = withIDs(it, items)
		created = it
		return append(items, it), nil
	})
	if err != nil {
		return todo.Item{}, err
	}

	s.log.Debug().Ctx(ctx).Str("id", created.ID).Str("category", created.Category.String()).Msg("todo created")
	return created, nil
}

// Update replaces the stored item with the same ID.
func (s *TodoService) Update(ctx context.Context, it todo.Item) (todo.Item, error) {
	err := s.mutate(ctx, func(items []todo.Item) ([]todo.Item, error) {
		i := todo.Find(items, it.ID)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", todo.ErrNotFound, it.ID)
		}
		it = todo.Normalize(it)
		if err := todo.Validate(it); err != nil {
			return nil, err
		}
		it.Subtasks = withSubtaskIDs(it.Subtasks)
		items[i] = it
		return items, nil
	})
	if err != nil {
		return todo.Item{}, err
	}
	return it, nil
}

// Delete removes an item. Removing the lunch item skips it for the rest of
// the day.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(items []todo.Item) ([]todo.Item, error) {
		i := todo.Find(items, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", todo.ErrNotFound, id)
		}
		return slices.Delete(items, i, i+1), nil
	})
	if err != nil {
		return err
	}

	if id == todo.LunchID {
		s.log.Debug().Ctx(ctx).Msg("lunch removed, skipping until tomorrow")
		if err := s.store.SetSkipMarker(ctx, todo.NewSkipMarker(s.now())); err != nil {
			return err
		}
	}
	return nil
}

// Import validates and appends items in order. Nothing is stored if any item
// is invalid.
func (s *TodoService) Import(ctx context.Context, in []todo.Item) ([]todo.Item, error) {
	var added []todo.Item
	err := s.mutate(ctx, func(items []todo.Item) ([]todo.Item, error) {
		var errs criterio.FieldErrorsBuilder
		normalized := make([]todo.Item, len(in))
		for i, it := range in {
			normalized[i] = todo.Normalize(it)
			if err := todo.Validate(normalized[i]); err != nil {
				errs = errs.Append(fmt.Sprintf("items[%d]", i), err)
			}
		}
		if err := errs.ToError(); err != nil {
			return nil, err
		}

		for _, it := range normalized {
			it = withIDs(it, items)
			items = append(items, it)
			added = append(added, it)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Ctx(ctx).Int("count", len(added)).Msg("todos imported")
	return added, nil
}

// AddSubtask appends a subtask to an item.
func (s *TodoService) AddSubtask(ctx context.Context, itemID, text string) (todo.Subtask, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return todo.Subtask{}, criterio.NewFieldErrors("text", errors.New("is required"))
	}

	st := todo.Subtask{ID: randid.Generate(idLength), Text: text}
	err := s.mutateItem(ctx, itemID, func(it *todo.Item) error {
		it.Subtasks = append(it.Subtasks, st)
		return nil
	})
	return st, err
}

// ToggleSubtask flips a subtask's completed flag.
func (s *TodoService) ToggleSubtask(ctx context.Context, itemID, subtaskID string) (todo.Subtask, error) {
	var toggled todo.Subtask
	err := s.mutateItem(ctx, itemID, func(it *todo.Item) error {
		for i := range it.Subtasks {
			if it.Subtasks[i].ID == subtaskID {
				it.Subtasks[i].Completed = !it.Subtasks[i].Completed
				toggled = it.Subtasks[i]
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrSubtaskNotFound, subtaskID)
	})
	return toggled, err
}

// RemoveSubtask deletes a subtask from an item.
func (s *TodoService) RemoveSubtask(ctx context.Context, itemID, subtaskID string) error {
	return s.mutateItem(ctx, itemID, func(it *todo.Item) error {
		i := slices.IndexFunc(it.Subtasks, func(st todo.Subtask) bool { return st.ID == subtaskID })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrSubtaskNotFound, subtaskID)
		}
		it.Subtasks = slices.Delete(it.Subtasks, i, i+1)
		return nil
	})
}

// Sections returns the to-do list grouped by category.
func (s *TodoService) Sections(ctx context.Context) ([]todo.Section, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return todo.GroupByCategory(items), nil
}

// Day returns the timeline for date's calendar day.
func (s *TodoService) Day(ctx context.Context, date time.Time) (timeline.Day, error) {
	items, err := s.List(ctx)
	if err != nil {
		return timeline.Day{}, err
	}
	return timeline.Build(items, date), nil
}

// Week returns the week strip around date.
func (s *TodoService) Week(ctx context.Context, date time.Time) ([]timeline.WeekDay, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return timeline.Week(items, date, s.now()), nil
}

func (s *TodoService) mutate(ctx context.Context, fn func([]todo.Item) ([]todo.Item, error)) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, items)
}

func (s *TodoService) mutateItem(ctx context.Context, id string, fn func(*todo.Item) error) error {
	return s.mutate(ctx, func(items []todo.Item) ([]todo.Item, error) {
		i := todo.Find(items, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", todo.ErrNotFound, id)
		}
		if err := fn(&items[i]); err != nil {
			return nil, err
		}
		return items, nil
	})
}

// withIDs assigns an ID when it is empty or already taken, and IDs to
// subtasks that lack one.
func withIDs(it todo.Item, existing []todo.Item) todo.Item {
	if it.ID == "" || todo.Find(existing, it.ID) >= 0 {
		it.ID = randid.Generate(idLength)
	}
	it.Subtasks = withSubtaskIDs(it.Subtasks)
	return it
}

func withSubtaskIDs(subtasks []todo.Subtask) []todo.Subtask {
	for i := range subtasks {
		if subtasks[i].ID == "" {
			subtasks[i].ID = randid.Generate(idLength)
		}
	}
	return subtasks
}
