package commands

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/Yamikowu/studdy/internal/core/config"
	"github.com/Yamikowu/studdy/internal/core/course"
	"github.com/Yamikowu/studdy/internal/core/doctor"
	"github.com/Yamikowu/studdy/internal/core/todo"
	"github.com/Yamikowu/studdy/internal/data/stores"
	"github.com/Yamikowu/studdy/internal/studdy"
)

var testNow = time.Date(2025, 11, 12, 9, 0, 0, 0, time.Local)

type harness struct {
	flags *Flags
	app   *studdy.App
	out   bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	clock := func() time.Time { return testNow }
	app := studdy.NewApp(&cfg, stores.NewMemoryKV().WithClock(clock), nil, zerolog.Nop())
	app.Todos.WithClock(clock)

	return &harness{
		flags: &Flags{Config: &cfg, ConfigPath: filepath.Join(cfg.DataDir, "config.yaml")},
		app:   app,
	}
}

func (h *harness) run(t *testing.T, args ...string) string {
	t.Helper()
	h.out.Reset()

	root := &cli.Command{Name: "studdy", Writer: &h.out}
	root = NewTodoCmd(h.flags, h.app).Register(root)
	root = NewTimelineCmd(h.flags, h.app).Register(root)
	root = NewCourseCmd(h.flags, h.app).Register(root)
	root = NewConfigValidateCmd(h.flags).Register(root)

	err := root.Run(context.Background(), append([]string{"studdy"}, args...))
	require.NoError(t, err)
	return h.out.String()
}

func decodeLines[T any](t *testing.T, out string) []T {
	t.Helper()
	var values []T
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var v T
		require.NoError(t, json.Unmarshal(sc.Bytes(), &v))
		values = append(values, v)
	}
	return values
}

func TestTodoList_SeedsAndAddsLunch(t *testing.T) {
	h := newHarness(t)

	items := decodeLines[todo.Item](t, h.run(t, "todo", "ls", "--json"))

	require.Len(t, items, 5)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, todo.LunchID, items[4].ID)
	assert.Equal(t, "2025-11-12T12:00", items[4].Time)
}

func TestTodoAdd_Flags(t *testing.T) {
	h := newHarness(t)

	created := decodeLines[todo.Item](t, h.run(t,
		"todo", "add", "--json",
		"--title", "  Read chapter 4 ",
		"--category", "hw",
		"--course", "1",
		"--time", "2025-11-12T14:00",
		"--duration", "90",
		"--deadline", "2025-11-14",
	))
	require.Len(t, created, 1)

	it := created[0]
	assert.NotEmpty(t, it.ID)
	assert.Equal(t, "Read chapter 4", it.Title)
	assert.Equal(t, todo.Homework, it.Category)
	assert.Equal(t, "1", it.CourseID)
	assert.Equal(t, 90, it.Duration)
	assert.Equal(t, "2025-11-14T23:59", it.Deadline)

	stored, err := h.app.Todos.Get(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, it, stored)
}

func TestTodoEdit_OnlyChangesGivenFlags(t *testing.T) {
	h := newHarness(t)

	edited := decodeLines[todo.Item](t, h.run(t, "todo", "edit", "--json", "--time", "2025-11-12T10:00", "3"))
	require.Len(t, edited, 1)

	assert.Equal(t, "Operating systems", edited[0].Title)
	assert.Equal(t, todo.Quiz, edited[0].Category)
	assert.Equal(t, "2025-11-12T10:00", edited[0].Time)
}

func TestTodoDone_LunchStaysSkipped(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.Equal(t, "completed\n", h.run(t, "todo", "done", todo.LunchID))

	items, err := h.app.Todos.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, -1, todo.Find(items, todo.LunchID))
}

func TestTodoImport_Globs(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()

	write := func(name string, items []todo.Item) {
		data, err := json.Marshal(items)
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	write("a.json", []todo.Item{{Title: "first"}})
	write("nested/b.json", []todo.Item{{Title: "second"}, {Title: "third"}})

	out := h.run(t, "todo", "import", filepath.Join(dir, "**", "*.json"))
	assert.Equal(t, "imported 3 item(s)\n", out)
}

func TestReadItemGlobs_Markdown(t *testing.T) {
	dir := t.TempDir()
	md := "---\ncategory: hw\ndeadline: 2025-11-14\n---\n# Problem set 3\n- [ ] q1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ps3.md"), []byte(md), 0o644))

	items, err := readItemGlobs([]string{filepath.Join(dir, "*.md")})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Problem set 3", items[0].Title)
	assert.Equal(t, todo.Homework, items[0].Category)
	require.Len(t, items[0].Subtasks, 1)
	assert.Equal(t, "q1", items[0].Subtasks[0].Text)
}

func TestReadItemGlobs_NoMatch(t *testing.T) {
	_, err := readItemGlobs([]string{filepath.Join(t.TempDir(), "*.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestTodoSubtasks(t *testing.T) {
	h := newHarness(t)

	added := decodeLines[todo.Subtask](t, h.run(t, "todo", "subtask", "add", "--json", "1", "print", "poster"))
	require.Len(t, added, 1)
	assert.Equal(t, "print poster", added[0].Text)

	assert.Equal(t, "done\n", h.run(t, "todo", "subtask", "toggle", "1", added[0].ID))
	assert.Equal(t, "removed\n", h.run(t, "todo", "subtask", "rm", "1", added[0].ID))

	it, err := h.app.Todos.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, it.Subtasks)
}

func TestTimeline_JSON(t *testing.T) {
	h := newHarness(t)

	var day struct {
		Segments []struct {
			Kind  string `json:"kind"`
			Label string `json:"label"`
		} `json:"segments"`
	}
	require.NoError(t, json.Unmarshal([]byte(h.run(t, "timeline", "--date", "2025-11-12", "--json")), &day))

	var got []string
	for _, s := range day.Segments {
		got = append(got, s.Kind+" "+s.Label)
	}
	assert.Equal(t, []string{"anchor 07:00", "group 12:00", "gap 13:00", "anchor 00:00"}, got)
}

func TestTimeline_AllDayItem(t *testing.T) {
	h := newHarness(t)

	var day struct {
		AllDay []todo.Item `json:"all_day"`
	}
	require.NoError(t, json.Unmarshal([]byte(h.run(t, "timeline", "--date", "2025-12-11", "--json")), &day))

	require.Len(t, day.AllDay, 1)
	assert.Equal(t, "2", day.AllDay[0].ID)
}

func TestWeek_JSON(t *testing.T) {
	h := newHarness(t)

	var week []struct {
		Name     string `json:"name"`
		Count    int    `json:"count"`
		Selected bool   `json:"selected"`
		Today    bool   `json:"today"`
	}
	require.NoError(t, json.Unmarshal([]byte(h.run(t, "week", "--json")), &week))

	require.Len(t, week, 7)
	assert.Equal(t, "Mon", week[0].Name)
	assert.True(t, week[2].Selected)
	assert.True(t, week[2].Today)
	assert.Equal(t, 1, week[2].Count, "lunch")
}

func TestCourse_AddAndShow(t *testing.T) {
	h := newHarness(t)

	added := decodeLines[course.Course](t, h.run(t, "course", "add", "--json", "Linear", "Algebra"))
	require.Len(t, added, 1)
	assert.Equal(t, "Linear Algebra", added[0].Name)

	summaries := decodeLines[course.Summary](t, h.run(t, "course", "ls", "--json"))
	require.Len(t, summaries, 4)
	assert.Equal(t, "Linear Algebra", summaries[0].Course.Name)

	shown := decodeLines[course.Summary](t, h.run(t, "course", "show", "--json", "2"))
	require.Len(t, shown, 1)
	assert.Equal(t, 1, shown[0].Quiz)
	assert.Equal(t, 1, shown[0].Homework)
}

func TestConfigValidate_JSON(t *testing.T) {
	h := newHarness(t)

	var result validationResult
	require.NoError(t, json.Unmarshal([]byte(h.run(t, "config", "validate", "--format", "json")), &result))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Theme = "nope"

	result := validate(&cfg, "")
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "theme", result.Errors[0].Field)
}

func TestItemForm_RoundTrip(t *testing.T) {
	it := todo.Item{ID: "x", Title: "Quiz 2", Category: todo.Quiz, CourseID: "1", Duration: 30}

	f := newItemForm(it)
	assert.Equal(t, "30", f.duration)

	f.category = todo.Uncategorized
	got := f.item(it)
	assert.Equal(t, "x", got.ID)
	assert.Empty(t, got.CourseID, "course only applies to quiz and homework")
	assert.Equal(t, 30, got.Duration)
}

func TestFormValidators(t *testing.T) {
	require.Error(t, validateTitle("  "))
	require.NoError(t, validateTitle("ok"))
	require.NoError(t, validateWhen(""))
	require.NoError(t, validateWhen("2025-11-12"))
	require.Error(t, validateWhen("next tuesday"))
	require.NoError(t, validateDuration(""))
	require.Error(t, validateDuration("-5"))
}

func TestDoctorText_AutofixHint(t *testing.T) {
	results := []doctor.Result{{
		Name: "Storage",
		Items: []doctor.CheckItem{
			{Label: "backend", Status: doctor.StatusPass, Detail: "in-memory"},
			{Label: "expired keys", Status: doctor.StatusWarn, Detail: "2 expired", Fixable: true},
		},
	}}

	t.Run("hint without autofix", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&DoctorCmd{}).outputText(&buf, results))
		assert.Contains(t, buf.String(), "Run 'studdy doctor --autofix' to fix 1 issue(s)")
	})

	t.Run("no hint with autofix", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&DoctorCmd{autofix: true}).outputText(&buf, results))
		assert.NotContains(t, buf.String(), "--autofix")
	})
}
