package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yamikowu/studdy/internal/core/todo"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Contains(t, names, DefaultTheme)
	assert.IsNonDecreasing(t, names)

	for _, n := range names {
		_, ok := GetPalette(n)
		assert.True(t, ok, n)
	}

	_, ok := GetPalette("nope")
	assert.False(t, ok)
}

func TestCategory_IsTotal(t *testing.T) {
	assert.Equal(t, quizStyle.GetForeground(), Category(todo.Quiz).GetForeground())
	assert.Equal(t, homeworkStyle.GetForeground(), Category(todo.Homework).GetForeground())
	assert.Equal(t, plainStyle.GetForeground(), Category(todo.Uncategorized).GetForeground())
	assert.Equal(t, plainStyle.GetForeground(), Category(todo.Category(99)).GetForeground())

	assert.Equal(t, IconTodo, CategoryIcon(todo.Category(99)))
}

func TestSetTheme_RebuildsStyles(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)
	SetTheme(p)

	assert.Equal(t, p.Primary, HeaderStyle.GetForeground())
	assert.Equal(t, p.Warning, Category(todo.Quiz).GetForeground())
}

func TestGlamourStyle_UsesPalette(t *testing.T) {
	cfg := GlamourStyle()
	require.NotNil(t, cfg.H1.Color)
	assert.Equal(t, *colorHexPtr(CurrentPalette.Primary), *cfg.H1.Color)
}
