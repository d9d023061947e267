package jsoncolor

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/Yamikowu/studdy/internal/core/styles"
)

func TestColorize_IndentsSegments(t *testing.T) {
	input := []byte(`{"kind":"anchor","label":"07:00","minute":420,"items":null,"fixed":true}`)

	got := ansi.Strip(Colorize(input))

	want := `{
  "kind": "anchor",
  "label": "07:00",
  "minute": 420,
  "items": null,
  "fixed": true
}`
	assert.Equal(t, want, got)
}

func TestColorize_InvalidJSON(t *testing.T) {
	assert.Equal(t, "not json", Colorize([]byte("not json")))
}

func TestColorize_LiteralsInsideStrings(t *testing.T) {
	got := ansi.Strip(Colorize([]byte(`{"title":"true null -1","n":-1.5e3}`)))
	assert.Contains(t, got, `"title": "true null -1"`)
	assert.Contains(t, got, `"n": -1.5e3`)
}

func TestColorizeWith_AllThemes(t *testing.T) {
	for _, name := range styles.ThemeNames() {
		p, ok := styles.GetPalette(name)
		if !assert.True(t, ok, name) {
			continue
		}
		got := ansi.Strip(ColorizeWith([]byte(`[1,"a"]`), p))
		assert.Equal(t, "[\n  1,\n  \"a\"\n]", got, name)
	}
}

func TestStringEnd(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"simple", `"lunch"`, 6},
		{"escaped quote", `"he\"y"`, 6},
		{"escaped backslash", `"a\\"`, 4},
		{"empty", `""`, 1},
		{"unterminated", `"abc`, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stringEnd(tt.input, 0))
		})
	}
}
