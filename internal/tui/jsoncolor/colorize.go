// Package jsoncolor highlights indented JSON for terminal output.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/Yamikowu/studdy/internal/core/styles"
)

type scheme struct {
	key, str, number, literal, null, punct lipgloss.Style
}

func newScheme(p styles.Palette) scheme {
	return scheme{
		key:     lipgloss.NewStyle().Foreground(p.Primary),
		str:     lipgloss.NewStyle().Foreground(p.Success),
		number:  lipgloss.NewStyle().Foreground(p.Warning),
		literal: lipgloss.NewStyle().Foreground(p.Secondary),
		null:    lipgloss.NewStyle().Foreground(p.Error),
		punct:   lipgloss.NewStyle().Foreground(p.Muted),
	}
}

// Colorize indents data and colors it with the active palette.
// Invalid JSON is returned unchanged.
func Colorize(data []byte) string {
	return ColorizeWith(data, styles.CurrentPalette)
}

// ColorizeWith is Colorize with an explicit palette.
func ColorizeWith(data []byte, p styles.Palette) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}

	s := newScheme(p)
	raw := buf.String()

	var out strings.Builder
	for i := 0; i < len(raw); {
		ch := raw[i]
		switch {
		case ch == '"':
			end := stringEnd(raw, i)
			tok := raw[i : end+1]
			if isKey(raw[end+1:]) {
				out.WriteString(s.key.Render(tok))
			} else {
				out.WriteString(s.str.Render(tok))
			}
			i = end + 1
		case ch == '-' || isDigit(ch):
			end := numberEnd(raw, i)
			out.WriteString(s.number.Render(raw[i:end]))
			i = end
		case strings.HasPrefix(raw[i:], "true"):
			out.WriteString(s.literal.Render("true"))
			i += len("true")
		case strings.HasPrefix(raw[i:], "false"):
			out.WriteString(s.literal.Render("false"))
			i += len("false")
		case strings.HasPrefix(raw[i:], "null"):
			out.WriteString(s.null.Render("null"))
			i += len("null")
		case strings.IndexByte("{}[]:,", ch) >= 0:
			out.WriteString(s.punct.Render(string(ch)))
			i++
		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isKey(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest != "" && rest[0] == ':'
}

func numberEnd(s string, pos int) int {
	end := pos + 1
	for end < len(s) && (isDigit(s[end]) || strings.IndexByte(".eE+-", s[end]) >= 0) {
		end++
	}
	return end
}

// stringEnd returns the index of the quote closing the string opened at pos.
func stringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(s) - 1
}
