package commands

import (
	"encoding/json"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/Yamikowu/studdy/internal/render"
	"github.com/Yamikowu/studdy/internal/tui/jsoncolor"
	"github.com/Yamikowu/studdy/pkg/iojson"
)

// termWidth returns the width of the terminal on stdout, or
// render.DefaultWidth when stdout is not a terminal.
func termWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return render.DefaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return render.DefaultWidth
	}
	return min(w, 100)
}

// printStyled writes s to w, downsampling colors to what w supports.
func printStyled(w io.Writer, s string) {
	_, _ = lipgloss.Fprintln(w, s)
}

// writeJSON writes v as indented JSON, highlighted when w is a terminal.
func writeJSON(w io.Writer, v any) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return iojson.WriteWith(w, os.Stderr, v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	printStyled(w, jsoncolor.Colorize(data))
	return nil
}
