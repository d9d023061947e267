package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLine(&buf, map[string]int{"a": 1}))
	require.NoError(t, WriteLine(&buf, map[string]int{"b": 2}))

	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", buf.String())
}

func TestMarshalError(t *testing.T) {
	out := MarshalError("boom", map[string]any{"id": "x"})
	assert.Contains(t, out, `"message": "boom"`)
	assert.Contains(t, out, `"id": "x"`)
}

func TestFileReader(t *testing.T) {
	type doc struct {
		Title string `json:"title"`
	}

	t.Run("reads from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"title":"from file"}`), 0o644))

		fr := &FileReader[doc]{fileFlagValue: path}
		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, "from file", got.Title)
	})

	t.Run("reads from stdin override", func(t *testing.T) {
		fr := &FileReader[doc]{stdin: strings.NewReader(`{"title":"piped"}`)}
		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, "piped", got.Title)
	})

	t.Run("missing file", func(t *testing.T) {
		fr := &FileReader[doc]{fileFlagValue: filepath.Join(t.TempDir(), "nope.json")}
		_, err := fr.Read()
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		fr := &FileReader[doc]{stdin: strings.NewReader(`{`)}
		_, err := fr.Read()
		assert.ErrorContains(t, err, "decode JSON")
	})
}
