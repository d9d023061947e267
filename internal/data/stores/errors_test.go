package stores

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yamikowu/studdy/internal/data/db"
)

func TestRecoverFromCorruption_MovesSidecars(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, db.FileName)

	require.NoError(t, os.WriteFile(dbPath, []byte("corrupted data"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-shm", []byte("shm"), 0o644))

	require.NoError(t, RecoverFromCorruption(dir))

	for _, suffix := range []string{"", "-wal", "-shm"} {
		assert.NoFileExists(t, dbPath+suffix)
	}

	backups, err := filepath.Glob(filepath.Join(dir, db.FileName+".corrupt.*"))
	require.NoError(t, err)
	assert.Len(t, backups, 3)
}

func TestRecoverFromCorruption_MissingFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, RecoverFromCorruption(dir))

	files, _ := filepath.Glob(filepath.Join(dir, "*.corrupt.*"))
	assert.Empty(t, files)
}

func TestIsCorruptionError(t *testing.T) {
	assert.False(t, IsCorruptionError(nil))
	assert.False(t, IsCorruptionError(errors.New("disk full")))
	assert.True(t, IsCorruptionError(errors.New("failed to initialize schema: file is not a database (26)")))
}

func TestOpenWithRecovery_ReplacesGarbageFile(t *testing.T) {
	dir := t.TempDir()
	garbage := strings.Repeat("not a sqlite file ", 512)
	require.NoError(t, os.WriteFile(filepath.Join(dir, db.FileName), []byte(garbage), 0o644))

	database, err := OpenWithRecovery(dir, db.DefaultOpenOptions(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	backups, _ := filepath.Glob(filepath.Join(dir, db.FileName+".corrupt.*"))
	assert.NotEmpty(t, backups)
}
