// Package stores implements the kv.KV backends.
package stores

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Yamikowu/studdy/internal/data/db"
)

// IsBusyError returns true if the error is a SQLITE_BUSY error.
func IsBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_BUSY
	}
	return false
}

// IsCorruptionError returns true if the error indicates database corruption.
func IsCorruptionError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB:
			return true
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "database disk image is malformed") ||
		strings.Contains(msg, "file is not a database")
}

// IsNotFoundError returns true if the error is a "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// RecoverFromCorruption moves a corrupted database file, and its WAL and SHM
// sidecars, aside as <name>.corrupt.<timestamp> so a fresh one can be created.
// The sidecars must move with it or SQLite replays them into the new file.
func RecoverFromCorruption(dataDir string) error {
	dbPath := filepath.Join(dataDir, db.FileName)
	backupPath := fmt.Sprintf("%s.corrupt.%s", dbPath, time.Now().Format("20060102-150405"))

	for _, suffix := range []string{"", "-wal", "-shm"} {
		src := dbPath + suffix
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := os.Rename(src, backupPath+suffix); err != nil {
			if rmErr := os.Remove(src); rmErr != nil {
				return fmt.Errorf("move aside %s: %w", filepath.Base(src), err)
			}
		}
	}

	return nil
}

// OpenWithRecovery opens the database in dataDir. When the file is corrupt it
// is moved aside once and a fresh database is created in its place.
func OpenWithRecovery(dataDir string, opts db.OpenOptions, log zerolog.Logger) (*db.DB, error) {
	database, err := db.Open(dataDir, opts)
	if err == nil {
		return database, nil
	}
	if !IsCorruptionError(err) {
		return nil, err
	}

	log.Warn().Err(err).Str("data_dir", dataDir).Msg("database corrupt, moving aside")
	if rerr := RecoverFromCorruption(dataDir); rerr != nil {
		return nil, fmt.Errorf("recover corrupt database: %w", rerr)
	}

	return db.Open(dataDir, opts)
}
