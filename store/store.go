// Package store persists compiled programs in a local SQLite database, so a
// patch compiled once can be listed, inspected, and replayed to devices
// without the original file.
package store

import (
	"database/sql"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/sym"
)

// SQLiteBusyTimeoutMS is how long a connection waits on a locked database
// before giving up.
const SQLiteBusyTimeoutMS = 5000

// Store wraps the programs database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path, applies the
// connection pragmas, and runs pending migrations. If log is provided,
// progress is logged; otherwise the store operates silently.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	if log != nil {
		log.Debugw("Opening program store", "path", path, "symbol", sym.Store)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	// WAL lets readers proceed during writes
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to enable WAL mode")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to enable foreign keys")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = " + strconv.Itoa(SQLiteBusyTimeoutMS)); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to set busy timeout")
	}

	if err := Migrate(db, log); err != nil {
		db.Close()
		return nil, err
	}

	if log != nil {
		log.Infow("Program store opened",
			"path", path,
			"symbol", sym.Store,
		)
	}
	return &Store{db: db}, nil
}

// New wraps an already opened database. Migrations are the caller's problem;
// this exists for tests driving the store against a mock connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
