package store

import (
	"strings"

	"github.com/tactus/baton/errors"
)

// ErrDatabaseClosed is returned when operations hit a closed database,
// typically during graceful shutdown when the store closes before every
// goroutine has finished.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed checks whether an error indicates a closed database.
// The string fallback covers raw driver errors that cannot be wrapped at
// their source.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "database is closed") ||
		strings.Contains(msg, "sql: database is closed")
}
