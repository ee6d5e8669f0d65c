package store

import (
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Common store errors
var (
	// ErrConstraintViolation means a primary key or unique index collision
	ErrConstraintViolation = errors.New("unique constraint violation")
	// ErrNotFound means an update or increment referenced a missing key
	ErrNotFound = errors.New("record not found")
	// ErrUnknownTable means the table is not part of the fixed schema
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnknownIndex means the index is not declared for the table
	ErrUnknownIndex = errors.New("unknown index")
)

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT ||
		code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
