package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/heartmarshall/info-backend/internal/domain"
)

// MapError converts database/sql and driver errors to domain errors.
// subject names what the statement was about, e.g. "record <id>".
// Context errors pass through unmapped.
func MapError(err error, subject string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", subject, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", subject, domain.ErrNotFound)
	}

	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%s: %w: %w", subject, domain.ErrStoreUnavailable, err)
	}

	var sqlErr *msqlite.Error
	if errors.As(err, &sqlErr) {
		code := sqlErr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_CHECK,
			code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqlErr.Error(), "CHECK constraint"):
			return fmt.Errorf("%s: %w", subject, domain.ErrValidation)
		case isUnavailable(code):
			return fmt.Errorf("%s: %w: %w", subject, domain.ErrStoreUnavailable, err)
		}
	}

	return fmt.Errorf("%s: %w", subject, err)
}

// isUnavailable matches primary result codes that mean the file cannot be
// used right now rather than that the statement was wrong.
func isUnavailable(code int) bool {
	switch code & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN,
		sqlite3.SQLITE_IOERR, sqlite3.SQLITE_FULL, sqlite3.SQLITE_READONLY,
		sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		return true
	}
	return false
}
