package sqlite

import (
	"errors"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/msomdec/notekeeper/internal/domain"
)

// uniqueViolation maps a UNIQUE constraint failure on the users table to the
// matching domain error. ok is false for any other error.
func uniqueViolation(err error) (mapped error, ok bool) {
	var se *msqlite.Error
	if !errors.As(err, &se) || se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return nil, false
	}

	msg := se.Error()
	if !strings.Contains(msg, "UNIQUE") {
		return nil, false
	}
	switch {
	case strings.Contains(msg, "users.email"):
		return domain.ErrDuplicateEmail, true
	case strings.Contains(msg, "users.name"):
		return domain.ErrDuplicateName, true
	case strings.Contains(msg, "users.phone"):
		return domain.ErrDuplicatePhone, true
	default:
		return nil, false
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching s as a literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
