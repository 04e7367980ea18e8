// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow handlers to decide the
// user-facing behaviour: a missing account or entry is an ordinary result
// of a lookup, not a fault.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// ErrEmailExists is returned when registering an email that is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrEntryNotFound is returned when no list entry matches the lookup.
var ErrEntryNotFound = errors.New("entry not found")

// ErrTitleExists is returned when a movie title is already tracked.
var ErrTitleExists = errors.New("title already exists")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// isUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return false
}
