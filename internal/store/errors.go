package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrTaskAlreadyExists is returned when creating a task whose id
	// collides with an existing row, including soft-deleted rows: ids are
	// never recycled without an explicit purge.
	ErrTaskAlreadyExists = errors.New("task id already exists")

	// ErrTaskNotFound is returned when an update, delete or archive
	// operation targets a task id with no visible row.
	ErrTaskNotFound = errors.New("task was not found")

	// ErrCategoryAlreadyExists is returned when creating a category whose
	// id collides with an existing row.
	ErrCategoryAlreadyExists = errors.New("category id already exists")

	// ErrCategoryNotFound is returned when deleting a category id with no
	// visible row.
	ErrCategoryNotFound = errors.New("category was not found")

	// ErrCheckinAlreadyExists is returned when creating a habit check-in
	// whose id collides with an existing row.
	ErrCheckinAlreadyExists = errors.New("habit checkin id already exists")

	// ErrInvalidInput is returned when a create or update payload fails
	// validation before any SQL is issued (missing required field, unknown
	// task type or priority).
	ErrInvalidInput = errors.New("invalid input")
)

// isUniqueViolation reports whether err is a sqlite constraint violation on
// a primary key or unique index.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
