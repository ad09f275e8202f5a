package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrProjectNotFound is returned when a query or update targets a project
	// (identified by project_id and user_id) that does not exist in the
	// database. Ownership mismatches surface as this error as well: a project
	// that belongs to another user is indistinguishable from a missing one.
	ErrProjectNotFound = errors.New("project was not found")

	// ErrMediaNotFound is returned when a query or delete targets a media
	// record that does not exist or does not belong to the requesting user.
	ErrMediaNotFound = errors.New("media was not found")

	// ErrNoteNotFound is returned when a query or delete targets a note that
	// does not exist within the given project.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrPhotoNotFound is returned when a query or delete targets a legacy
	// photo record that does not exist within the given project.
	ErrPhotoNotFound = errors.New("photo was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
