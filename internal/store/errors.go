package store

import "fmt"

// QueryError reports a SQL statement that could not be executed: malformed
// syntax, unknown tables or columns, or a statement that is not read-only.
// It is propagated to the caller rather than silently swallowed.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
