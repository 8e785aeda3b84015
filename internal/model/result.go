package model

import "strings"

// QueryResult is the tabular projection produced by executing a SQL statement:
// an ordered sequence of rows with named columns. It is consumed once by a
// chart renderer and then discarded.
type QueryResult struct {
	Columns []string
	Rows    [][]any
}

// Empty reports whether the result holds no rows.
func (r *QueryResult) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// ColumnIndex returns the position of the named column (case-insensitive),
// or -1 if the column is absent.
func (r *QueryResult) ColumnIndex(name string) int {
	if r == nil {
		return -1
	}
	for i, c := range r.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}
