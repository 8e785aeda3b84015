package chart

import (
	"fmt"

	"StockScope/internal/model"
)

// RenderError reports a QueryResult that cannot be rendered as the requested
// chart kind: empty data, a missing required column, or a malformed value.
// Renderers fail fast and never fabricate data to fill gaps.
type RenderError struct {
	Kind   model.ChartKind
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %s", e.Kind, e.Reason)
}

func renderErrorf(kind model.ChartKind, format string, args ...any) *RenderError {
	return &RenderError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func errMissingColumn(kind model.ChartKind, column string) *RenderError {
	return renderErrorf(kind, "missing required column %q", column)
}
