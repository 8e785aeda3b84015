package agent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"StockScope/internal/chart"
	"StockScope/internal/store"
)

// appendReport appends one run's section to the report file, creating it
// with a top-level header on first use. The report is an append-only log of
// runs; the visualization index, by contrast, is rewritten per run.
func appendReport(path string, rep *RunReport) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	var sb strings.Builder
	if _, err := os.Stat(path); os.IsNotExist(err) {
		sb.WriteString("# Stock Analysis Report\n")
	}

	sb.WriteString(fmt.Sprintf("\n---\n\n## %s — %s\n\n", rep.StartedAt.Format("2006-01-02 15:04:05"), rep.Request))

	if rep.Failed {
		sb.WriteString("**Status:** failed\n\n")
		sb.WriteString(explainError(rep.Err) + "\n")
		if rep.Rationale != "" {
			sb.WriteString("\n### Analysis\n\n" + rep.Rationale + "\n")
		}
		sb.WriteString("\nNo charts were produced for this request.\n")
	} else {
		sb.WriteString("### Analysis\n\n" + rep.Rationale + "\n")
		if rep.SQL != "" {
			sb.WriteString("\n```sql\n" + strings.TrimSpace(rep.SQL) + "\n```\n")
		}
		sb.WriteString("\n### Charts\n\n")
		for i, a := range rep.Artifacts {
			caption := ""
			if i < len(rep.Captions) {
				caption = rep.Captions[i]
			}
			if caption == "" {
				caption = a.Title
			}
			sb.WriteString(fmt.Sprintf("- [%s](%s) — %s\n", a.Title, a.FilePath, caption))
		}
		if rep.Summary != "" {
			sb.WriteString("\n" + rep.Summary + "\n")
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// explainError turns a taxonomy error into a readable sentence for the
// report. Raw stack traces or driver internals never reach the user.
func explainError(err error) string {
	var qe *store.QueryError
	if errors.As(err, &qe) {
		return fmt.Sprintf("The generated SQL query could not be executed: %v.", qe.Err)
	}
	var re *chart.RenderError
	if errors.As(err, &re) {
		if strings.Contains(re.Reason, "empty query result") {
			return "No data found for this request: the query returned no rows, so no chart could be rendered."
		}
		return fmt.Sprintf("The visualization step failed: %v.", re)
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return fmt.Sprintf("The reasoning service failed during %s: %v.", se.Stage, se.Err)
	}
	if err == nil {
		return "The request failed for an unknown reason."
	}
	return fmt.Sprintf("The request failed: %v.", err)
}
