package agent

import (
	"fmt"
	"strings"
	"sync"

	"StockScope/internal/model"
)

// Session carries the state of one request through the pipeline: the latest
// QueryResult produced by the analyst and the chart artifacts produced by
// the visualizer. Tools close over the session, which keeps the agents
// themselves stateless.
type Session struct {
	mu        sync.Mutex
	sql       string
	result    *model.QueryResult
	artifacts []model.ChartArtifact
	captions  []string
}

func NewSession() *Session { return &Session{} }

// SetResult stores the QueryResult of the most recent successful query.
func (s *Session) SetResult(sqlText string, res *model.QueryResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sql = sqlText
	s.result = res
}

// Result returns the current QueryResult, or nil if no query ran yet.
func (s *Session) Result() *model.QueryResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// SQL returns the statement that produced the current QueryResult.
func (s *Session) SQL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sql
}

// AddArtifact records a rendered chart and its caption.
func (s *Session) AddArtifact(a model.ChartArtifact, caption string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, a)
	s.captions = append(s.captions, caption)
}

// Artifacts returns the charts rendered so far with their aligned captions.
func (s *Session) Artifacts() ([]model.ChartArtifact, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ChartArtifact(nil), s.artifacts...), append([]string(nil), s.captions...)
}

// Preview renders the current QueryResult as text for prompts and tool
// replies: column names, up to maxRows rows, and the total row count.
func (s *Session) Preview(maxRows int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return "no query result available"
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(s.result.Columns, " | "))
	sb.WriteByte('\n')
	for i, row := range s.result.Rows {
		if i >= maxRows {
			break
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteByte('\n')
	}
	sb.WriteString(fmt.Sprintf("(%d rows total)", len(s.result.Rows)))
	return sb.String()
}
