package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"StockScope/internal/model"
)

// IndexFileName is the visualization index written after each run.
const IndexFileName = "visualization_summary.md"

var kindDescriptions = map[model.ChartKind]string{
	model.ChartTrend:         "A line chart of the daily closing price over the selected window. Gaps in trading days are left as gaps rather than interpolated.",
	model.ChartCandlestick:   "A candlestick chart of daily open/high/low/close bodies. Days closing at or above the open are drawn in the up color, the rest in the down color.",
	model.ChartVolume:        "A bar chart of daily trading volume, each bar colored by that day's open/close direction for visual correlation with price.",
	model.ChartPriceVolume:   "A combined chart with the closing price on the primary axis and volume bars on a secondary axis sharing the same dates.",
	model.ChartMovingAverage: "The closing price overlaid with simple moving averages. Each average starts once its window is full; earlier points are omitted.",
	model.ChartComparative:   "One line per symbol, each normalized to percentage change from its first value in the window, so performance is comparable across symbols.",
}

// WriteIndex writes the visualization index for one run into dir: a titled
// section per chart with a one-paragraph description. Captions, when
// provided, are aligned with artifacts and replace the canned description.
// The index is rewritten per run and describes only that run's artifacts.
func WriteIndex(dir string, artifacts []model.ChartArtifact, captions []string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create index dir: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# Stock Data Visualizations\n\n")
	sb.WriteString(fmt.Sprintf("Generated %s. %d chart(s).\n", time.Now().Format("2006-01-02 15:04:05"), len(artifacts)))

	if len(artifacts) == 0 {
		sb.WriteString("\nNo visualizations were generated. Please check the data and try again.\n")
	}
	for i, a := range artifacts {
		base := filepath.Base(a.FilePath)
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", a.Title))
		sb.WriteString(fmt.Sprintf("Kind: %s. Symbols: %s. File: [%s](%s)\n\n", a.Kind, strings.Join(a.Symbols, ", "), base, base))
		desc := kindDescriptions[a.Kind]
		if i < len(captions) && captions[i] != "" {
			desc = captions[i]
		}
		sb.WriteString(desc + "\n")
	}
	sb.WriteString("\nOpen the HTML files in a web browser to view the interactive charts.\n")

	path := filepath.Join(dir, IndexFileName)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write index: %w", err)
	}
	return path, nil
}

// IndexEntry is one chart reference parsed back from the index.
type IndexEntry struct {
	Kind     model.ChartKind
	FilePath string
}

var indexEntryRe = regexp.MustCompile(`^Kind: ([a-z_]+)\. Symbols: .*\. File: \[[^\]]+\]\(([^)]+)\)$`)

// ReadIndex parses a visualization index back into (kind, file path) entries.
// Paths are resolved relative to the index file's directory.
func ReadIndex(path string) ([]IndexEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	dir := filepath.Dir(path)
	var entries []IndexEntry
	for _, line := range strings.Split(string(data), "\n") {
		m := indexEntryRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		entries = append(entries, IndexEntry{
			Kind:     model.ChartKind(m[1]),
			FilePath: filepath.Join(dir, m[2]),
		})
	}
	return entries, nil
}
