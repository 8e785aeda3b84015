package chart

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"StockScope/internal/model"
)

// ohlcvResult builds a query result with date, open, high, low, close, volume
// columns: a gently rising series starting 2025-01-01.
func ohlcvResult(days int) *model.QueryResult {
	res := &model.QueryResult{Columns: []string{"date", "open", "high", "low", "close", "volume"}}
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		price := 100 + float64(i)
		res.Rows = append(res.Rows, []any{
			day.AddDate(0, 0, i).Format("2006-01-02"),
			price, price + 2, price - 1, price + 1, int64(1_000_000 + i),
		})
	}
	return res
}

func closeResult(dates []string, closes []float64) *model.QueryResult {
	res := &model.QueryResult{Columns: []string{"date", "close"}}
	for i := range dates {
		res.Rows = append(res.Rows, []any{dates[i], closes[i]})
	}
	return res
}

func assertRenderError(t *testing.T, err error, kind model.ChartKind, substr string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("expected RenderError, got %T: %v", err, err)
	}
	if re.Kind != kind {
		t.Errorf("expected kind %s, got %s", kind, re.Kind)
	}
	if substr != "" && !strings.Contains(re.Error(), substr) {
		t.Errorf("expected %q in error, got %q", substr, re.Error())
	}
}

func TestNewFrame_EmptyResult(t *testing.T) {
	_, err := newFrame(model.ChartTrend, &model.QueryResult{Columns: []string{"date", "close"}}, "close")
	assertRenderError(t, err, model.ChartTrend, "empty query result")
}

func TestNewFrame_MissingColumns(t *testing.T) {
	res := &model.QueryResult{
		Columns: []string{"date", "close"},
		Rows:    [][]any{{"2025-01-02", 101.0}},
	}

	_, err := newFrame(model.ChartCandlestick, res, "open", "high", "low", "close")
	assertRenderError(t, err, model.ChartCandlestick, "open")

	noDate := &model.QueryResult{
		Columns: []string{"day", "close"},
		Rows:    [][]any{{"2025-01-02", 101.0}},
	}
	_, err = newFrame(model.ChartTrend, noDate, "close")
	assertRenderError(t, err, model.ChartTrend, "date")
}

func TestNewFrame_SortsChronologically(t *testing.T) {
	res := closeResult(
		[]string{"2025-01-03", "2025-01-01", "2025-01-02"},
		[]float64{103, 101, 102},
	)
	f, err := newFrame(model.ChartTrend, res, "close")
	if err != nil {
		t.Fatal(err)
	}
	wantDates := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	for i, d := range wantDates {
		if f.Dates[i] != d {
			t.Errorf("position %d: expected %s, got %s", i, d, f.Dates[i])
		}
	}
	if f.Close[0] != 101 || f.Close[2] != 103 {
		t.Errorf("close values not reordered with dates: %v", f.Close)
	}
}

func TestNewFrame_NonNumericValue(t *testing.T) {
	res := &model.QueryResult{
		Columns: []string{"date", "close"},
		Rows:    [][]any{{"2025-01-02", "n/a"}},
	}
	_, err := newFrame(model.ChartTrend, res, "close")
	assertRenderError(t, err, model.ChartTrend, "non-numeric")
}

func TestNewFrame_DateFormats(t *testing.T) {
	for _, date := range []string{"2025-01-02", "2025-01-02 00:00:00", "01/02/2025", "2025/01/02"} {
		res := closeResult([]string{date}, []float64{100})
		f, err := newFrame(model.ChartTrend, res, "close")
		if err != nil {
			t.Errorf("date %q: %v", date, err)
			continue
		}
		if f.Dates[0] != "2025-01-02" {
			t.Errorf("date %q: normalized to %s", date, f.Dates[0])
		}
	}
}

func TestBarColor_TieIsUp(t *testing.T) {
	if BarColor(100, 101) != upColor {
		t.Error("close above open must use the up color")
	}
	if BarColor(100, 100) != upColor {
		t.Error("a tie must count as an up day")
	}
	if BarColor(100, 99) != downColor {
		t.Error("close below open must use the down color")
	}
}

func TestRenderer_WritesArtifacts(t *testing.T) {
	r := NewRenderer(t.TempDir())
	res := ohlcvResult(25)

	renders := []struct {
		name string
		fn   func() (*model.ChartArtifact, error)
		kind model.ChartKind
	}{
		{"trend", func() (*model.ChartArtifact, error) { return r.Trend(res, "AAPL", "AAPL Trend") }, model.ChartTrend},
		{"candlestick", func() (*model.ChartArtifact, error) { return r.Candlestick(res, "AAPL", "AAPL Candles") }, model.ChartCandlestick},
		{"volume", func() (*model.ChartArtifact, error) { return r.Volume(res, "AAPL", "AAPL Volume") }, model.ChartVolume},
		{"price_volume", func() (*model.ChartArtifact, error) { return r.PriceVolume(res, "AAPL", "AAPL P/V") }, model.ChartPriceVolume},
	}
	seen := map[string]bool{}
	for _, tc := range renders {
		a, err := tc.fn()
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if a.Kind != tc.kind {
			t.Errorf("%s: expected kind %s, got %s", tc.name, tc.kind, a.Kind)
		}
		if len(a.Symbols) != 1 || a.Symbols[0] != "AAPL" {
			t.Errorf("%s: expected symbols [AAPL], got %v", tc.name, a.Symbols)
		}
		if seen[a.FilePath] {
			t.Errorf("%s: file path %s reused", tc.name, a.FilePath)
		}
		seen[a.FilePath] = true

		data, err := os.ReadFile(a.FilePath)
		if err != nil {
			t.Fatalf("%s: chart file missing: %v", tc.name, err)
		}
		if !strings.Contains(string(data), "echarts") {
			t.Errorf("%s: output does not look like an echarts page", tc.name)
		}
	}
}

func TestMovingAverage_WindowsFit(t *testing.T) {
	r := NewRenderer(t.TempDir())

	a, err := r.MovingAverage(ohlcvResult(60), "MSFT", "MSFT MA", nil)
	if err != nil {
		t.Fatalf("default windows over 60 rows: %v", err)
	}
	if a.Kind != model.ChartMovingAverage {
		t.Errorf("expected moving_average artifact, got %s", a.Kind)
	}

	// A short series fits the 20-day window but not the 50-day one; the chart
	// still renders with the windows that fit.
	if _, err := r.MovingAverage(ohlcvResult(25), "MSFT", "MSFT MA", []int{20, 50}); err != nil {
		t.Errorf("expected partial windows to render: %v", err)
	}
}

func TestMovingAverage_NoWindowFits(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.MovingAverage(ohlcvResult(10), "MSFT", "MSFT MA", []int{20, 50})
	assertRenderError(t, err, model.ChartMovingAverage, "")
}

func TestComparative_RequiresSymbolColumn(t *testing.T) {
	r := NewRenderer(t.TempDir())
	res := closeResult([]string{"2025-01-02", "2025-01-03"}, []float64{100, 101})
	_, err := r.Comparative(res, "Comparison")
	assertRenderError(t, err, model.ChartComparative, "symbol")
}

func TestComparative_GroupsSymbols(t *testing.T) {
	r := NewRenderer(t.TempDir())
	res := &model.QueryResult{
		Columns: []string{"symbol", "date", "close"},
		Rows: [][]any{
			{"AAPL", "2025-01-02", 200.0},
			{"MSFT", "2025-01-02", 400.0},
			{"AAPL", "2025-01-03", 210.0},
			{"MSFT", "2025-01-03", 380.0},
		},
	}
	a, err := r.Comparative(res, "AAPL vs MSFT")
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Symbols) != 2 || a.Symbols[0] != "AAPL" || a.Symbols[1] != "MSFT" {
		t.Errorf("expected symbols in first-appearance order [AAPL MSFT], got %v", a.Symbols)
	}
	if _, err := os.Stat(a.FilePath); err != nil {
		t.Errorf("chart file missing: %v", err)
	}
}

func TestIndex_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	artifacts := []model.ChartArtifact{
		{Kind: model.ChartTrend, Title: "AAPL Trend", FilePath: dir + "/AAPL_trend_01.html", Symbols: []string{"AAPL"}},
		{Kind: model.ChartComparative, Title: "AAPL vs MSFT", FilePath: dir + "/AAPL-MSFT_comparative_02.html", Symbols: []string{"AAPL", "MSFT"}},
	}
	captions := []string{"Closing price over the last quarter.", ""}

	path, err := WriteIndex(dir, artifacts, captions)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{"AAPL Trend", "AAPL vs MSFT", "Closing price over the last quarter.", "2 chart(s)"} {
		if !strings.Contains(content, want) {
			t.Errorf("index missing %q", want)
		}
	}

	entries, err := ReadIndex(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(artifacts) {
		t.Fatalf("expected %d entries, got %d", len(artifacts), len(entries))
	}
	for i, e := range entries {
		if e.Kind != artifacts[i].Kind {
			t.Errorf("entry %d: expected kind %s, got %s", i, artifacts[i].Kind, e.Kind)
		}
		if e.FilePath != artifacts[i].FilePath {
			t.Errorf("entry %d: expected path %s, got %s", i, artifacts[i].FilePath, e.FilePath)
		}
	}
}

func TestWriteIndex_EmptyRun(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteIndex(dir, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "No visualizations were generated") {
		t.Error("empty run should be stated in the index")
	}
	entries, err := ReadIndex(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
