package chart

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"StockScope/internal/model"
)

// dateLayouts are tried in order when the date column arrives as text.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// Frame is the column-oriented view of a QueryResult that renderers consume:
// chronologically sorted, dates formatted, numeric columns coerced to
// float64. Columns the result did not contain are nil.
type Frame struct {
	Dates   []string
	Open    []float64
	High    []float64
	Low     []float64
	Close   []float64
	Volume  []float64
	Symbols []string // per-row symbol, when the result carries one
}

type frameRow struct {
	t      time.Time
	values map[string]float64
	symbol string
}

var numericColumns = []string{"open", "high", "low", "close", "volume"}

// newFrame validates that res contains a date column plus every required
// column, coerces and sorts the rows, and returns the frame. Violations are
// reported as RenderError for the given kind.
func newFrame(kind model.ChartKind, res *model.QueryResult, required ...string) (*Frame, error) {
	if res.Empty() {
		return nil, renderErrorf(kind, "empty query result")
	}

	dateIdx := res.ColumnIndex("date")
	if dateIdx < 0 {
		return nil, errMissingColumn(kind, "date")
	}
	for _, col := range required {
		if res.ColumnIndex(col) < 0 {
			return nil, errMissingColumn(kind, col)
		}
	}
	symbolIdx := res.ColumnIndex("symbol")

	present := make([]string, 0, len(numericColumns))
	indexes := make([]int, 0, len(numericColumns))
	for _, col := range numericColumns {
		if i := res.ColumnIndex(col); i >= 0 {
			present = append(present, col)
			indexes = append(indexes, i)
		}
	}

	rows := make([]frameRow, 0, len(res.Rows))
	for _, raw := range res.Rows {
		t, err := asTime(raw[dateIdx])
		if err != nil {
			return nil, renderErrorf(kind, "unparseable date value %v", raw[dateIdx])
		}
		row := frameRow{t: t, values: make(map[string]float64, len(present))}
		for i, col := range present {
			v, ok := asFloat(raw[indexes[i]])
			if !ok {
				return nil, renderErrorf(kind, "non-numeric value %v in column %q", raw[indexes[i]], col)
			}
			row.values[col] = v
		}
		if symbolIdx >= 0 {
			if s, ok := raw[symbolIdx].(string); ok {
				row.symbol = s
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].t.Before(rows[j].t) })

	f := &Frame{Dates: make([]string, len(rows))}
	has := func(col string) bool {
		for _, c := range present {
			if c == col {
				return true
			}
		}
		return false
	}
	for _, col := range present {
		switch col {
		case "open":
			f.Open = make([]float64, 0, len(rows))
		case "high":
			f.High = make([]float64, 0, len(rows))
		case "low":
			f.Low = make([]float64, 0, len(rows))
		case "close":
			f.Close = make([]float64, 0, len(rows))
		case "volume":
			f.Volume = make([]float64, 0, len(rows))
		}
	}
	if symbolIdx >= 0 {
		f.Symbols = make([]string, 0, len(rows))
	}
	for i, row := range rows {
		f.Dates[i] = row.t.Format("2006-01-02")
		if has("open") {
			f.Open = append(f.Open, row.values["open"])
		}
		if has("high") {
			f.High = append(f.High, row.values["high"])
		}
		if has("low") {
			f.Low = append(f.Low, row.values["low"])
		}
		if has("close") {
			f.Close = append(f.Close, row.values["close"])
		}
		if has("volume") {
			f.Volume = append(f.Volume, row.values["volume"])
		}
		if f.Symbols != nil {
			f.Symbols = append(f.Symbols, row.symbol)
		}
	}
	return f, nil
}

// groupBySymbol splits a frame with a symbol column into per-symbol frames,
// symbols ordered by first appearance.
func (f *Frame) groupBySymbol() ([]string, map[string]*Frame) {
	order := make([]string, 0, 4)
	groups := make(map[string]*Frame)
	for i, sym := range f.Symbols {
		g, ok := groups[sym]
		if !ok {
			g = &Frame{}
			groups[sym] = g
			order = append(order, sym)
		}
		g.Dates = append(g.Dates, f.Dates[i])
		if f.Open != nil {
			g.Open = append(g.Open, f.Open[i])
		}
		if f.High != nil {
			g.High = append(g.High, f.High[i])
		}
		if f.Low != nil {
			g.Low = append(g.Low, f.Low[i])
		}
		if f.Close != nil {
			g.Close = append(g.Close, f.Close[i])
		}
		if f.Volume != nil {
			g.Volume = append(g.Volume, f.Volume[i])
		}
	}
	return order, groups
}

func asTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		var lastErr error
		for _, layout := range dateLayouts {
			parsed, err := time.Parse(layout, s)
			if err == nil {
				return parsed, nil
			}
			lastErr = err
		}
		return time.Time{}, lastErr
	case int64: // unix seconds
		return time.Unix(t, 0).UTC(), nil
	default:
		return time.Time{}, strconv.ErrSyntax
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
