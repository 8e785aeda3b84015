package chart

import (
	"log"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockScope/internal/calculator"
	"StockScope/internal/model"
)

// Comparative overlays one line per symbol, each close series normalized to
// percentage change from its first value in the window, so the first plotted
// point of every symbol is exactly 0. The QueryResult must carry a symbol
// column; symbols without usable data are omitted with a warning.
func (r *Renderer) Comparative(res *model.QueryResult, title string) (*model.ChartArtifact, error) {
	f, err := newFrame(model.ChartComparative, res, "symbol", "close")
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = "Comparative Stock Performance"
	}

	order, groups := f.groupBySymbol()

	// Symbols can cover different date ranges; plot over the union so no
	// series is resampled or interpolated.
	dateSet := make(map[string]struct{})
	for _, g := range groups {
		for _, d := range g.Dates {
			dateSet[d] = struct{}{}
		}
	}
	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(title, "Percentage Change (%)")...)
	line.SetXAxis(dates)

	plotted := make([]string, 0, len(order))
	for _, sym := range order {
		g := groups[sym]
		norm := calculator.Normalize(g.Close)
		if norm == nil {
			log.Printf("[WARN] comparative: omitting %s, no usable close series", sym)
			continue
		}
		byDate := make(map[string]float64, len(norm))
		for i, d := range g.Dates {
			byDate[d] = norm[i]
		}
		data := make([]opts.LineData, len(dates))
		for i, d := range dates {
			if v, ok := byDate[d]; ok {
				data[i] = opts.LineData{Value: v}
			} else {
				data[i] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries(sym, data)
		plotted = append(plotted, sym)
	}
	if len(plotted) == 0 {
		return nil, renderErrorf(model.ChartComparative, "no symbol had data in the requested window")
	}

	return r.finish(line, model.ChartComparative, title, plotted)
}
