package chart

import (
	"fmt"
	"log"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockScope/internal/calculator"
	"StockScope/internal/model"
)

// DefaultMAWindows are the moving-average windows used when the caller does
// not specify any.
var DefaultMAWindows = []int{20, 50}

// MovingAverage overlays the raw closing price with one simple moving
// average line per window. The first window-1 points of each average are
// undefined and rendered as gaps, never zero-filled. Windows larger than the
// series are skipped with a warning; if none fit, the render fails.
func (r *Renderer) MovingAverage(res *model.QueryResult, symbol, title string, windows []int) (*model.ChartArtifact, error) {
	f, err := newFrame(model.ChartMovingAverage, res, "close")
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		windows = DefaultMAWindows
	}
	if title == "" {
		title = fmt.Sprintf("%s Price with Moving Averages", symbol)
	}

	closeData := make([]opts.LineData, len(f.Close))
	for i, v := range f.Close {
		closeData[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(title, "Price ($)")...)
	line.SetXAxis(f.Dates).AddSeries("Closing Price", closeData)

	plotted := 0
	for _, window := range windows {
		series, err := calculator.SMASeries(f.Close, window)
		if err != nil {
			log.Printf("[WARN] %s: skipping %d-day MA: %v", symbol, window, err)
			continue
		}
		maData := make([]opts.LineData, len(f.Close))
		for i := range f.Close {
			if i < window-1 {
				maData[i] = opts.LineData{Value: "-"} // gap, not zero
			} else {
				maData[i] = opts.LineData{Value: series[i-window+1]}
			}
		}
		line.AddSeries(fmt.Sprintf("%d-day MA", window), maData)
		plotted++
	}
	if plotted == 0 {
		return nil, renderErrorf(model.ChartMovingAverage,
			"only %d data points, not enough for any requested window %v", len(f.Close), windows)
	}

	return r.finish(line, model.ChartMovingAverage, title, []string{symbol})
}
