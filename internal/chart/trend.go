package chart

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockScope/internal/model"
)

// Trend renders date vs closing price as a single line. Missing trading days
// are simply absent from the axis, never interpolated.
func (r *Renderer) Trend(res *model.QueryResult, symbol, title string) (*model.ChartArtifact, error) {
	f, err := newFrame(model.ChartTrend, res, "close")
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = fmt.Sprintf("%s Stock Price Trend", symbol)
	}

	data := make([]opts.LineData, len(f.Close))
	for i, v := range f.Close {
		data[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(title, "Closing Price ($)")...)
	line.SetXAxis(f.Dates).AddSeries("Close", data)

	return r.finish(line, model.ChartTrend, title, []string{symbol})
}
