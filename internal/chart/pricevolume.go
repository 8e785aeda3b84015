package chart

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockScope/internal/model"
)

// PriceVolume renders the closing price line on the primary axis and volume
// bars on a secondary axis sharing the x axis, so the chart stays readable
// when volume is orders of magnitude larger than price.
func (r *Renderer) PriceVolume(res *model.QueryResult, symbol, title string) (*model.ChartArtifact, error) {
	f, err := newFrame(model.ChartPriceVolume, res, "close", "volume")
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = fmt.Sprintf("%s Price and Volume", symbol)
	}

	priceData := make([]opts.LineData, len(f.Close))
	for i, v := range f.Close {
		priceData[i] = opts.LineData{Value: v}
	}
	volumeData := make([]opts.BarData, len(f.Volume))
	for i, v := range f.Volume {
		volumeData[i] = opts.BarData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(title, "Price ($)")...)
	line.ExtendYAxis(opts.YAxis{Name: "Volume", Type: "value", SplitLine: &opts.SplitLine{Show: opts.Bool(false)}})
	line.SetXAxis(f.Dates).AddSeries("Closing Price", priceData)

	bar := charts.NewBar()
	bar.SetXAxis(f.Dates).AddSeries("Volume", volumeData,
		charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}),
	)
	line.Overlap(bar)

	return r.finish(line, model.ChartPriceVolume, title, []string{symbol})
}
