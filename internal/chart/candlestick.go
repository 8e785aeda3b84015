package chart

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockScope/internal/model"
)

// Candlestick renders per-day OHLC bodies. ECharts candlestick values are
// ordered [open, close, low, high].
func (r *Renderer) Candlestick(res *model.QueryResult, symbol, title string) (*model.ChartArtifact, error) {
	f, err := newFrame(model.ChartCandlestick, res, "open", "high", "low", "close")
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = fmt.Sprintf("%s Stock Price Candlestick Chart", symbol)
	}

	data := make([]opts.KlineData, len(f.Close))
	for i := range f.Close {
		data[i] = opts.KlineData{Value: [4]float64{f.Open[i], f.Close[i], f.Low[i], f.High[i]}}
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(globalOpts(title, "Price ($)")...)
	kline.SetXAxis(f.Dates).AddSeries(symbol, data,
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color:        upColor,
			Color0:       downColor,
			BorderColor:  upColor,
			BorderColor0: downColor,
		}),
	)

	return r.finish(kline, model.ChartCandlestick, title, []string{symbol})
}
