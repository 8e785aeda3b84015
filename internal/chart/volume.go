package chart

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockScope/internal/model"
)

// BarColor classifies a day by the candle rule: close >= open is "up".
// Exported so the per-bar coloring is testable without parsing HTML.
func BarColor(open, close float64) string {
	if close >= open {
		return upColor
	}
	return downColor
}

// Volume renders per-day trading volume as bars, colored by that day's
// open/close direction so price and volume correlate visually.
func (r *Renderer) Volume(res *model.QueryResult, symbol, title string) (*model.ChartArtifact, error) {
	f, err := newFrame(model.ChartVolume, res, "volume", "open", "close")
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = fmt.Sprintf("%s Trading Volume", symbol)
	}

	data := make([]opts.BarData, len(f.Volume))
	for i, v := range f.Volume {
		data[i] = opts.BarData{
			Value:     v,
			ItemStyle: &opts.ItemStyle{Color: BarColor(f.Open[i], f.Close[i])},
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(title, "Volume")...)
	bar.SetXAxis(f.Dates).AddSeries("Volume", data)

	return r.finish(bar, model.ChartVolume, title, []string{symbol})
}
