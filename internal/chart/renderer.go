package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockScope/internal/model"
)

// Candle coloring rule: close >= open is an "up" day (a tie counts as up).
const (
	upColor   = "#26a69a"
	downColor = "#ef5350"
)

// Renderer writes interactive HTML charts into an output directory. File
// names are deterministic within a run: symbols, kind and a sequence number.
type Renderer struct {
	Dir string
	seq int
}

// NewRenderer creates a renderer targeting the given directory.
func NewRenderer(dir string) *Renderer {
	return &Renderer{Dir: dir}
}

type htmlChart interface {
	Render(w io.Writer) error
}

func (r *Renderer) nextPath(kind model.ChartKind, symbols []string) string {
	r.seq++
	label := strings.Join(symbols, "-")
	if label == "" {
		label = "chart"
	}
	return filepath.Join(r.Dir, fmt.Sprintf("%s_%s_%02d.html", label, kind, r.seq))
}

func (r *Renderer) finish(c htmlChart, kind model.ChartKind, title string, symbols []string) (*model.ChartArtifact, error) {
	path := r.nextPath(kind, symbols)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := c.Render(f); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return &model.ChartArtifact{Kind: kind, Title: title, FilePath: path, Symbols: symbols}, nil
}

func globalOpts(title, yAxisName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1100px", Height: "550px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAxisName, Scale: opts.Bool(true)}),
	}
}
