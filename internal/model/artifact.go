package model

// ChartKind names one of the supported chart types.
type ChartKind string

const (
	ChartTrend         ChartKind = "trend"
	ChartCandlestick   ChartKind = "candlestick"
	ChartVolume        ChartKind = "volume"
	ChartPriceVolume   ChartKind = "price_volume"
	ChartMovingAverage ChartKind = "moving_average"
	ChartComparative   ChartKind = "comparative"
)

// ChartKinds lists every supported kind, in catalog order.
var ChartKinds = []ChartKind{
	ChartTrend,
	ChartCandlestick,
	ChartVolume,
	ChartPriceVolume,
	ChartMovingAverage,
	ChartComparative,
}

// Valid reports whether k is a known chart kind.
func (k ChartKind) Valid() bool {
	for _, known := range ChartKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ChartArtifact describes one persisted interactive chart file.
// Immutable once written.
type ChartArtifact struct {
	Kind     ChartKind
	Title    string
	FilePath string
	Symbols  []string
}
