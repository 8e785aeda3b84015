package collector

import (
	"context"
	"fmt"
	"time"

	"StockScope/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error)
	Name() string
}

// DataSourceError reports a failed price-data fetch for one symbol during
// population. It is logged and the symbol is skipped; initialization is not
// fatal on partial failure.
type DataSourceError struct {
	Symbol string
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: fetch %s: %v", e.Source, e.Symbol, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }
