package collector

import (
	"context"
	"log"
	"time"

	"StockScope/internal/store"
)

// Collector populates the schema store with price history for a configured
// set of symbols. A failed fetch skips that symbol with a warning; population
// is not fatal on partial failure.
type Collector struct {
	Fetcher      Fetcher
	Store        *store.Store
	Symbols      []string
	LookbackDays int

	// ResolveNames enables the Yahoo quote lookup for company names. Leave
	// false for the synthetic source to keep population offline.
	ResolveNames bool
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, st *store.Store, symbols []string, lookbackDays int) *Collector {
	return &Collector{
		Fetcher:      fetcher,
		Store:        st,
		Symbols:      symbols,
		LookbackDays: lookbackDays,
	}
}

// Populate fetches and upserts daily bars for every configured symbol.
// Returns the number of newly inserted bars. Fetch failures are recorded as
// DataSourceError warnings; only store failures abort.
func (c *Collector) Populate(ctx context.Context) (int, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -c.LookbackDays)

	total := 0
	for _, symbol := range c.Symbols {
		bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, start, end)
		if err != nil {
			dsErr := &DataSourceError{Symbol: symbol, Source: c.Fetcher.Name(), Err: err}
			log.Printf("[WARN] %v, skipping symbol", dsErr)
			continue
		}

		valid := bars[:0]
		for i := range bars {
			if err := bars[i].Validate(); err != nil {
				log.Printf("[WARN] %s: dropping invalid bar: %v", symbol, err)
				continue
			}
			valid = append(valid, bars[i])
		}
		if len(valid) == 0 {
			log.Printf("[WARN] %s: no usable bars returned, skipping symbol", symbol)
			continue
		}

		stockID, err := c.Store.UpsertStock(symbol, CompanyName(symbol, c.ResolveNames))
		if err != nil {
			return total, err
		}
		inserted, err := c.Store.UpsertBars(stockID, valid)
		if err != nil {
			return total, err
		}
		total += inserted
		log.Printf("[INFO] %s: %d bars fetched, %d new", symbol, len(valid), inserted)
	}
	return total, nil
}
