package collector

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"StockScope/internal/model"
)

// SyntheticFetcher generates a seeded random-walk price history, one bar per
// business day. It is the default data source, so the assistant works without
// network access; the same seed always produces the same history for a symbol.
type SyntheticFetcher struct {
	Seed int64
}

// NewSyntheticFetcher creates a synthetic fetcher with the given seed.
func NewSyntheticFetcher(seed int64) *SyntheticFetcher {
	return &SyntheticFetcher{Seed: seed}
}

func (f *SyntheticFetcher) Name() string { return "synthetic" }

func (f *SyntheticFetcher) FetchDailyBars(_ context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error) {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(f.Seed ^ int64(h.Sum64())))

	// Initial price between $100 and $500.
	basePrice := 100 + rng.Float64()*400

	var bars []model.PriceBar
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		volatility := 0.005 + rng.Float64()*0.015
		open := basePrice * (1 + (rng.Float64()*2-1)*volatility)
		high := open * (1 + rng.Float64()*volatility*2)
		low := open * (1 - rng.Float64()*volatility*2)
		closePrice := low + rng.Float64()*(high-low)
		volume := int64(1_000_000 + rng.Float64()*9_000_000)

		// 60% chance to follow the previous trend, otherwise a random shift.
		if rng.Float64() < 0.6 {
			basePrice = closePrice
		} else {
			basePrice = basePrice * (1 + (rng.Float64()*2-1)*0.03)
		}

		bars = append(bars, model.PriceBar{
			Date:   d,
			Open:   round2(open),
			High:   round2(math.Max(high, math.Max(open, closePrice))),
			Low:    round2(math.Min(low, math.Min(open, closePrice))),
			Close:  round2(closePrice),
			Volume: volume,
		})
	}
	return bars, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
