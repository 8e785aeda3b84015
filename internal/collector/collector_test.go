package collector

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"StockScope/internal/model"
	"StockScope/internal/store"
)

func TestSyntheticFetcher_BarsAreValid(t *testing.T) {
	f := NewSyntheticFetcher(42)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -90)

	bars, err := f.FetchDailyBars(context.Background(), "AAPL", start, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) == 0 {
		t.Fatal("expected bars for a 90-day window")
	}
	for _, b := range bars {
		if err := b.Validate(); err != nil {
			t.Errorf("%s: invalid bar: %v", b.Date.Format("2006-01-02"), err)
		}
		if wd := b.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("%s: generated a weekend bar", b.Date.Format("2006-01-02"))
		}
	}
}

func TestSyntheticFetcher_Deterministic(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -30)

	a, err := NewSyntheticFetcher(42).FetchDailyBars(context.Background(), "MSFT", start, end)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSyntheticFetcher(42).FetchDailyBars(context.Background(), "MSFT", start, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("same seed produced different lengths: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at bar %d: %+v vs %+v", i, a[i], b[i])
		}
	}

	// Different symbols must not share a price path.
	c, err := NewSyntheticFetcher(42).FetchDailyBars(context.Background(), "GOOGL", start, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(c) > 0 && len(a) > 0 && c[0].Open == a[0].Open && c[0].Close == a[0].Close {
		t.Error("different symbols produced an identical first bar")
	}
}

// failingFetcher fails for one symbol and delegates the rest.
type failingFetcher struct {
	inner      Fetcher
	failSymbol string
}

func (f *failingFetcher) Name() string { return "flaky" }

func (f *failingFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error) {
	if symbol == f.failSymbol {
		return nil, errors.New("connection refused")
	}
	return f.inner.FetchDailyBars(ctx, symbol, start, end)
}

func TestPopulate_SkipsFailedSymbol(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	fetcher := &failingFetcher{inner: NewSyntheticFetcher(42), failSymbol: "AMZN"}
	col := NewCollector(fetcher, st, []string{"AAPL", "AMZN", "MSFT"}, 30)

	inserted, err := col.Populate(context.Background())
	if err != nil {
		t.Fatalf("partial fetch failure must not abort population: %v", err)
	}
	if inserted == 0 {
		t.Fatal("expected bars for the surviving symbols")
	}

	stocks, err := st.Stocks()
	if err != nil {
		t.Fatal(err)
	}
	if len(stocks) != 2 {
		t.Fatalf("expected 2 stocks (AMZN skipped), got %d: %+v", len(stocks), stocks)
	}
	for _, s := range stocks {
		if s.Symbol == "AMZN" {
			t.Error("failed symbol should not be stored")
		}
	}
}

func TestPopulate_RerunInsertsNothing(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	col := NewCollector(NewSyntheticFetcher(7), st, []string{"AAPL"}, 30)

	first, err := col.Populate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first == 0 {
		t.Fatal("expected bars on first population")
	}

	before, err := st.BarCount()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := col.Populate(context.Background()); err != nil {
		t.Fatal(err)
	}
	after, err := st.BarCount()
	if err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Errorf("re-running population changed the bar count: %d -> %d", before, after)
	}
}

func TestCompanyName_Fallbacks(t *testing.T) {
	if got := CompanyName("AAPL", false); got != "Apple Inc." {
		t.Errorf("expected built-in name for AAPL, got %q", got)
	}
	if got := CompanyName("ZZZZ", false); got != "ZZZZ" {
		t.Errorf("expected symbol fallback for unknown ticker, got %q", got)
	}
}
