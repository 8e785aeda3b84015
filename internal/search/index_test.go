package search

import (
	"testing"

	"StockScope/internal/model"
)

func testUniverse() []model.Stock {
	return []model.Stock{
		{ID: 1, Symbol: "AAPL", CompanyName: "Apple Inc."},
		{ID: 2, Symbol: "MSFT", CompanyName: "Microsoft Corporation"},
		{ID: 3, Symbol: "GOOGL", CompanyName: "Alphabet Inc."},
		{ID: 4, Symbol: "AMZN", CompanyName: "Amazon.com, Inc."},
		{ID: 5, Symbol: "META", CompanyName: "Meta Platforms, Inc."},
	}
}

func TestLookup_CompanyName(t *testing.T) {
	idx, err := New(testUniverse())
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	tests := []struct {
		query string
		want  string
	}{
		{"Apple", "AAPL"},
		{"microsoft", "MSFT"},
		{"Amazon", "AMZN"},
	}
	for _, tt := range tests {
		hits, err := idx.Lookup(tt.query, 3)
		if err != nil {
			t.Fatalf("lookup %q: %v", tt.query, err)
		}
		if len(hits) == 0 {
			t.Errorf("lookup %q: no hits", tt.query)
			continue
		}
		if hits[0].Symbol != tt.want {
			t.Errorf("lookup %q: expected %s first, got %s", tt.query, tt.want, hits[0].Symbol)
		}
	}
}

func TestLookup_TickerPrefix(t *testing.T) {
	idx, err := New(testUniverse())
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	hits, err := idx.Lookup("GOOG", 3)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, h := range hits {
		if h.Symbol == "GOOGL" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected GOOGL among hits for prefix GOOG, got %+v", hits)
	}
}

func TestLookup_NoMatch(t *testing.T) {
	idx, err := New(testUniverse())
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	hits, err := idx.Lookup("quartz mining consortium", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits for an unrelated query, got %+v", hits)
	}
}
