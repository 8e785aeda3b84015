package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"StockScope/internal/model"
)

// Index is an in-memory full-text index over the stock universe, letting the
// analyst resolve loose company references ("Apple", "microsoft stock") to
// tickers without a model round trip.
type Index struct {
	idx      bleve.Index
	bySymbol map[string]model.Stock
}

type stockDoc struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"company_name"`
}

// New builds the index from the stocks currently in the schema store.
func New(stocks []model.Stock) (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	bySymbol := make(map[string]model.Stock, len(stocks))
	batch := idx.NewBatch()
	for _, st := range stocks {
		bySymbol[st.Symbol] = st
		if err := batch.Index(st.Symbol, stockDoc{Symbol: st.Symbol, CompanyName: st.CompanyName}); err != nil {
			return nil, fmt.Errorf("index %s: %w", st.Symbol, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, fmt.Errorf("index batch: %w", err)
	}

	return &Index{idx: idx, bySymbol: bySymbol}, nil
}

// Lookup returns up to limit stocks matching the query, best match first.
// Matches company names (analyzed, fuzzy) and ticker prefixes.
func (i *Index) Lookup(query string, limit int) ([]model.Stock, error) {
	if limit <= 0 {
		limit = 5
	}

	match := bleve.NewMatchQuery(query)
	match.SetFuzziness(1)
	prefix := bleve.NewPrefixQuery(strings.ToLower(query))
	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(match, prefix), limit, 0, false)

	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	stocks := make([]model.Stock, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if st, ok := i.bySymbol[hit.ID]; ok {
			stocks = append(stocks, st)
		}
	}
	return stocks, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.idx.Close()
}
