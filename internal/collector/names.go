package collector

import (
	"log"
	"strings"

	"github.com/piquette/finance-go/quote"
)

// defaultCompanyNames covers the seed universe so the synthetic source never
// needs the network.
var defaultCompanyNames = map[string]string{
	"AAPL":  "Apple Inc.",
	"MSFT":  "Microsoft Corporation",
	"GOOGL": "Alphabet Inc.",
	"AMZN":  "Amazon.com, Inc.",
	"META":  "Meta Platforms, Inc.",
}

// CompanyName resolves a human-readable company name for a ticker. When
// lookup is enabled it asks Yahoo quotes first and falls back to the built-in
// table; the symbol itself is the last resort.
func CompanyName(symbol string, lookup bool) string {
	if lookup {
		if q, err := quote.Get(symbol); err == nil && q != nil && q.ShortName != "" {
			return q.ShortName
		} else if err != nil {
			log.Printf("[WARN] company name lookup for %s failed: %v", symbol, err)
		}
	}
	if name, ok := defaultCompanyNames[strings.ToUpper(symbol)]; ok {
		return name
	}
	return symbol
}
