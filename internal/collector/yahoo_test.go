package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func yahooTestFetcher(t *testing.T, body string) *YahooFetcher {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	f := NewYahooFetcher("")
	f.baseURL = srv.URL
	return f
}

func TestYahooFetcher_ParsesBars(t *testing.T) {
	// Three timestamps, the middle one a null bar (holiday).
	body := `{"chart":{"result":[{
		"timestamp":[1735776000,1735862400,1735948800],
		"indicators":{"quote":[{
			"open":[100.0,null,102.0],
			"high":[103.0,null,105.0],
			"low":[99.0,null,101.0],
			"close":[101.5,null,104.0],
			"volume":[1000000,null,1200000]
		}]}
	}],"error":null}}`

	f := yahooTestFetcher(t, body)
	bars, err := f.FetchDailyBars(context.Background(), "AAPL",
		time.Unix(1735776000, 0), time.Unix(1735948800, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars (null bar skipped), got %d", len(bars))
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Error("bars should be date-ordered")
	}
	if bars[0].Open != 100 || bars[1].Close != 104 {
		t.Errorf("unexpected bar values: %+v", bars)
	}
}

func TestYahooFetcher_TruncatedQuoteArrays(t *testing.T) {
	// More timestamps than quote values; must error, not panic.
	body := `{"chart":{"result":[{
		"timestamp":[1735776000,1735862400,1735948800],
		"indicators":{"quote":[{
			"open":[100.0],
			"high":[103.0],
			"low":[99.0],
			"close":[101.5],
			"volume":[1000000]
		}]}
	}],"error":null}}`

	f := yahooTestFetcher(t, body)
	_, err := f.FetchDailyBars(context.Background(), "AAPL",
		time.Unix(1735776000, 0), time.Unix(1735948800, 0))
	if err == nil {
		t.Fatal("expected an error for truncated quote arrays")
	}
}

func TestYahooFetcher_APIError(t *testing.T) {
	body := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

	f := yahooTestFetcher(t, body)
	_, err := f.FetchDailyBars(context.Background(), "NOPE",
		time.Now().AddDate(0, 0, -10), time.Now())
	if err == nil {
		t.Fatal("expected the API error to surface")
	}
}
