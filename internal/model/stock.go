package model

import (
	"fmt"
	"time"
)

// Stock identifies one tradable instrument. Rows are created once at database
// initialization and are immutable afterwards.
type Stock struct {
	ID          int64
	Symbol      string
	CompanyName string
}

// PriceBar is one trading day for one stock.
type PriceBar struct {
	ID      int64
	StockID int64
	Date    time.Time
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  int64
}

// Validate checks the OHLCV invariants: low <= open,close <= high, volume >= 0.
func (b *PriceBar) Validate() error {
	if b.Low > b.Open || b.Low > b.Close {
		return fmt.Errorf("bar %s: low %.4f above open/close", b.Date.Format("2006-01-02"), b.Low)
	}
	if b.High < b.Open || b.High < b.Close {
		return fmt.Errorf("bar %s: high %.4f below open/close", b.Date.Format("2006-01-02"), b.High)
	}
	if b.Volume < 0 {
		return fmt.Errorf("bar %s: negative volume %d", b.Date.Format("2006-01-02"), b.Volume)
	}
	return nil
}
