package oracle

import (
	"context"
	"errors"
	"time"
)

// ErrPriceUnavailable is the only failure shape a quote lookup may
// surface. Network faults, unknown symbols and provider errors are all
// collapsed into it; callers only distinguish "got a price" from "did not".
var ErrPriceUnavailable = errors.New("price unavailable")

// Client supplies a current market price for a symbol.
type Client interface {
	Quote(ctx context.Context, symbol string) (float64, error)
}

// Candle is one daily bar from the provider's historical series.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}
