package oracle

import (
	"context"
	"fmt"
	"sync"
)

// Static serves quotes from a fixed in-memory price table. Used for
// offline runs (ORACLE_URL=static) and in tests.
type Static struct {
	mu     sync.RWMutex
	prices map[string]float64
}

func NewStatic(prices map[string]float64) *Static {
	cp := make(map[string]float64, len(prices))
	for sym, p := range prices {
		cp[sym] = p
	}
	return &Static{prices: cp}
}

// DefaultStatic returns a Static preloaded with a handful of large-cap
// symbols so the venue is usable without a provider.
func DefaultStatic() *Static {
	return NewStatic(map[string]float64{
		"AAPL":  178.25,
		"MSFT":  412.10,
		"AMZN":  186.40,
		"GOOGL": 164.75,
		"NVDA":  122.30,
		"TSLA":  248.90,
	})
}

func (s *Static) Quote(_ context.Context, symbol string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prices[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: no quote for %s", ErrPriceUnavailable, symbol)
	}
	return p, nil
}

// Set updates a symbol's quote.
func (s *Static) Set(symbol string, price float64) {
	s.mu.Lock()
	s.prices[symbol] = price
	s.mu.Unlock()
}

var _ Client = (*Static)(nil)
