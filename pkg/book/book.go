package book

import (
	"errors"
	"sync"
)

// ErrNoTrades is returned by LastPrice for a symbol that has never had an
// execution commit. Distinct from an oracle failure: this is "never
// traded", not "could not price".
var ErrNoTrades = errors.New("no trades for symbol")

// ExecutionRecord is one committed trade. Records are append-only: once
// committed they are never mutated, reordered or removed for the lifetime
// of the process.
type ExecutionRecord struct {
	ID        string  `json:"orderId"`
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
	Type      string  `json:"type"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
	Timestamp string  `json:"timestamp"` // client-supplied, echoed back
	Status    string  `json:"status"`    // always "EXECUTED"
}

// StatusExecuted is the only terminal state a committed record can carry.
const StatusExecuted = "EXECUTED"

// Store holds the trade log and the latest executed price per symbol.
// Commit is the single mutation path: the log append and the last-price
// update happen under one critical section, so no reader can observe a
// record without its price update or vice versa.
type Store struct {
	mu         sync.RWMutex
	records    []ExecutionRecord
	lastPrices map[string]float64
}

func NewStore() *Store {
	return &Store{
		lastPrices: make(map[string]float64),
	}
}

// Commit appends rec to the trade log and updates the last price for its
// symbol as one atomic unit.
func (s *Store) Commit(rec ExecutionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	s.lastPrices[rec.Symbol] = rec.Price
}

// Records returns the full execution log in commit order. The returned
// slice is a copy; the caller may not mutate committed state through it.
func (s *Store) Records() []ExecutionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ExecutionRecord, len(s.records))
	copy(out, s.records)
	return out
}

// LastPrice returns the most recently committed execution price for symbol.
func (s *Store) LastPrice(symbol string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.lastPrices[symbol]
	if !ok {
		return 0, ErrNoTrades
	}
	return p, nil
}

// Len returns the number of committed executions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
