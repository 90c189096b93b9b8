package engine

import "github.com/quantabay/exsim/pkg/book"

// Query is the read-only side of the venue, layered over the store.
// It shares the store with the engine and reads concurrently with
// in-flight executions.
type Query struct {
	store *book.Store
}

func NewQuery(store *book.Store) *Query {
	return &Query{store: store}
}

// ListOrders returns the full execution log in commit order.
func (q *Query) ListOrders() []book.ExecutionRecord {
	return q.store.Records()
}

// PriceOf returns the last executed price for symbol, or book.ErrNoTrades
// if nothing has ever executed for it.
func (q *Query) PriceOf(symbol string) (float64, error) {
	return q.store.LastPrice(symbol)
}
