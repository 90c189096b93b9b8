package engine

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/quantabay/exsim/pkg/book"
	"github.com/quantabay/exsim/pkg/oracle"
)

// Engine executes orders: validate, price via the oracle, commit to the
// store. Exactly one of two outcomes per request: a full committed
// execution at the quoted price, or a rejection with zero state change.
//
// No lock is held across the oracle call. A slow quote for one order
// never blocks another order from committing, which also means "first
// accepted" is not "first committed".
type Engine struct {
	store  *book.Store
	oracle oracle.Client
	ids    *snowflake.Node
	logger *zap.SugaredLogger

	// OnExecution, if set, is called after each commit (e.g. to broadcast
	// the trade over WebSocket). Must not block.
	OnExecution func(book.ExecutionRecord)
}

// NewEngine wires an engine to its store and price oracle. nodeID seeds
// the snowflake generator: IDs are unique across the process lifetime
// even under concurrent submission, unlike wall-clock millisecond IDs.
func NewEngine(store *book.Store, client oracle.Client, nodeID int64, logger *zap.SugaredLogger) (*Engine, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node: %w", err)
	}
	return &Engine{
		store:  store,
		oracle: client,
		ids:    node,
		logger: logger,
	}, nil
}

// Execute runs one order through validate -> quote -> commit and returns
// the committed record. On failure the returned error is always a
// *RejectError and the store is unchanged.
func (e *Engine) Execute(ctx context.Context, req OrderRequest) (book.ExecutionRecord, error) {
	if err := req.Validate(); err != nil {
		e.logger.Warnw("order_rejected",
			"reason", ReasonInvalidParameters,
			"symbol", req.Symbol)
		return book.ExecutionRecord{}, reject(ReasonInvalidParameters, "Invalid order parameters", err)
	}

	// Single attempt, no retry; the deadline lives in the oracle client.
	price, err := e.oracle.Quote(ctx, req.Symbol)
	if err != nil {
		e.logger.Errorw("quote_failed", "symbol", req.Symbol, "err", err)
		return book.ExecutionRecord{}, reject(ReasonPriceUnavailable, err.Error(), err)
	}

	rec := book.ExecutionRecord{
		ID:        e.ids.Generate().String(),
		Symbol:    req.Symbol,
		Quantity:  req.Quantity,
		Type:      req.Type,
		Price:     price,
		Total:     price * req.Quantity,
		Timestamp: req.Timestamp,
		Status:    book.StatusExecuted,
	}

	// Commit never fails: append and last-price update are one atomic
	// unit inside the store.
	e.store.Commit(rec)

	e.logger.Infow("order_executed",
		"order_id", rec.ID,
		"symbol", rec.Symbol,
		"side", rec.Type,
		"quantity", rec.Quantity,
		"price", rec.Price,
		"total", rec.Total)

	if e.OnExecution != nil {
		e.OnExecution(rec)
	}

	return rec, nil
}
