package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/quantabay/exsim/pkg/book"
	"github.com/quantabay/exsim/pkg/oracle"
)

func newTestEngine(t *testing.T, prices map[string]float64) (*Engine, *book.Store) {
	t.Helper()
	store := book.NewStore()
	eng, err := NewEngine(store, oracle.NewStatic(prices), 1, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng, store
}

func TestExecute_TotalIsPriceTimesQuantity(t *testing.T) {
	eng, store := newTestEngine(t, map[string]float64{"AAPL": 150.00})

	rec, err := eng.Execute(context.Background(), OrderRequest{
		Symbol:    "AAPL",
		Quantity:  10,
		Type:      "BUY",
		Timestamp: "2024-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if rec.Price != 150.00 {
		t.Errorf("price = %v, want 150.00", rec.Price)
	}
	if math.Abs(rec.Total-1500.00) > 1e-9 {
		t.Errorf("total = %v, want 1500.00", rec.Total)
	}
	if rec.Status != book.StatusExecuted {
		t.Errorf("status = %q, want %q", rec.Status, book.StatusExecuted)
	}
	if rec.Timestamp != "2024-01-01T00:00:00Z" {
		t.Errorf("timestamp not echoed back: %q", rec.Timestamp)
	}
	if rec.ID == "" {
		t.Error("expected a generated order ID")
	}

	if store.Len() != 1 {
		t.Errorf("store has %d records, want 1", store.Len())
	}
	p, err := store.LastPrice("AAPL")
	if err != nil || p != 150.00 {
		t.Errorf("LastPrice(AAPL) = %v, %v; want 150.00", p, err)
	}
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  OrderRequest
	}{
		{name: "missing symbol", req: OrderRequest{Quantity: 10, Type: "BUY"}},
		{name: "missing quantity", req: OrderRequest{Symbol: "AAPL", Type: "BUY"}},
		{name: "missing type", req: OrderRequest{Symbol: "AAPL", Quantity: 10}},
		{name: "all missing", req: OrderRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, store := newTestEngine(t, map[string]float64{"AAPL": 150})

			_, err := eng.Execute(context.Background(), tt.req)

			var rej *RejectError
			if err == nil {
				t.Fatal("expected rejection")
			}
			if !errors.As(err, &rej) || rej.Reason != ReasonInvalidParameters {
				t.Errorf("reason = %v, want INVALID_PARAMETERS", err)
			}
			if store.Len() != 0 {
				t.Errorf("rejected order mutated the store: %d records", store.Len())
			}
		})
	}
}

func TestExecute_PermissiveBeyondPresence(t *testing.T) {
	// Quantity sign and side semantics are not the engine's business:
	// presence is the only bar.
	eng, _ := newTestEngine(t, map[string]float64{"AAPL": 100})

	rec, err := eng.Execute(context.Background(), OrderRequest{
		Symbol:   "AAPL",
		Quantity: -5,
		Type:     "HOLD",
	})
	if err != nil {
		t.Fatalf("presence-valid order rejected: %v", err)
	}
	if rec.Total != -500 {
		t.Errorf("total = %v, want quantity taken at face value (-500)", rec.Total)
	}
}

func TestExecute_PriceUnavailable(t *testing.T) {
	eng, store := newTestEngine(t, map[string]float64{}) // oracle knows nothing

	_, err := eng.Execute(context.Background(), OrderRequest{
		Symbol:   "AAPL",
		Quantity: 10,
		Type:     "BUY",
	})

	var rej *RejectError
	if err == nil || !errors.As(err, &rej) || rej.Reason != ReasonPriceUnavailable {
		t.Fatalf("expected PRICE_UNAVAILABLE rejection, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("failed pricing mutated the store: %d records", store.Len())
	}
	if _, lpErr := store.LastPrice("AAPL"); lpErr != book.ErrNoTrades {
		t.Errorf("failed pricing set a last price: %v", lpErr)
	}
}

// delayedOracle answers like its inner client after a per-symbol delay,
// so tests can vary oracle response timing.
type delayedOracle struct {
	inner oracle.Client
	delay func(symbol string) time.Duration
}

func (d *delayedOracle) Quote(ctx context.Context, symbol string) (float64, error) {
	select {
	case <-time.After(d.delay(symbol)):
	case <-ctx.Done():
		return 0, fmt.Errorf("%w: %v", oracle.ErrPriceUnavailable, ctx.Err())
	}
	return d.inner.Quote(ctx, symbol)
}

func TestExecute_ConcurrentOrders(t *testing.T) {
	prices := map[string]float64{}
	const m = 50
	for i := 0; i < m; i++ {
		prices[fmt.Sprintf("SYM%d", i)] = float64(i + 1)
	}
	store := book.NewStore()
	// Randomized per-quote latency: the record count and uniqueness must
	// hold regardless of which oracle responses return first.
	slow := &delayedOracle{
		inner: oracle.NewStatic(prices),
		delay: func(string) time.Duration {
			return time.Duration(rand.Intn(20)) * time.Millisecond
		},
	}
	eng, err := NewEngine(store, slow, 1, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < m; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := eng.Execute(context.Background(), OrderRequest{
				Symbol:   fmt.Sprintf("SYM%d", i),
				Quantity: 2,
				Type:     "BUY",
			})
			if err != nil {
				t.Errorf("Execute(SYM%d): %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	records := store.Records()
	if len(records) != m {
		t.Fatalf("expected %d records, got %d", m, len(records))
	}

	ids := make(map[string]bool, m)
	for _, r := range records {
		if ids[r.ID] {
			t.Errorf("duplicate execution ID %s", r.ID)
		}
		ids[r.ID] = true
	}
}

func TestExecute_SlowQuoteDoesNotBlockOthers(t *testing.T) {
	store := book.NewStore()
	// AAPL quotes stall; MSFT quotes answer immediately.
	slow := &delayedOracle{
		inner: oracle.NewStatic(map[string]float64{"AAPL": 150, "MSFT": 400}),
		delay: func(symbol string) time.Duration {
			if symbol == "AAPL" {
				return 300 * time.Millisecond
			}
			return 0
		},
	}
	eng, err := NewEngine(store, slow, 1, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := eng.Execute(context.Background(), OrderRequest{Symbol: "AAPL", Quantity: 1, Type: "BUY"}); err != nil {
			t.Errorf("Execute(AAPL): %v", err)
		}
	}()

	// Let the AAPL quote get in flight, then submit MSFT.
	time.Sleep(50 * time.Millisecond)
	if _, err := eng.Execute(context.Background(), OrderRequest{Symbol: "MSFT", Quantity: 1, Type: "BUY"}); err != nil {
		t.Fatalf("Execute(MSFT): %v", err)
	}
	wg.Wait()

	// First accepted is not first committed: the fast quote commits ahead
	// of the earlier, slower one.
	records := store.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Symbol != "MSFT" || records[1].Symbol != "AAPL" {
		t.Errorf("commit order = %s, %s; want MSFT before AAPL", records[0].Symbol, records[1].Symbol)
	}
}

func TestExecute_OnExecutionHook(t *testing.T) {
	eng, _ := newTestEngine(t, map[string]float64{"AAPL": 150})

	var got []book.ExecutionRecord
	eng.OnExecution = func(rec book.ExecutionRecord) {
		got = append(got, rec)
	}

	rec, err := eng.Execute(context.Background(), OrderRequest{Symbol: "AAPL", Quantity: 1, Type: "SELL"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(got) != 1 || got[0].ID != rec.ID {
		t.Errorf("hook saw %v, want the committed record %s", got, rec.ID)
	}

	// Rejections never fire the hook
	eng.Execute(context.Background(), OrderRequest{})
	if len(got) != 1 {
		t.Errorf("hook fired on rejection")
	}
}

func TestQuery(t *testing.T) {
	eng, store := newTestEngine(t, map[string]float64{"AAPL": 150, "MSFT": 400})
	q := NewQuery(store)

	if n := len(q.ListOrders()); n != 0 {
		t.Fatalf("fresh venue has %d orders", n)
	}
	if _, err := q.PriceOf("AAPL"); err != book.ErrNoTrades {
		t.Fatalf("expected ErrNoTrades before trading, got %v", err)
	}

	eng.Execute(context.Background(), OrderRequest{Symbol: "AAPL", Quantity: 1, Type: "BUY"})
	eng.Execute(context.Background(), OrderRequest{Symbol: "MSFT", Quantity: 2, Type: "SELL"})

	orders := q.ListOrders()
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].Symbol != "AAPL" || orders[1].Symbol != "MSFT" {
		t.Errorf("orders out of commit order: %s, %s", orders[0].Symbol, orders[1].Symbol)
	}

	p, err := q.PriceOf("MSFT")
	if err != nil || p != 400 {
		t.Errorf("PriceOf(MSFT) = %v, %v; want 400", p, err)
	}
}
