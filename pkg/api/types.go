package api

// API response types for REST endpoints and WebSocket messages

// ==============================
// REST Response Types
// ==============================

// PriceInfo is the last executed price for a symbol
type PriceInfo struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// SymbolInfo is one entry in the tradable-symbol catalog
type SymbolInfo struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// ErrorResponse is returned for all errors
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ==============================
// WebSocket Message Types
// ==============================

// WSSubscribeRequest is sent by client to subscribe to channels
type WSSubscribeRequest struct {
	Op       string   `json:"op"`       // "subscribe" or "unsubscribe"
	Channels []string `json:"channels"` // e.g., ["trades", "trades:AAPL"]
}

// TradeUpdate is broadcast when an order executes
type TradeUpdate struct {
	Type      string  `json:"type"` // "trade"
	OrderID   string  `json:"orderId"`
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
	Side      string  `json:"side"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
	Timestamp string  `json:"timestamp"`
}
