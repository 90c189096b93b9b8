package engine

import "errors"

// OrderRequest is the inbound order shape, decoded at the API boundary
// before it reaches the engine. Timestamp is opaque: echoed back on the
// record, never used for ordering.
type OrderRequest struct {
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
	Type      string  `json:"type"` // "BUY" or "SELL"; presence-checked only
	Timestamp string  `json:"timestamp"`
}

var errInvalidOrder = errors.New("invalid order parameters")

// Validate enforces the presence-only bar: symbol, quantity and type must
// be set. Quantity sign and symbol format are deliberately not checked;
// tightening beyond presence would reject orders the venue accepts.
func (r OrderRequest) Validate() error {
	if r.Symbol == "" || r.Quantity == 0 || r.Type == "" {
		return errInvalidOrder
	}
	return nil
}
