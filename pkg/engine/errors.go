package engine

import "fmt"

// RejectReason classifies why an order did not execute. A rejected order
// leaves the store completely untouched; it is simply absent from the log.
type RejectReason string

const (
	ReasonInvalidParameters RejectReason = "INVALID_PARAMETERS"
	ReasonPriceUnavailable  RejectReason = "PRICE_UNAVAILABLE"
	ReasonUnexpected        RejectReason = "UNEXPECTED"
)

// RejectError is the only error type Execute returns.
type RejectError struct {
	Reason RejectReason
	Detail string
	Err    error // underlying cause, if any
}

func (e *RejectError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
	}
	return string(e.Reason)
}

func (e *RejectError) Unwrap() error { return e.Err }

func reject(reason RejectReason, detail string, err error) *RejectError {
	return &RejectError{Reason: reason, Detail: detail, Err: err}
}
