package models

import "errors"

var (
	// ErrFetchFailed wraps any failure retrieving herd, stock or order data.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrSubmitFailed wraps any failure persisting an order.
	ErrSubmitFailed = errors.New("submit failed")
)

// ErrStaleSnapshot reports a ledger write against a version that is no longer current.
var ErrStaleSnapshot = errors.New("stock snapshot is stale")
