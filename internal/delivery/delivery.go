// Package delivery defines the contract every transport (HTTP, workers)
// fulfils so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport endpoint.
type Delivery interface {
	// Serve blocks until the transport stops or fails.
	Serve(ctx context.Context) error
}
