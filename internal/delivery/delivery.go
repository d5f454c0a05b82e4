// Package delivery defines the contract every transport-facing server fulfills.
package delivery

import "context"

// Delivery is a server that accepts requests until its context is cancelled
// or the fx lifecycle stops it.
type Delivery interface {
	Serve(ctx context.Context) error
}
