package ports

import (
	"context"

	"github.com/google/uuid"
)

// CustomerDirectory resolves customer references for orders.
type CustomerDirectory interface {
	// CustomerName returns the current display name and whether the customer exists.
	CustomerName(ctx context.Context, id uuid.UUID) (string, bool, error)
}
