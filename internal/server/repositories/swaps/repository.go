// Package swaps declares the server-side repository contract for swap records.
// Status changes go through UpdateStatus, a compare-and-set guarded by the
// expected prior state, so racing transitions have exactly one winner.
package swaps

import (
	"context"

	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

// Repository defines persistence operations for swaps.
type Repository interface {
	// Create inserts a new swap in its initial status and returns it with
	// generated timestamps.
	Create(ctx context.Context, swap *models.Swap) (*models.Swap, error)

	// GetByID returns the swap with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Swap, error)

	// LockByID loads the swap with a row lock held until the surrounding
	// transaction ends, serializing concurrent settlement attempts.
	LockByID(ctx context.Context, id string) (*models.Swap, error)

	// UpdateStatus moves the swap from the expected prior status to the new
	// one. It reports false, without error, when the row was not in the
	// expected status (the compare-and-set lost the race).
	UpdateStatus(ctx context.Context, id string, from, to models.SwapStatus) (bool, error)

	// ListByUser returns all swaps where the user is teacher or learner,
	// newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Swap, error)
}
