// Package transactions declares the repository contract for the append-only
// credit ledger. Rows are only ever inserted; the ledger is the audit trail
// for every credit movement on the platform.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

// Repository defines persistence operations for ledger entries.
type Repository interface {
	// Create appends one ledger entry and returns it with its timestamp.
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// ListByUser returns entries where the user is sender or recipient,
	// newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Transaction, error)
}
