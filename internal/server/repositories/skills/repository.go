// Package skills declares the server-side repository contract for skill
// listings. Skills are read-only from the swap lifecycle's point of view.
package skills

import (
	"context"

	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

// Repository defines persistence operations for skill listings.
type Repository interface {
	// Create inserts a new skill and returns it with the generated timestamps.
	Create(ctx context.Context, skill *models.Skill) (*models.Skill, error)

	// GetByID returns the skill with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Skill, error)

	// ListActive returns active listings, newest first.
	ListActive(ctx context.Context) ([]*models.Skill, error)

	// ListByOwner returns all listings owned by the given profile.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Skill, error)

	// SetActive flips the active flag on the owner's listing.
	SetActive(ctx context.Context, id string, ownerID string, active bool) error
}
