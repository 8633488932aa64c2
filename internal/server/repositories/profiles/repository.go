// Package profiles declares the server-side repository contract for user
// profiles, including the balance and counter mutations used by settlement.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

// Repository defines persistence operations for profiles.
//
// Balance-mutating methods (AdjustBalance, IncrementTaught, IncrementLearned)
// are only ever called inside a transaction owned by a service; passing a
// transactional DBTX to the constructor is the caller's responsibility.
type Repository interface {
	// GetByID returns the profile with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// GetByEmail returns the profile with the given email, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)

	// LockByID loads the profile with a row lock held until the surrounding
	// transaction ends. Outside a transaction it behaves like GetByID.
	LockByID(ctx context.Context, id string) (*models.Profile, error)

	// Upsert inserts the profile or, when a row with the same id already
	// exists, fills in only the fields that are still empty. The boolean
	// result reports whether a new row was inserted.
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, bool, error)

	// AdjustBalance applies a signed delta to the profile's balance and
	// returns the new balance. A delta that would drive the balance negative
	// fails with common.ErrInsufficientCredits.
	AdjustBalance(ctx context.Context, id string, delta int64) (int64, error)

	// IncrementTaught bumps the skills_taught counter.
	IncrementTaught(ctx context.Context, id string) error

	// IncrementLearned bumps the skills_learned counter.
	IncrementLearned(ctx context.Context, id string) error

	// SetAvatarKey stores the object-storage key of the profile's avatar.
	SetAvatarKey(ctx context.Context, id string, key string) error
}
