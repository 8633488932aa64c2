package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SkillService manages skill listings.
type SkillService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewSkillService constructs a SkillService.
func NewSkillService(db *sql.DB, m repomanager.RepositoryManager) *SkillService {
	return &SkillService{db: db, repomanager: m}
}

// CreateSkillInput carries a new listing from its owner.
type CreateSkillInput struct {
	OwnerID        string
	Title          string
	Description    string
	Category       string
	CreditsPerHour int64
}

// Create validates and inserts an active listing.
func (s *SkillService) Create(ctx context.Context, in CreateSkillInput) (*models.Skill, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if in.CreditsPerHour <= 0 {
		return nil, fmt.Errorf("%w: credits per hour must be positive", common.ErrorValidation)
	}

	return s.repomanager.Skills(s.db).Create(ctx, &models.Skill{
		ID:             uuid.New().String(),
		OwnerID:        in.OwnerID,
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		Category:       in.Category,
		CreditsPerHour: in.CreditsPerHour,
		Active:         true,
	})
}

// Get returns the skill with the given id.
func (s *SkillService) Get(ctx context.Context, id string) (*models.Skill, error) {
	return s.repomanager.Skills(s.db).GetByID(ctx, id)
}

// ListActive returns active listings, newest first.
func (s *SkillService) ListActive(ctx context.Context) ([]*models.Skill, error) {
	return s.repomanager.Skills(s.db).ListActive(ctx)
}

// ListByOwner returns all listings owned by the given profile.
func (s *SkillService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Skill, error) {
	return s.repomanager.Skills(s.db).ListByOwner(ctx, ownerID)
}

// SetActive flips the active flag on the caller's listing. Only the owner may
// change it; a non-owned or missing listing yields common.ErrorNotFound.
func (s *SkillService) SetActive(ctx context.Context, id string, ownerID string, active bool) error {
	return s.repomanager.Skills(s.db).SetActive(ctx, id, ownerID, active)
}
