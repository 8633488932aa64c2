package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/server/metrics"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SwapService owns the swap lifecycle: creation and validated state
// transitions. The completion transition delegates to the SettlementService,
// which performs the only mutation with financial side effects.
type SwapService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	settlement  *SettlementService
}

// NewSwapService constructs a SwapService.
func NewSwapService(db *sql.DB, m repomanager.RepositoryManager, settlement *SettlementService) *SwapService {
	return &SwapService{db: db, repomanager: m, settlement: settlement}
}

// CreateSwapInput carries the learner's swap request. TeacherID and
// TotalCredits may be supplied pre-resolved by the caller; both are
// re-validated against the skill record rather than trusted.
type CreateSwapInput struct {
	SkillID       string
	LearnerID     string
	DurationHours int
	Message       string
	MeetingType   string
	ScheduledAt   *time.Time
	TeacherID     string
	TotalCredits  int64
}

// Create validates the request and inserts a pending swap. The total credit
// price is always derived server-side from the skill's hourly rate; a
// caller-supplied TotalCredits that disagrees is rejected.
func (s *SwapService) Create(ctx context.Context, in CreateSwapInput) (*models.Swap, error) {
	if in.DurationHours <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", common.ErrorValidation)
	}

	skill, err := s.repomanager.Skills(s.db).GetByID(ctx, in.SkillID)
	if err != nil {
		return nil, err
	}
	if !skill.Active {
		return nil, fmt.Errorf("%w: skill is not active", common.ErrorValidation)
	}
	if skill.OwnerID == in.LearnerID {
		return nil, fmt.Errorf("%w: cannot request a swap for your own skill", common.ErrorValidation)
	}
	if in.TeacherID != "" && in.TeacherID != skill.OwnerID {
		return nil, fmt.Errorf("%w: skill does not belong to the given teacher", common.ErrorValidation)
	}

	total := int64(in.DurationHours) * skill.CreditsPerHour
	if in.TotalCredits != 0 && in.TotalCredits != total {
		return nil, fmt.Errorf("%w: total credits mismatch", common.ErrorValidation)
	}

	swap := &models.Swap{
		ID:            uuid.New().String(),
		SkillID:       skill.ID,
		TeacherID:     skill.OwnerID,
		LearnerID:     in.LearnerID,
		Status:        models.SwapPending,
		DurationHours: in.DurationHours,
		TotalCredits:  total,
		Message:       in.Message,
		MeetingType:   in.MeetingType,
		ScheduledAt:   in.ScheduledAt,
	}
	return s.repomanager.Swaps(s.db).Create(ctx, swap)
}

// Get returns a swap visible to the given actor. Only participants may read
// a swap record.
func (s *SwapService) Get(ctx context.Context, swapID string, actorID string) (*models.Swap, error) {
	swap, err := s.repomanager.Swaps(s.db).GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.Participant(actorID) {
		return nil, common.ErrorUnauthorized
	}
	return swap, nil
}

// ListByUser returns all swaps the user participates in, newest first.
func (s *SwapService) ListByUser(ctx context.Context, userID string) ([]*models.Swap, error) {
	return s.repomanager.Swaps(s.db).ListByUser(ctx, userID)
}

// Transition applies one caller-requested action to the swap.
//
// Legal transitions:
//
//	pending  -accept->  accepted   (teacher only)
//	pending  -decline-> declined   (teacher only)
//	accepted -begin->   in_progress (either participant)
//	pending|accepted -cancel-> cancelled (either participant)
//	in_progress -complete-> completed (either participant, via settlement)
//
// Re-invoking an already-satisfied transition returns the current record with
// no side effect; complete is the exception and never silently re-runs
// settlement. A transition racing another transition is decided by a
// compare-and-set on the status column: the loser re-reads and either takes
// the idempotent path or fails with common.ErrInvalidTransition.
func (s *SwapService) Transition(ctx context.Context, swapID string, actorID string, action models.SwapAction) (*models.Swap, error) {
	if action == models.ActionComplete {
		return s.settlement.Settle(ctx, swapID, actorID)
	}

	repo := s.repomanager.Swaps(s.db)

	swap, err := repo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	var from []models.SwapStatus
	var to models.SwapStatus
	teacherOnly := false

	switch action {
	case models.ActionAccept:
		from, to, teacherOnly = []models.SwapStatus{models.SwapPending}, models.SwapAccepted, true
	case models.ActionDecline:
		from, to, teacherOnly = []models.SwapStatus{models.SwapPending}, models.SwapDeclined, true
	case models.ActionBegin:
		from, to = []models.SwapStatus{models.SwapAccepted}, models.SwapInProgress
	case models.ActionCancel:
		from, to = []models.SwapStatus{models.SwapPending, models.SwapAccepted}, models.SwapCancelled
	default:
		return nil, fmt.Errorf("%w: unknown action %q", common.ErrorValidation, action)
	}

	if teacherOnly {
		if actorID != swap.TeacherID {
			return nil, common.ErrorUnauthorized
		}
	} else if !swap.Participant(actorID) {
		return nil, common.ErrorUnauthorized
	}

	// Idempotent retry: the requested state is already in place.
	if swap.Status == to {
		return swap, nil
	}

	legal := false
	for _, f := range from {
		if swap.Status == f {
			legal = true
			break
		}
	}
	if !legal {
		return nil, common.ErrInvalidTransition
	}

	ok, err := repo.UpdateStatus(ctx, swapID, swap.Status, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race against another transition; re-read to decide.
		current, err := repo.GetByID(ctx, swapID)
		if err != nil {
			return nil, err
		}
		if current.Status == to {
			return current, nil
		}
		return nil, common.ErrInvalidTransition
	}

	metrics.SwapTransitionsTotal.WithLabelValues(string(action)).Inc()

	swap.Status = to
	return swap, nil
}
