// Package services contains server-side business logic: authentication and
// provisioning, the swap state machine, and the credit settlement engine.
// Services hold a *sql.DB plus a RepositoryManager and run multi-row units of
// work through dbx.WithTx so every repository call inside shares one
// transaction.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/metrics"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SettlementService performs the atomic credit transfer that finalizes a swap,
// and system-originated balance adjustments. It is the only code path that
// writes profile balances after provisioning.
type SettlementService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewSettlementService constructs a SettlementService.
func NewSettlementService(db *sql.DB, m repomanager.RepositoryManager) *SettlementService {
	return &SettlementService{db: db, repomanager: m}
}

// Settle transfers the swap's total credits from learner to teacher, updates
// the taught/learned counters, marks the swap completed, and appends one
// swap_payment ledger entry, all inside a single transaction.
//
// Preconditions, checked in order inside the same transaction that mutates:
//  1. the swap exists (common.ErrorNotFound),
//  2. its status is in_progress (common.ErrInvalidState; this covers
//     double settlement: a second call finds the swap completed),
//  3. the actor is the teacher or the learner (common.ErrorUnauthorized),
//  4. the learner's balance covers the total (common.ErrInsufficientCredits).
//
// The swap row is locked first, so concurrent Settle calls on the same swap
// serialize: exactly one succeeds, the rest fail on the status check.
func (s *SettlementService) Settle(ctx context.Context, swapID string, actorID string) (*models.Swap, error) {
	var settled *models.Swap

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		swapRepo := s.repomanager.Swaps(tx)

		swap, err := swapRepo.LockByID(ctx, swapID)
		if err != nil {
			return err
		}
		if swap.Status != models.SwapInProgress {
			return common.ErrInvalidState
		}
		if !swap.Participant(actorID) {
			return common.ErrorUnauthorized
		}

		profileRepo := s.repomanager.Profiles(tx)

		// Lock both profiles in deterministic id order so two settlements
		// touching the same pair cannot deadlock.
		first, second := swap.LearnerID, swap.TeacherID
		if second < first {
			first, second = second, first
		}
		p1, err := profileRepo.LockByID(ctx, first)
		if err != nil {
			return err
		}
		p2, err := profileRepo.LockByID(ctx, second)
		if err != nil {
			return err
		}

		learner := p1
		if p2.ID == swap.LearnerID {
			learner = p2
		}
		if learner.Balance < swap.TotalCredits {
			return common.ErrInsufficientCredits
		}

		if _, err := profileRepo.AdjustBalance(ctx, swap.LearnerID, -swap.TotalCredits); err != nil {
			return err
		}
		if _, err := profileRepo.AdjustBalance(ctx, swap.TeacherID, swap.TotalCredits); err != nil {
			return err
		}
		if err := profileRepo.IncrementTaught(ctx, swap.TeacherID); err != nil {
			return err
		}
		if err := profileRepo.IncrementLearned(ctx, swap.LearnerID); err != nil {
			return err
		}

		ok, err := swapRepo.UpdateStatus(ctx, swap.ID, models.SwapInProgress, models.SwapCompleted)
		if err != nil {
			return err
		}
		if !ok {
			// Not reachable while the row lock is held.
			return common.ErrorConflict
		}

		if _, err := s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			ID:          uuid.New().String(),
			FromUserID:  swap.LearnerID,
			ToUserID:    swap.TeacherID,
			SwapID:      swap.ID,
			Amount:      swap.TotalCredits,
			Kind:        models.TxSwapPayment,
			Description: fmt.Sprintf("payment for swap %s", swap.ID),
		}); err != nil {
			return err
		}

		swap.Status = models.SwapCompleted
		settled = swap
		return nil
	})
	if err != nil {
		if dbx.IsSerializationFailure(err) {
			return nil, common.ErrorConflict
		}
		return nil, err
	}

	metrics.SettlementsTotal.Inc()
	metrics.CreditsTransferredTotal.Add(float64(settled.TotalCredits))
	metrics.SwapTransitionsTotal.WithLabelValues(string(models.ActionComplete)).Inc()

	return settled, nil
}

// AdminAdjust applies a signed, system-originated balance change and records
// it as an admin_adjustment ledger entry in the same transaction. Negative
// adjustments still respect the non-negative balance invariant.
func (s *SettlementService) AdminAdjust(ctx context.Context, profileID string, amount int64, description string) (*models.Transaction, error) {
	if amount == 0 {
		return nil, fmt.Errorf("%w: amount must be non-zero", common.ErrorValidation)
	}

	var entry *models.Transaction

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		profileRepo := s.repomanager.Profiles(tx)

		if _, err := profileRepo.LockByID(ctx, profileID); err != nil {
			return err
		}
		if _, err := profileRepo.AdjustBalance(ctx, profileID, amount); err != nil {
			return err
		}

		var err error
		entry, err = s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			ID:          uuid.New().String(),
			ToUserID:    profileID,
			Amount:      amount,
			Kind:        models.TxAdminAdjustment,
			Description: description,
		})
		return err
	})
	if err != nil {
		if dbx.IsSerializationFailure(err) {
			return nil, common.ErrorConflict
		}
		return nil, err
	}

	return entry, nil
}
