package swaps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const swapColumns = `id, skill_id, teacher_id, learner_id, status,
		duration_hours, total_credits, message, meeting_type, scheduled_at,
		created_at, updated_at`

func scanSwap(row *sql.Row) (*models.Swap, error) {
	s := &models.Swap{}
	err := row.Scan(&s.ID, &s.SkillID, &s.TeacherID, &s.LearnerID, &s.Status,
		&s.DurationHours, &s.TotalCredits, &s.Message, &s.MeetingType, &s.ScheduledAt,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, swap *models.Swap) (*models.Swap, error) {
	query := `
		INSERT INTO swaps (id, skill_id, teacher_id, learner_id, status,
			duration_hours, total_credits, message, meeting_type, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
		`
	err := r.db.QueryRowContext(ctx, query,
		swap.ID, swap.SkillID, swap.TeacherID, swap.LearnerID, swap.Status,
		swap.DurationHours, swap.TotalCredits, swap.Message, swap.MeetingType, swap.ScheduledAt).
		Scan(&swap.CreatedAt, &swap.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return swap, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Swap, error) {
	query := `SELECT ` + swapColumns + `
		 FROM swaps
		 WHERE id = $1
		 `
	return scanSwap(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) LockByID(ctx context.Context, id string) (*models.Swap, error) {
	query := `SELECT ` + swapColumns + `
		 FROM swaps
		 WHERE id = $1
		 FOR UPDATE
		 `
	return scanSwap(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from, to models.SwapStatus) (bool, error) {
	query := `
		UPDATE swaps
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		`
	result, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected == 1, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Swap, error) {
	query := `SELECT ` + swapColumns + `
		 FROM swaps
		 WHERE teacher_id = $1 OR learner_id = $1
		 ORDER BY created_at DESC
		 `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Swap
	for rows.Next() {
		s := &models.Swap{}
		if err := rows.Scan(&s.ID, &s.SkillID, &s.TeacherID, &s.LearnerID, &s.Status,
			&s.DurationHours, &s.TotalCredits, &s.Message, &s.MeetingType, &s.ScheduledAt,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
