package skills

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

const skillColumns = `id, owner_id, title, description, category,
		credits_per_hour, active, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, skill *models.Skill) (*models.Skill, error) {
	query := `
		INSERT INTO skills (id, owner_id, title, description, category, credits_per_hour, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
		`
	err := r.db.QueryRowContext(ctx, query,
		skill.ID, skill.OwnerID, skill.Title, skill.Description, skill.Category,
		skill.CreditsPerHour, skill.Active).
		Scan(&skill.CreatedAt, &skill.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return skill, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Skill, error) {
	query := `SELECT ` + skillColumns + `
		 FROM skills
		 WHERE id = $1
		 `
	s := &models.Skill{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.OwnerID, &s.Title, &s.Description, &s.Category,
			&s.CreditsPerHour, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]*models.Skill, error) {
	query := `SELECT ` + skillColumns + `
		 FROM skills
		 WHERE active
		 ORDER BY created_at DESC
		 `
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Skill, error) {
	query := `SELECT ` + skillColumns + `
		 FROM skills
		 WHERE owner_id = $1
		 ORDER BY created_at DESC
		 `
	return r.list(ctx, query, ownerID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Skill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Skill
	for rows.Next() {
		s := &models.Skill{}
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Title, &s.Description, &s.Category,
			&s.CreditsPerHour, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, ownerID string, active bool) error {
	query := `
		UPDATE skills
		SET active = $3, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		`
	result, err := r.db.ExecContext(ctx, query, id, ownerID, active)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
