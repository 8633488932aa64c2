package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const profileColumns = `id, email, full_name, password_hash, balance,
		skills_taught, skills_learned, average_rating, total_reviews,
		avatar_key, created_at, updated_at`

func scanProfile(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.Balance,
		&p.SkillsTaught, &p.SkillsLearned, &p.AverageRating, &p.TotalReviews,
		&p.AvatarKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + `
		 FROM profiles
		 WHERE id = $1
		 `
	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + `
		 FROM profiles
		 WHERE email = $1
		 `
	return scanProfile(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) LockByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + `
		 FROM profiles
		 WHERE id = $1
		 FOR UPDATE
		 `
	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, bool, error) {
	// Conflict resolution keeps already-present non-empty fields, so retried
	// provisioning never overwrites what an earlier attempt stored.
	query := `
		INSERT INTO profiles (id, email, full_name, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			email = COALESCE(NULLIF(profiles.email, ''), EXCLUDED.email),
			full_name = COALESCE(NULLIF(profiles.full_name, ''), EXCLUDED.full_name),
			password_hash = COALESCE(NULLIF(profiles.password_hash, ''), EXCLUDED.password_hash),
			updated_at = now()
		RETURNING ` + profileColumns + `, (xmax = 0) AS inserted
		`
	p := &models.Profile{}
	var inserted bool
	err := r.db.QueryRowContext(ctx, query,
		profile.ID, profile.Email, profile.FullName, profile.PasswordHash).
		Scan(&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.Balance,
			&p.SkillsTaught, &p.SkillsLearned, &p.AverageRating, &p.TotalReviews,
			&p.AvatarKey, &p.CreatedAt, &p.UpdatedAt, &inserted)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, false, common.ErrorConflict
		}
		return nil, false, fmt.Errorf("db error: %w", err)
	}
	return p, inserted, nil
}

func (r *PostgresRepository) AdjustBalance(ctx context.Context, id string, delta int64) (int64, error) {
	query := `
		UPDATE profiles
		SET balance = balance + $2, updated_at = now()
		WHERE id = $1
		RETURNING balance
		`
	var balance int64
	err := r.db.QueryRowContext(ctx, query, id, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		if dbx.IsCheckViolation(err, "profiles_balance_check") {
			return 0, common.ErrInsufficientCredits
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return balance, nil
}

func (r *PostgresRepository) IncrementTaught(ctx context.Context, id string) error {
	query := `
		UPDATE profiles
		SET skills_taught = skills_taught + 1, updated_at = now()
		WHERE id = $1
		`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) IncrementLearned(ctx context.Context, id string) error {
	query := `
		UPDATE profiles
		SET skills_learned = skills_learned + 1, updated_at = now()
		WHERE id = $1
		`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetAvatarKey(ctx context.Context, id string, key string) error {
	query := `
		UPDATE profiles
		SET avatar_key = $2, updated_at = now()
		WHERE id = $1
		`
	if _, err := r.db.ExecContext(ctx, query, id, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
