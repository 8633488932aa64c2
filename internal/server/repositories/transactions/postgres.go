package transactions

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (id, from_user_id, to_user_id, swap_id, amount, kind, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
		`
	err := r.db.QueryRowContext(ctx, query,
		tx.ID, nullable(tx.FromUserID), tx.ToUserID, nullable(tx.SwapID),
		tx.Amount, tx.Kind, tx.Description).
		Scan(&tx.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tx, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Transaction, error) {
	query := `
		SELECT id, from_user_id, to_user_id, swap_id, amount, kind, description, created_at
		FROM transactions
		WHERE to_user_id = $1 OR from_user_id = $1
		ORDER BY created_at DESC
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		t := &models.Transaction{}
		var from, swap sql.NullString
		if err := rows.Scan(&t.ID, &from, &t.ToUserID, &swap, &t.Amount, &t.Kind,
			&t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		t.FromUserID = from.String
		t.SwapID = swap.String
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// nullable maps an empty id to SQL NULL for the system-originated rows.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
