package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/migrations"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/skills"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/swaps"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/transactions"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs the PostgreSQL repository manager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Profiles returns a profiles.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewPostgresRepository(db)
}

// Skills returns a skills.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Skills(db dbx.DBTX) skills.Repository {
	return skills.NewPostgresRepository(db)
}

// Swaps returns a swaps.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Swaps(db dbx.DBTX) swaps.Repository {
	return swaps.NewPostgresRepository(db)
}

// Transactions returns a transactions.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewPostgresRepository(db)
}

// RefreshTokens returns a refreshtokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// RunMigrations applies the embedded goose migrations against db.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
