// Package repomanager defines the RepositoryManager abstraction: a factory
// that vends repositories bound to a specific DBTX (plain connection or
// transaction) and runs schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/skillswap/internal/dbx"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/skills"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/swaps"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/transactions"
)

// RepositoryManager hands out repositories bound to the given DBTX. Services
// pass their *sql.DB for standalone reads and the transaction handle inside
// dbx.WithTx for multi-row units of work.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Profiles(db dbx.DBTX) profiles.Repository
	Skills(db dbx.DBTX) skills.Repository
	Swaps(db dbx.DBTX) swaps.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
