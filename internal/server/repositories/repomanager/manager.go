// Package repomanager binds repositories to a database handle and owns the
// schema migration step run at startup.
package repomanager

import (
	"context"
	"database/sql"

	"linkboard/internal/dbx"
	"linkboard/internal/server/repositories/links"
	"linkboard/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so the same
// repository code runs against the pool or inside a transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Links(db dbx.DBTX) links.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
