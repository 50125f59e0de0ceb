// Package bundb opens the Postgres connection shared by every module and runs
// the module migrations in dependency order.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	roundmigrations "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/repositories/migrations"
	scoremigrations "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// Open connects to Postgres through pgdriver and verifies the connection.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// ModuleMigrator pairs a module name with its migrator.
type ModuleMigrator struct {
	Name     string
	Migrator *migrate.Migrator
}

// Migrators returns one migrator per module, users first.
func Migrators(db *bun.DB) []ModuleMigrator {
	return []ModuleMigrator{
		{Name: "user", Migrator: migrate.NewMigrator(db, usermigrations.Migrations)},
		{Name: "round", Migrator: migrate.NewMigrator(db, roundmigrations.Migrations)},
		{Name: "score", Migrator: migrate.NewMigrator(db, scoremigrations.Migrations)},
	}
}

// MigrateUp creates the migration tables if needed and applies every pending
// migration.
func MigrateUp(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	for _, m := range Migrators(db) {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init %s migrations: %w", m.Name, err)
		}
		group, err := m.Migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to migrate %s: %w", m.Name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No new migrations", attr.String("module", m.Name))
			continue
		}
		logger.InfoContext(ctx, "Migrated module",
			attr.String("module", m.Name),
			attr.String("group", group.String()),
		)
	}
	return nil
}
