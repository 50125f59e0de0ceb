package roundmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating rounds table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS rounds (
					id BIGSERIAL PRIMARY KEY,
					title TEXT NOT NULL,
					location TEXT NOT NULL DEFAULT '',
					event_type TEXT,
					date TEXT NOT NULL,
					time TEXT NOT NULL,
					finalized BOOLEAN NOT NULL DEFAULT FALSE,
					creator_id VARCHAR(32) NOT NULL,
					state VARCHAR(16) NOT NULL DEFAULT 'UPCOMING'
						CHECK (state IN ('UPCOMING', 'IN_PROGRESS', 'FINALIZED')),
					participants JSONB NOT NULL DEFAULT '[]'::jsonb,
					scores JSONB NOT NULL DEFAULT '[]'::jsonb,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT rounds_finalized_matches_state CHECK (finalized = (state = 'FINALIZED'))
				);
				CREATE INDEX IF NOT EXISTS idx_rounds_creator_id ON rounds(creator_id);
				CREATE INDEX IF NOT EXISTS idx_rounds_state ON rounds(state);
			`); err != nil {
				return fmt.Errorf("failed to create rounds table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping rounds table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS rounds;`); err != nil {
				return fmt.Errorf("failed to drop rounds table: %w", err)
			}
			return nil
		})
	})
}
