package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	scoretypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/domain/types"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a round has no stored standings.
var ErrNotFound = errors.New("round scores not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) UpsertRoundScores(ctx context.Context, db bun.IDB, scores *RoundScores) error {
	db = r.resolveDB(db)
	if scores.Standings == nil {
		scores.Standings = []scoretypes.Standing{}
	}

	_, err := db.NewInsert().
		Model(scores).
		On("CONFLICT (round_id) DO UPDATE").
		Set("standings = EXCLUDED.standings").
		Set("processed_at = EXCLUDED.processed_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert round scores: %w", err)
	}
	return nil
}

func (r *Impl) GetRoundScores(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*RoundScores, error) {
	db = r.resolveDB(db)
	scores := new(RoundScores)
	err := db.NewSelect().
		Model(scores).
		Where("rs.round_id = ?", roundID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get round scores: %w", err)
	}
	return scores, nil
}
