package rounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a round does not exist.
var ErrNotFound = errors.New("round not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new round repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetRound retrieves a round by ID.
func (r *Impl) GetRound(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*Round, error) {
	db = r.resolveDB(db)
	round := new(Round)
	err := db.NewSelect().
		Model(round).
		Where("r.id = ?", roundID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return round, nil
}

// GetRoundForUpdate retrieves a round with SELECT ... FOR UPDATE. Concurrent
// mutations of the same round queue behind the lock until the holder commits.
func (r *Impl) GetRoundForUpdate(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*Round, error) {
	db = r.resolveDB(db)
	round := new(Round)
	err := db.NewSelect().
		Model(round).
		Where("r.id = ?", roundID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock round: %w", err)
	}
	return round, nil
}

// CreateRound inserts a round and fills in its ID and timestamps.
func (r *Impl) CreateRound(ctx context.Context, db bun.IDB, round *Round) error {
	db = r.resolveDB(db)
	if round.Participants == nil {
		round.Participants = []roundtypes.Participant{}
	}
	if round.Scores == nil {
		round.Scores = []roundtypes.Score{}
	}

	_, err := db.NewInsert().
		Model(round).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create round: %w", err)
	}
	return nil
}

// UpdateParticipants replaces the participant collection.
func (r *Impl) UpdateParticipants(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, participants []roundtypes.Participant) error {
	if participants == nil {
		participants = []roundtypes.Participant{}
	}
	return r.updateColumns(ctx, db, &Round{ID: roundID, Participants: participants}, "update participants", "participants")
}

// UpdateScores replaces the score collection.
func (r *Impl) UpdateScores(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, scores []roundtypes.Score) error {
	if scores == nil {
		scores = []roundtypes.Score{}
	}
	return r.updateColumns(ctx, db, &Round{ID: roundID, Scores: scores}, "update scores", "scores")
}

// UpdateState writes state and finalized in one statement.
func (r *Impl) UpdateState(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, state roundtypes.RoundState, finalized bool) error {
	return r.updateColumns(ctx, db, &Round{ID: roundID, State: state, Finalized: finalized}, "update round state", "state", "finalized")
}

// UpdateRound writes the descriptive fields of a round.
func (r *Impl) UpdateRound(ctx context.Context, db bun.IDB, round *Round) error {
	return r.updateColumns(ctx, db, round, "update round", "title", "location", "event_type", "date", "time")
}

func (r *Impl) updateColumns(ctx context.Context, db bun.IDB, round *Round, op string, columns ...string) error {
	db = r.resolveDB(db)
	round.UpdatedAt = time.Now().UTC()

	result, err := db.NewUpdate().
		Model(round).
		Column(append(columns, "updated_at")...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRound removes a round.
func (r *Impl) DeleteRound(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Round)(nil)).
		Where("id = ?", roundID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete round: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRounds returns a page of rounds in ID order.
func (r *Impl) ListRounds(ctx context.Context, db bun.IDB, limit, offset int) ([]*Round, error) {
	db = r.resolveDB(db)
	var rounds []*Round
	err := db.NewSelect().
		Model(&rounds).
		Order("r.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	return rounds, nil
}
