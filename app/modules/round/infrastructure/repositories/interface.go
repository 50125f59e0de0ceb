package rounddb

import (
	"context"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	"github.com/uptrace/bun"
)

// Repository defines the contract for round persistence. Every method takes a
// bun.IDB so it can join the caller's transaction; nil uses the default handle.
type Repository interface {
	// GetRound retrieves a round by ID.
	GetRound(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*Round, error)

	// GetRoundForUpdate retrieves a round and locks its row until the transaction ends.
	GetRoundForUpdate(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*Round, error)

	// CreateRound inserts a round and fills in its ID and timestamps.
	CreateRound(ctx context.Context, db bun.IDB, round *Round) error

	// UpdateParticipants replaces the participant collection.
	UpdateParticipants(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, participants []roundtypes.Participant) error

	// UpdateScores replaces the score collection.
	UpdateScores(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, scores []roundtypes.Score) error

	// UpdateState writes state and finalized together.
	UpdateState(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, state roundtypes.RoundState, finalized bool) error

	// UpdateRound writes the descriptive fields of a round.
	UpdateRound(ctx context.Context, db bun.IDB, round *Round) error

	// DeleteRound removes a round.
	DeleteRound(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) error

	// ListRounds returns a page of rounds in ID order.
	ListRounds(ctx context.Context, db bun.IDB, limit, offset int) ([]*Round, error)
}
