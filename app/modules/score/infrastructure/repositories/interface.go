package scoredb

import (
	"context"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	"github.com/uptrace/bun"
)

// Repository persists processed round standings.
type Repository interface {
	// UpsertRoundScores inserts or replaces the standings for a round.
	UpsertRoundScores(ctx context.Context, db bun.IDB, scores *RoundScores) error
	GetRoundScores(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*RoundScores, error)
}
