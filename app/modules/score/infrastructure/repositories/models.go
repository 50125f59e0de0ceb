package scoredb

import (
	"time"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	scoretypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/domain/types"
	"github.com/uptrace/bun"
)

// RoundScores stores the standings of one finalized round.
type RoundScores struct {
	bun.BaseModel `bun:"table:round_scores,alias:rs"`

	RoundID     roundtypes.RoundID    `bun:"round_id,pk"`
	Standings   []scoretypes.Standing `bun:"standings,type:jsonb,notnull"`
	ProcessedAt time.Time             `bun:"processed_at,notnull"`
}

func (r *RoundScores) ToDomain() *scoretypes.RoundStandings {
	standings := make([]scoretypes.Standing, len(r.Standings))
	copy(standings, r.Standings)
	return &scoretypes.RoundStandings{
		RoundID:     r.RoundID,
		Standings:   standings,
		ProcessedAt: r.ProcessedAt,
	}
}
