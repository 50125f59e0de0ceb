package roundservice

import (
	"context"
	"time"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	roundutil "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/utils"
)

// ScoreProcessor computes final standings for a round. It is called exactly
// once per successful finalization, while the round row is locked.
type ScoreProcessor interface {
	ProcessRoundScores(ctx context.Context, roundID roundtypes.RoundID, scores []roundtypes.Score) error
}

// StartScheduler arranges for StartRound to run when a round is due.
type StartScheduler interface {
	ScheduleRoundStart(ctx context.Context, roundID roundtypes.RoundID, startAt time.Time) error
	CancelRoundJobs(ctx context.Context, roundID roundtypes.RoundID) error
}

// StartTimeParser turns a round's date and time strings into an instant.
type StartTimeParser interface {
	ParseStartTime(date, timeOfDay string, loc *time.Location, clock roundutil.Clock) (time.Time, error)
}
