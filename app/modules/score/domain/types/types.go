package scoretypes

import (
	"time"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
)

// Standing is one member's final placement in a round.
type Standing struct {
	MemberID  roundtypes.MemberID `json:"member_id"`
	Score     int                 `json:"score"`
	Placement int                 `json:"placement"`
	TagNumber *int                `json:"tag_number,omitempty"`
}

// RoundStandings is the processed result of a finalized round.
type RoundStandings struct {
	RoundID     roundtypes.RoundID `json:"round_id"`
	Standings   []Standing         `json:"standings"`
	ProcessedAt time.Time          `json:"processed_at"`
}
