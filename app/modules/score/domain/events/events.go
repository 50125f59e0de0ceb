package scoreevents

import (
	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	scoretypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/domain/types"
)

// ScoresProcessedV1 is published after a finalized round's standings are stored.
const ScoresProcessedV1 = "score.processed.v1"

// ScoresProcessedPayloadV1 carries the computed standings.
type ScoresProcessedPayloadV1 struct {
	RoundID   roundtypes.RoundID    `json:"round_id"`
	Standings []scoretypes.Standing `json:"standings"`
}
