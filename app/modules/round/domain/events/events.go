package roundevents

import (
	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
)

// Topics published by the round service.
const (
	RoundCreatedV1            = "round.created.v1"
	RoundUpdatedV1            = "round.updated.v1"
	RoundDeletedV1            = "round.deleted.v1"
	RoundStartedV1            = "round.started.v1"
	RoundFinalizedV1          = "round.finalized.v1"
	RoundParticipantJoinedV1  = "round.participant.joined.v1"
	RoundParticipantUpdatedV1 = "round.participant.updated.v1"
	RoundScoreSubmittedV1     = "round.score.submitted.v1"
)

// RoundCreatedPayloadV1 is published after a round is stored.
type RoundCreatedPayloadV1 struct {
	Round roundtypes.Round `json:"round"`
}

// RoundUpdatedPayloadV1 is published after a round's descriptive fields change.
type RoundUpdatedPayloadV1 struct {
	Round roundtypes.Round `json:"round"`
}

// RoundDeletedPayloadV1 is published after a round is removed.
type RoundDeletedPayloadV1 struct {
	RoundID     roundtypes.RoundID  `json:"round_id"`
	RequestedBy roundtypes.MemberID `json:"requested_by"`
}

// RoundStartedPayloadV1 is published when a round moves to IN_PROGRESS.
type RoundStartedPayloadV1 struct {
	RoundID      roundtypes.RoundID       `json:"round_id"`
	Title        string                   `json:"title"`
	Participants []roundtypes.Participant `json:"participants"`
}

// RoundFinalizedPayloadV1 is published once a round's scores are authoritative.
type RoundFinalizedPayloadV1 struct {
	RoundID roundtypes.RoundID `json:"round_id"`
	Scores  []roundtypes.Score `json:"scores"`
}

// ParticipantJoinedPayloadV1 is published when a member joins a round.
type ParticipantJoinedPayloadV1 struct {
	RoundID     roundtypes.RoundID     `json:"round_id"`
	Participant roundtypes.Participant `json:"participant"`
}

// ParticipantUpdatedPayloadV1 is published when a participant changes their response.
type ParticipantUpdatedPayloadV1 struct {
	RoundID     roundtypes.RoundID     `json:"round_id"`
	Participant roundtypes.Participant `json:"participant"`
}

// ScoreSubmittedPayloadV1 is published when a member's score is recorded.
type ScoreSubmittedPayloadV1 struct {
	RoundID roundtypes.RoundID `json:"round_id"`
	Score   roundtypes.Score   `json:"score"`
}
