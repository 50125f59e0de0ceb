package roundservice

import (
	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
)

// State guards. Each returns the domain failure for the first violated rule, or nil.
//
//	UPCOMING --start--> IN_PROGRESS --finalize--> FINALIZED
//
// Joins need UPCOMING, scores need IN_PROGRESS, and finalize only checks the
// finalized flag.

func canJoin(round *roundtypes.Round, memberID roundtypes.MemberID) error {
	if !round.IsUpcoming() {
		return ErrJoinRequiresUpcoming
	}
	if round.FindParticipant(memberID) >= 0 {
		return ErrParticipantAlreadyJoined
	}
	return nil
}

func canScore(round *roundtypes.Round, memberID roundtypes.MemberID) error {
	if !round.IsInProgress() {
		return ErrScoreRequiresInProgress
	}
	if round.HasScore(memberID) {
		return ErrScoreAlreadySubmitted
	}
	return nil
}

func canStart(round *roundtypes.Round) error {
	if round.Finalized {
		return ErrRoundAlreadyFinalized
	}
	if !round.IsUpcoming() {
		return ErrStartRequiresUpcoming
	}
	return nil
}

func canFinalize(round *roundtypes.Round) error {
	if round.Finalized {
		return ErrRoundAlreadyFinalized
	}
	return nil
}
