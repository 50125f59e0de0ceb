package roundservice

import (
	"context"
	"errors"
	"fmt"

	roundevents "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/events"
	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	rounddb "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// JoinRound enrolls a member in an UPCOMING round.
func (s *RoundService) JoinRound(ctx context.Context, input roundtypes.JoinRoundInput) (RoundResult, error) {
	result, err := withTelemetry(s, ctx, "JoinRound", input.RoundID.String(), func(ctx context.Context) (RoundResult, error) {
		if input.MemberID == "" {
			return roundFailure(ErrMemberIDRequired)
		}
		if !input.Response.Valid() {
			return roundFailure(ErrInvalidResponse)
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RoundResult, error) {
			return s.joinRoundLogic(ctx, db, input)
		})
	})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	s.publish(ctx, roundevents.RoundParticipantJoinedV1, roundevents.ParticipantJoinedPayloadV1{
		RoundID: input.RoundID,
		Participant: roundtypes.Participant{
			MemberID:  input.MemberID,
			Response:  input.Response,
			TagNumber: input.TagNumber,
		},
	})

	return result, nil
}

func (s *RoundService) joinRoundLogic(ctx context.Context, db bun.IDB, input roundtypes.JoinRoundInput) (RoundResult, error) {
	round, err := s.repo.GetRoundForUpdate(ctx, db, input.RoundID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return roundFailure(ErrRoundNotFound)
		}
		return RoundResult{}, fmt.Errorf("failed to get round: %w", err)
	}

	if err := canJoin(round.ToDomain(), input.MemberID); err != nil {
		return roundFailure(err)
	}

	participants := append(round.Participants, roundtypes.Participant{
		MemberID:  input.MemberID,
		Response:  input.Response,
		TagNumber: input.TagNumber,
	})

	if err := s.repo.UpdateParticipants(ctx, db, input.RoundID, participants); err != nil {
		return RoundResult{}, fmt.Errorf("failed to update participants: %w", err)
	}

	round.Participants = participants
	return roundSuccess(round.ToDomain())
}
