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

// UpdateParticipantResponse changes an existing participant's RSVP. It is
// allowed in any state.
func (s *RoundService) UpdateParticipantResponse(ctx context.Context, input roundtypes.UpdateResponseInput) (RoundResult, error) {
	var updated roundtypes.Participant

	result, err := withTelemetry(s, ctx, "UpdateParticipantResponse", input.RoundID.String(), func(ctx context.Context) (RoundResult, error) {
		if !input.Response.Valid() {
			return roundFailure(ErrInvalidResponse)
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RoundResult, error) {
			round, err := s.repo.GetRoundForUpdate(ctx, db, input.RoundID)
			if err != nil {
				if errors.Is(err, rounddb.ErrNotFound) {
					return roundFailure(ErrRoundNotFound)
				}
				return RoundResult{}, fmt.Errorf("failed to get round: %w", err)
			}

			idx := round.ToDomain().FindParticipant(input.MemberID)
			if idx < 0 {
				return roundFailure(ErrParticipantNotFound)
			}

			participants := make([]roundtypes.Participant, len(round.Participants))
			copy(participants, round.Participants)
			participants[idx].Response = input.Response

			if err := s.repo.UpdateParticipants(ctx, db, input.RoundID, participants); err != nil {
				return RoundResult{}, fmt.Errorf("failed to update participants: %w", err)
			}

			updated = participants[idx]
			round.Participants = participants
			return roundSuccess(round.ToDomain())
		})
	})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	s.publish(ctx, roundevents.RoundParticipantUpdatedV1, roundevents.ParticipantUpdatedPayloadV1{
		RoundID:     input.RoundID,
		Participant: updated,
	})

	return result, nil
}
