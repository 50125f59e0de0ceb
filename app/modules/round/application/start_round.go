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

// StartRound moves an UPCOMING round to IN_PROGRESS. It is called by the
// scheduled start job as well as manually.
func (s *RoundService) StartRound(ctx context.Context, roundID roundtypes.RoundID) (RoundResult, error) {
	result, err := withTelemetry(s, ctx, "StartRound", roundID.String(), func(ctx context.Context) (RoundResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RoundResult, error) {
			round, err := s.repo.GetRoundForUpdate(ctx, db, roundID)
			if err != nil {
				if errors.Is(err, rounddb.ErrNotFound) {
					return roundFailure(ErrRoundNotFound)
				}
				return RoundResult{}, fmt.Errorf("failed to get round: %w", err)
			}

			if err := canStart(round.ToDomain()); err != nil {
				return roundFailure(err)
			}

			if err := s.repo.UpdateState(ctx, db, roundID, roundtypes.RoundStateInProgress, false); err != nil {
				return RoundResult{}, fmt.Errorf("failed to update round state: %w", err)
			}

			round.State = roundtypes.RoundStateInProgress
			return roundSuccess(round.ToDomain())
		})
	})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	round := *result.Success
	s.publish(ctx, roundevents.RoundStartedV1, roundevents.RoundStartedPayloadV1{
		RoundID:      round.ID,
		Title:        round.Title,
		Participants: round.Participants,
	})

	return result, nil
}
