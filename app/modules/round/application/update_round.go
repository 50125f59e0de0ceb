package roundservice

import (
	"context"
	"errors"
	"fmt"

	roundevents "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/events"
	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	rounddb "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/uptrace/bun"
)

// EditRound applies a partial update to a round's descriptive fields. State,
// creator and collections cannot be edited. A changed date or time
// reschedules the automatic start.
func (s *RoundService) EditRound(ctx context.Context, roundID roundtypes.RoundID, input roundtypes.EditRoundInput) (RoundResult, error) {
	var rescheduled bool

	result, err := withTelemetry(s, ctx, "EditRound", roundID.String(), func(ctx context.Context) (RoundResult, error) {
		if problems := s.validator.ValidateEditInput(input); len(problems) > 0 {
			return roundFailure(NewValidationError(problems))
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RoundResult, error) {
			round, err := s.repo.GetRoundForUpdate(ctx, db, roundID)
			if err != nil {
				if errors.Is(err, rounddb.ErrNotFound) {
					return roundFailure(ErrRoundNotFound)
				}
				return RoundResult{}, fmt.Errorf("failed to get round: %w", err)
			}

			rescheduled = applyEdit(round, input)

			if err := s.repo.UpdateRound(ctx, db, round); err != nil {
				return RoundResult{}, fmt.Errorf("failed to update round: %w", err)
			}

			return roundSuccess(round.ToDomain())
		})
	})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	round := *result.Success
	s.publish(ctx, roundevents.RoundUpdatedV1, roundevents.RoundUpdatedPayloadV1{Round: *round})

	if rescheduled && s.scheduler != nil {
		if err := s.scheduler.CancelRoundJobs(ctx, roundID); err != nil {
			s.logger.ErrorContext(ctx, "Failed to cancel scheduled round jobs",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", int64(roundID)),
				attr.Error(err),
			)
		}
		s.scheduleStart(ctx, round)
	}

	return result, nil
}

// applyEdit merges the provided fields and reports whether the start moved.
func applyEdit(round *rounddb.Round, input roundtypes.EditRoundInput) bool {
	moved := false
	if input.Title != nil {
		round.Title = *input.Title
	}
	if input.Location != nil {
		round.Location = *input.Location
	}
	if input.EventType != nil {
		eventType := *input.EventType
		round.EventType = &eventType
	}
	if input.Date != nil && *input.Date != round.Date {
		round.Date = *input.Date
		moved = true
	}
	if input.Time != nil && *input.Time != round.Time {
		round.Time = *input.Time
		moved = true
	}
	return moved
}
