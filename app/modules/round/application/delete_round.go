package roundservice

import (
	"context"
	"errors"
	"fmt"

	roundevents "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/events"
	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	rounddb "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/Black-And-White-Club/frolf-rounds/pkg/results"
	"github.com/uptrace/bun"
)

// DeleteRound removes a round. Only its creator may delete it.
func (s *RoundService) DeleteRound(ctx context.Context, roundID roundtypes.RoundID, requesterID roundtypes.MemberID) (DeleteResult, error) {
	result, err := withTelemetry(s, ctx, "DeleteRound", roundID.String(), func(ctx context.Context) (DeleteResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (DeleteResult, error) {
			round, err := s.repo.GetRoundForUpdate(ctx, db, roundID)
			if err != nil {
				if errors.Is(err, rounddb.ErrNotFound) {
					return results.FailureResult[bool, error](ErrRoundNotFound), nil
				}
				return DeleteResult{}, fmt.Errorf("failed to get round: %w", err)
			}

			if round.CreatorID != requesterID {
				return results.FailureResult[bool, error](ErrNotRoundCreator), nil
			}

			if err := s.repo.DeleteRound(ctx, db, roundID); err != nil {
				return DeleteResult{}, fmt.Errorf("failed to delete round: %w", err)
			}

			return results.SuccessResult[bool, error](true), nil
		})
	})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	if s.scheduler != nil {
		if err := s.scheduler.CancelRoundJobs(ctx, roundID); err != nil {
			s.logger.ErrorContext(ctx, "Failed to cancel scheduled round jobs",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", int64(roundID)),
				attr.Error(err),
			)
		}
	}

	s.publish(ctx, roundevents.RoundDeletedV1, roundevents.RoundDeletedPayloadV1{
		RoundID:     roundID,
		RequestedBy: requesterID,
	})

	return result, nil
}
