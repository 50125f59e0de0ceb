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

// FinalizeAndProcessScores hands the round's scores to the score processor and
// marks the round FINALIZED. The row stays locked across the processor call so
// a concurrent finalize waits and then sees the finalized flag. If processing
// fails nothing is written and the round can be finalized again.
func (s *RoundService) FinalizeAndProcessScores(ctx context.Context, roundID roundtypes.RoundID) (RoundResult, error) {
	result, err := withTelemetry(s, ctx, "FinalizeAndProcessScores", roundID.String(), func(ctx context.Context) (RoundResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RoundResult, error) {
			return s.finalizeLogic(ctx, db, roundID)
		})
	})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	round := *result.Success
	s.publish(ctx, roundevents.RoundFinalizedV1, roundevents.RoundFinalizedPayloadV1{
		RoundID: round.ID,
		Scores:  round.Scores,
	})

	return result, nil
}

func (s *RoundService) finalizeLogic(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (RoundResult, error) {
	round, err := s.repo.GetRoundForUpdate(ctx, db, roundID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return roundFailure(ErrRoundNotFound)
		}
		return RoundResult{}, fmt.Errorf("failed to get round: %w", err)
	}

	if err := canFinalize(round.ToDomain()); err != nil {
		return roundFailure(err)
	}

	if s.scoreProcessor == nil {
		s.logger.ErrorContext(ctx, "Cannot finalize round without a score processor",
			attr.ExtractCorrelationID(ctx),
			attr.RoundID("round_id", int64(roundID)),
		)
		return RoundResult{}, errNoScoreProcessor
	}

	scores := make([]roundtypes.Score, len(round.Scores))
	copy(scores, round.Scores)
	if err := s.scoreProcessor.ProcessRoundScores(ctx, roundID, scores); err != nil {
		return RoundResult{}, fmt.Errorf("failed to process round scores: %w", err)
	}

	if err := s.repo.UpdateState(ctx, db, roundID, roundtypes.RoundStateFinalized, true); err != nil {
		return RoundResult{}, fmt.Errorf("failed to finalize round: %w", err)
	}

	round.State = roundtypes.RoundStateFinalized
	round.Finalized = true
	return roundSuccess(round.ToDomain())
}
