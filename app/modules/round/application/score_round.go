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

// SubmitScore records a member's score for an IN_PROGRESS round. Each member
// may score once.
func (s *RoundService) SubmitScore(ctx context.Context, input roundtypes.SubmitScoreInput) (RoundResult, error) {
	result, err := withTelemetry(s, ctx, "SubmitScore", input.RoundID.String(), func(ctx context.Context) (RoundResult, error) {
		if input.MemberID == "" {
			return roundFailure(ErrMemberIDRequired)
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RoundResult, error) {
			return s.submitScoreLogic(ctx, db, input)
		})
	})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	s.publish(ctx, roundevents.RoundScoreSubmittedV1, roundevents.ScoreSubmittedPayloadV1{
		RoundID: input.RoundID,
		Score: roundtypes.Score{
			MemberID:  input.MemberID,
			Score:     input.Score,
			TagNumber: input.TagNumber,
		},
	})

	return result, nil
}

func (s *RoundService) submitScoreLogic(ctx context.Context, db bun.IDB, input roundtypes.SubmitScoreInput) (RoundResult, error) {
	round, err := s.repo.GetRoundForUpdate(ctx, db, input.RoundID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return roundFailure(ErrRoundNotFound)
		}
		return RoundResult{}, fmt.Errorf("failed to get round: %w", err)
	}

	if err := canScore(round.ToDomain(), input.MemberID); err != nil {
		return roundFailure(err)
	}

	scores := append(round.Scores, roundtypes.Score{
		MemberID:  input.MemberID,
		Score:     input.Score,
		TagNumber: input.TagNumber,
	})

	if err := s.repo.UpdateScores(ctx, db, input.RoundID, scores); err != nil {
		return RoundResult{}, fmt.Errorf("failed to update scores: %w", err)
	}

	round.Scores = scores
	return roundSuccess(round.ToDomain())
}
