package scoreservice

import (
	"context"
	"errors"
	"fmt"
	"sort"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	scoreevents "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/domain/events"
	scoretypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/domain/types"
	scoredb "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-rounds/internal/eventbus"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/Black-And-White-Club/frolf-rounds/pkg/results"
)

// ProcessRoundScores ranks a finalized round's scores and stores the standings.
// Storing is an upsert, so processing the same round twice is harmless.
func (s *ScoreService) ProcessRoundScores(ctx context.Context, roundID roundtypes.RoundID, scores []roundtypes.Score) error {
	var standings []scoretypes.Standing

	err := s.observe(ctx, "ProcessRoundScores", roundID, func(ctx context.Context) error {
		if len(scores) == 0 {
			s.logger.InfoContext(ctx, "Round finalized without scores",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", int64(roundID)),
			)
		}

		standings = RankScores(scores)

		return s.repo.UpsertRoundScores(ctx, s.db, &scoredb.RoundScores{
			RoundID:     roundID,
			Standings:   standings,
			ProcessedAt: s.now(),
		})
	})
	if err != nil {
		return err
	}

	if s.publisher != nil {
		if err := eventbus.Publish(ctx, s.publisher, scoreevents.ScoresProcessedV1, scoreevents.ScoresProcessedPayloadV1{
			RoundID:   roundID,
			Standings: standings,
		}); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish scores processed event",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", int64(roundID)),
				attr.Error(err),
			)
		}
	}

	return nil
}

// RankScores orders scores lowest first. Equal scores share a placement and
// the next placement skips accordingly (1, 2, 2, 4). Submission order breaks
// display ties.
func RankScores(scores []roundtypes.Score) []scoretypes.Standing {
	sorted := make([]roundtypes.Score, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})

	standings := make([]scoretypes.Standing, len(sorted))
	for i, sc := range sorted {
		placement := i + 1
		if i > 0 && sc.Score == sorted[i-1].Score {
			placement = standings[i-1].Placement
		}
		standings[i] = scoretypes.Standing{
			MemberID:  sc.MemberID,
			Score:     sc.Score,
			Placement: placement,
			TagNumber: sc.TagNumber,
		}
	}
	return standings
}

// GetRoundStandings returns the stored standings for a round.
func (s *ScoreService) GetRoundStandings(ctx context.Context, roundID roundtypes.RoundID) (StandingsResult, error) {
	var result StandingsResult

	err := s.observe(ctx, "GetRoundStandings", roundID, func(ctx context.Context) error {
		stored, err := s.repo.GetRoundScores(ctx, s.db, roundID)
		if err != nil {
			if errors.Is(err, scoredb.ErrNotFound) {
				result = results.FailureResult[*scoretypes.RoundStandings, error](ErrStandingsNotFound)
				return nil
			}
			return fmt.Errorf("failed to load standings: %w", err)
		}
		result = results.SuccessResult[*scoretypes.RoundStandings, error](stored.ToDomain())
		return nil
	})
	if err != nil {
		return StandingsResult{}, err
	}
	return result, nil
}
