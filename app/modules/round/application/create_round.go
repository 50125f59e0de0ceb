package roundservice

import (
	"context"
	"fmt"

	roundevents "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/events"
	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	rounddb "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/uptrace/bun"
)

// CreateRound validates the input and stores a new UPCOMING round with empty collections.
func (s *RoundService) CreateRound(ctx context.Context, input roundtypes.CreateRoundInput) (RoundResult, error) {
	result, err := withTelemetry(s, ctx, "CreateRound", "new", func(ctx context.Context) (RoundResult, error) {
		if problems := s.validator.ValidateRoundInput(input); len(problems) > 0 {
			return roundFailure(NewValidationError(problems))
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RoundResult, error) {
			return s.createRoundLogic(ctx, db, input)
		})
	})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	round := *result.Success
	s.publish(ctx, roundevents.RoundCreatedV1, roundevents.RoundCreatedPayloadV1{Round: *round})
	s.scheduleStart(ctx, round)

	return result, nil
}

func (s *RoundService) createRoundLogic(ctx context.Context, db bun.IDB, input roundtypes.CreateRoundInput) (RoundResult, error) {
	round := &rounddb.Round{
		Title:        input.Title,
		Location:     input.Location,
		EventType:    input.EventType,
		Date:         input.Date,
		Time:         input.Time,
		CreatorID:    input.CreatorID,
		State:        roundtypes.RoundStateUpcoming,
		Finalized:    false,
		Participants: []roundtypes.Participant{},
		Scores:       []roundtypes.Score{},
	}

	if err := s.repo.CreateRound(ctx, db, round); err != nil {
		return RoundResult{}, fmt.Errorf("failed to create round: %w", err)
	}

	return roundSuccess(round.ToDomain())
}

// scheduleStart queues the automatic start of an upcoming round. Rounds whose
// date and time cannot be parsed, or that start in the past, are left for a
// manual start.
func (s *RoundService) scheduleStart(ctx context.Context, round *roundtypes.Round) {
	if s.scheduler == nil || !round.IsUpcoming() {
		return
	}

	startAt, err := s.timeParser.ParseStartTime(round.Date, round.Time, s.location, s.clock)
	if err != nil {
		s.logger.WarnContext(ctx, "Round start time not understood, skipping scheduled start",
			attr.ExtractCorrelationID(ctx),
			attr.RoundID("round_id", int64(round.ID)),
			attr.String("date", round.Date),
			attr.String("time", round.Time),
			attr.Error(err),
		)
		return
	}

	if !startAt.After(s.clock.Now()) {
		s.logger.InfoContext(ctx, "Round start time is not in the future, skipping scheduled start",
			attr.ExtractCorrelationID(ctx),
			attr.RoundID("round_id", int64(round.ID)),
			attr.Time("start_at", startAt),
		)
		return
	}

	if err := s.scheduler.ScheduleRoundStart(ctx, round.ID, startAt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to schedule round start",
			attr.ExtractCorrelationID(ctx),
			attr.RoundID("round_id", int64(round.ID)),
			attr.Error(err),
		)
	}
}
