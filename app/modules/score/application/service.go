package scoreservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	scoretypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/domain/types"
	scoredb "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/metrics"
	"github.com/Black-And-White-Club/frolf-rounds/pkg/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ScoreService"

// StandingsResult is the outcome of a standings lookup.
type StandingsResult = results.OperationResult[*scoretypes.RoundStandings, error]

// Service computes and serves round standings.
type Service interface {
	ProcessRoundScores(ctx context.Context, roundID roundtypes.RoundID, scores []roundtypes.Score) error
	GetRoundStandings(ctx context.Context, roundID roundtypes.RoundID) (StandingsResult, error)
}

// ScoreService implements the Service interface.
type ScoreService struct {
	repo      scoredb.Repository
	logger    *slog.Logger
	metrics   metrics.OperationMetrics
	tracer    trace.Tracer
	db        bun.IDB
	publisher message.Publisher
	now       func() time.Time
}

var _ Service = (*ScoreService)(nil)

// NewScoreService creates a new ScoreService.
func NewScoreService(
	repo scoredb.Repository,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	publisher message.Publisher,
) *ScoreService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ScoreService{
		repo:      repo,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
	if db != nil {
		s.db = db
	}
	return s
}

// observe wraps an operation with a span, metrics and outcome logging.
func (s *ScoreService) observe(ctx context.Context, operationName string, roundID roundtypes.RoundID, op func(ctx context.Context) error) (err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.Int64("round_id", int64(roundID)),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}
	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID("round_id", int64(roundID)),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
		}
	}()

	if err = op(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.RoundID("round_id", int64(roundID)),
			attr.Error(err),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(err)
		return fmt.Errorf("%s: %w", operationName, err)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}
	return nil
}
