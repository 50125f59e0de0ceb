package roundservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	rounddb "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/repositories"
	roundtime "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/time_utils"
	roundutil "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/utils"
	"github.com/Black-And-White-Club/frolf-rounds/internal/eventbus"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/metrics"
	"github.com/Black-And-White-Club/frolf-rounds/pkg/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "RoundService"

// RoundService implements the Service interface.
type RoundService struct {
	repo           rounddb.Repository
	logger         *slog.Logger
	metrics        metrics.OperationMetrics
	tracer         trace.Tracer
	db             *bun.DB
	publisher      message.Publisher
	scoreProcessor ScoreProcessor
	scheduler      StartScheduler
	validator      roundutil.RoundValidator
	timeParser     StartTimeParser
	clock          roundutil.Clock
	location       *time.Location
}

// Option customises a RoundService.
type Option func(*RoundService)

// WithStartScheduler schedules automatic starts for new rounds.
func WithStartScheduler(scheduler StartScheduler) Option {
	return func(s *RoundService) { s.scheduler = scheduler }
}

// WithClock overrides the clock used to decide whether a start time is in the future.
func WithClock(clock roundutil.Clock) Option {
	return func(s *RoundService) { s.clock = clock }
}

// WithLocation sets the timezone used to interpret round dates and times.
func WithLocation(loc *time.Location) Option {
	return func(s *RoundService) { s.location = loc }
}

// NewRoundService creates a new RoundService.
func NewRoundService(
	repo rounddb.Repository,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	publisher message.Publisher,
	scoreProcessor ScoreProcessor,
	opts ...Option,
) *RoundService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &RoundService{
		repo:           repo,
		logger:         logger,
		metrics:        metrics,
		tracer:         tracer,
		db:             db,
		publisher:      publisher,
		scoreProcessor: scoreProcessor,
		validator:      roundutil.NewRoundValidator(),
		timeParser:     roundtime.NewParser(),
		clock:          roundutil.RealClock{},
		location:       time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetStartScheduler wires the scheduler after construction. The queue's worker
// needs the service, so the two are built in sequence at startup.
func (s *RoundService) SetStartScheduler(scheduler StartScheduler) {
	s.scheduler = scheduler
}

// publish emits an event after the transaction committed. A failed publish is
// logged and does not change the operation's outcome.
func (s *RoundService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := eventbus.Publish(ctx, s.publisher, topic, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

// readDB returns the handle for reads outside a transaction. A nil *bun.DB
// must not leak into a non-nil bun.IDB.
func (s *RoundService) readDB() bun.IDB {
	if s.db == nil {
		return nil
	}
	return s.db
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *RoundService,
	ctx context.Context,
	operationName string,
	roundID string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("round_id", roundID),
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

	s.logger.InfoContext(ctx, "Operation triggered",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operationName),
		attr.String("round_id", roundID),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("round_id", roundID),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("round_id", roundID),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("round_id", roundID),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("round_id", roundID),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *RoundService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

func roundFailure(err error) (RoundResult, error) {
	return results.FailureResult[*roundtypes.Round, error](err), nil
}

func roundSuccess(round *roundtypes.Round) (RoundResult, error) {
	return results.SuccessResult[*roundtypes.Round, error](round), nil
}

var _ Service = (*RoundService)(nil)
