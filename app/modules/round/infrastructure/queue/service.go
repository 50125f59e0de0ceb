package roundqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
)

const metricsService = "river"

// minScheduleLead is the shortest delay a start job may be scheduled with.
const minScheduleLead = 5 * time.Second

// ErrStartTooSoon is returned when a start is scheduled less than minScheduleLead ahead.
var ErrStartTooSoon = errors.New("start time must be at least 5 seconds in the future")

// Metrics interface (satisfied by metrics.OperationMetrics)
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// QueueService interface defines the contract for job scheduling operations
type QueueService interface {
	// ScheduleRoundStart schedules a round start job to be executed at the specified time
	ScheduleRoundStart(ctx context.Context, roundID roundtypes.RoundID, startAt time.Time) error
	// CancelRoundJobs cancels all pending jobs for a specific round
	CancelRoundJobs(ctx context.Context, roundID roundtypes.RoundID) error
	// GetScheduledJobs lists the start jobs queued for a round, oldest first
	GetScheduledJobs(ctx context.Context, roundID roundtypes.RoundID) ([]JobInfo, error)
	// HealthCheck verifies the queue service is healthy
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service schedules round jobs using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics Metrics
	now     func() time.Time
}

// NewService connects to Postgres with pgx, applies River's own migrations and
// builds a client with the round start worker registered.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, metrics Metrics, starter RoundStarter) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_round_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", metricsService)

	ctxLogger.Info("Initializing round queue service")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		ctxLogger.Error("Failed to parse DSN for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		ctxLogger.Error("Failed to create pgx pool for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to run River migrations", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, err
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRoundStartWorker(ctxLogger, starter))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 50},
			QueueName:          {MaxWorkers: 25},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", metricsService)
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	service := &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: metrics,
		now:     time.Now,
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", metricsService)
	metrics.RecordOperationDuration(ctx, "initialize_service", metricsService, time.Since(start))

	ctxLogger.Info("Round queue service initialized successfully")
	return service, nil
}

// Migrate brings River's job tables up to date.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}
	return nil
}

// Start starts the River queue service
func (s *Service) Start(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "start_service", metricsService)

	s.logger.Info("Starting round queue service")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", metricsService)
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", metricsService)
	s.metrics.RecordOperationDuration(ctx, "start_service", metricsService, time.Since(start))

	s.logger.Info("Round queue service started successfully")
	return nil
}

// Stop waits for running jobs and closes the pgx pool.
func (s *Service) Stop(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "stop_service", metricsService)

	s.logger.Info("Stopping round queue service")

	err := s.client.Stop(ctx)
	s.pool.Close()
	if err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", metricsService)
		return fmt.Errorf("failed to stop River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "stop_service", metricsService)
	s.metrics.RecordOperationDuration(ctx, "stop_service", metricsService, time.Since(start))

	s.logger.Info("Round queue service stopped successfully")
	return nil
}

// ScheduleRoundStart schedules a round start job to be executed at the specified time
func (s *Service) ScheduleRoundStart(ctx context.Context, roundID roundtypes.RoundID, startAt time.Time) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_round_start", metricsService)

	ctxLogger := s.logger.With(
		attr.RoundID("round_id", int64(roundID)),
		attr.Time("start_at", startAt),
		attr.String("operation", "schedule_round_start"),
	)

	now := s.now()
	if startAt.Before(now.Add(minScheduleLead)) {
		ctxLogger.Warn("Round start time is too close to current time",
			attr.Time("current_time", now),
			attr.Duration("buffer", startAt.Sub(now)))
		s.metrics.RecordOperationFailure(ctx, "schedule_round_start", metricsService)
		return ErrStartTooSoon
	}

	jobResult, err := s.client.Insert(ctx, RoundStartJob{RoundID: roundID}, &river.InsertOpts{
		Queue:       QueueName,
		ScheduledAt: startAt,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		ctxLogger.Error("Failed to schedule round start job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "schedule_round_start", metricsService)
		return fmt.Errorf("failed to schedule round start job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_round_start", metricsService)
	s.metrics.RecordOperationDuration(ctx, "schedule_round_start", metricsService, time.Since(start))

	ctxLogger.Info("Round start job scheduled successfully",
		attr.Duration("delay", startAt.Sub(now)),
		attr.Int64("job_id", jobResult.Job.ID))
	return nil
}

type riverJobRow struct {
	ID          int64          `bun:"id"`
	Kind        string         `bun:"kind"`
	State       string         `bun:"state"`
	Args        map[string]any `bun:"args,type:jsonb"`
	ScheduledAt *time.Time     `bun:"scheduled_at"`
	CreatedAt   time.Time      `bun:"created_at"`
	Attempt     int16          `bun:"attempt"`
	MaxAttempts int16          `bun:"max_attempts"`
}

// CancelRoundJobs cancels every pending job for a round. Individual cancel
// failures are logged and skipped.
func (s *Service) CancelRoundJobs(ctx context.Context, roundID roundtypes.RoundID) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "cancel_round_jobs", metricsService)

	ctxLogger := s.logger.With(
		attr.RoundID("round_id", int64(roundID)),
		attr.String("operation", "cancel_round_jobs"),
	)

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "args", "scheduled_at", "created_at", "attempt", "max_attempts").
		Where("kind = ?", roundStartKind).
		Where("state IN (?, ?, ?)", "available", "scheduled", "retryable").
		Where("args->>'round_id' = ?", roundID.String()).
		Scan(ctx, &jobs)
	if err != nil {
		ctxLogger.Error("Failed to query jobs for cancellation", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "cancel_round_jobs", metricsService)
		return fmt.Errorf("failed to query jobs for cancellation: %w", err)
	}

	cancelledCount := 0
	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			ctxLogger.Warn("Failed to cancel job",
				attr.Int64("job_id", job.ID),
				attr.String("job_kind", job.Kind),
				attr.Error(err))
			continue
		}
		cancelledCount++
	}

	if cancelledCount == len(jobs) {
		s.metrics.RecordOperationSuccess(ctx, "cancel_round_jobs", metricsService)
	} else {
		s.metrics.RecordOperationFailure(ctx, "cancel_round_jobs", metricsService)
	}
	s.metrics.RecordOperationDuration(ctx, "cancel_round_jobs", metricsService, time.Since(start))

	ctxLogger.Info("Jobs cancellation completed",
		attr.Int("total_found", len(jobs)),
		attr.Int("cancelled_count", cancelledCount))

	return nil
}

// GetScheduledJobs lists the start jobs queued for a round in schedule order.
func (s *Service) GetScheduledJobs(ctx context.Context, roundID roundtypes.RoundID) ([]JobInfo, error) {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "get_scheduled_jobs", metricsService)

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "args", "scheduled_at", "created_at", "attempt", "max_attempts").
		Where("kind = ?", roundStartKind).
		Where("args->>'round_id' = ?", roundID.String()).
		Order("scheduled_at ASC NULLS LAST", "created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		s.logger.Error("Failed to query scheduled jobs", attr.RoundID("round_id", int64(roundID)), attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "get_scheduled_jobs", metricsService)
		return nil, fmt.Errorf("failed to query scheduled jobs: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "get_scheduled_jobs", metricsService)
	s.metrics.RecordOperationDuration(ctx, "get_scheduled_jobs", metricsService, time.Since(start))

	return toJobInfos(roundID, jobs), nil
}

func toJobInfos(roundID roundtypes.RoundID, jobs []riverJobRow) []JobInfo {
	out := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		out[i] = JobInfo{
			ID:          job.ID,
			Kind:        job.Kind,
			RoundID:     roundID.String(),
			State:       job.State,
			ScheduledAt: scheduledAt,
			CreatedAt:   job.CreatedAt.Format(time.RFC3339),
			Attempt:     int(job.Attempt),
			MaxAttempts: int(job.MaxAttempts),
		}
	}
	return out
}

// HealthCheck verifies the queue service is healthy
func (s *Service) HealthCheck(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "health_check", metricsService)

	if s.client == nil {
		s.metrics.RecordOperationFailure(ctx, "health_check", metricsService)
		return errors.New("river client is nil")
	}

	if err := s.pool.Ping(ctx); err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "health_check", metricsService)
		return fmt.Errorf("queue service health check failed: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "health_check", metricsService)
	return nil
}
