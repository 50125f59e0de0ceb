package roundqueue

import (
	"context"
	"fmt"
	"log/slog"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/Black-And-White-Club/frolf-rounds/pkg/results"
	"github.com/riverqueue/river"
)

// RoundStarter is the part of the round service the start job needs.
type RoundStarter interface {
	StartRound(ctx context.Context, roundID roundtypes.RoundID) (results.OperationResult[*roundtypes.Round, error], error)
}

// RoundStartWorker runs StartRound when a round's start job comes due.
type RoundStartWorker struct {
	river.WorkerDefaults[RoundStartJob]
	logger  *slog.Logger
	starter RoundStarter
}

// NewRoundStartWorker creates a RoundStartWorker.
func NewRoundStartWorker(logger *slog.Logger, starter RoundStarter) *RoundStartWorker {
	return &RoundStartWorker{logger: logger, starter: starter}
}

// Work starts the round. Infrastructure errors are returned so River retries
// the job; a domain failure (round deleted, started by hand, finalized) is
// final and the job completes.
func (w *RoundStartWorker) Work(ctx context.Context, job *river.Job[RoundStartJob]) error {
	ctx = attr.WithCorrelationID(ctx, fmt.Sprintf("river-job-%d", job.ID))

	w.logger.InfoContext(ctx, "Processing round start job",
		attr.ExtractCorrelationID(ctx),
		attr.Int64("job_id", job.ID),
		attr.RoundID("round_id", int64(job.Args.RoundID)),
		attr.Int("attempt", job.Attempt),
	)

	result, err := w.starter.StartRound(ctx, job.Args.RoundID)
	if err != nil {
		w.logger.ErrorContext(ctx, "Round start job failed",
			attr.ExtractCorrelationID(ctx),
			attr.Int64("job_id", job.ID),
			attr.RoundID("round_id", int64(job.Args.RoundID)),
			attr.Error(err),
		)
		return fmt.Errorf("failed to start round %s: %w", job.Args.RoundID, err)
	}

	if result.IsFailure() {
		w.logger.WarnContext(ctx, "Scheduled start skipped",
			attr.ExtractCorrelationID(ctx),
			attr.Int64("job_id", job.ID),
			attr.RoundID("round_id", int64(job.Args.RoundID)),
			attr.Error(*result.Failure),
		)
		return nil
	}

	w.logger.InfoContext(ctx, "Round started by scheduled job",
		attr.ExtractCorrelationID(ctx),
		attr.Int64("job_id", job.ID),
		attr.RoundID("round_id", int64(job.Args.RoundID)),
	)
	return nil
}
