package round

import (
	"context"
	"fmt"
	"sync"

	roundservice "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/application"
	roundadapters "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/adapters"
	roundhandlers "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/handlers"
	roundqueue "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/queue"
	rounddb "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/repositories"
	scoreservice "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/application"
	"github.com/Black-And-White-Club/frolf-rounds/config"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the round module.
type Module struct {
	RoundService  roundservice.Service
	QueueService  roundqueue.QueueService
	observability observability.Observability
}

// NewRoundModule builds the round service, the optional River scheduler and
// the /rounds routes.
func NewRoundModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	publisher message.Publisher,
	scores scoreservice.Service,
	tags roundadapters.TagSource,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	metrics := obs.Registry.Metrics
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "round.NewRoundModule called")

	loc, err := cfg.Rounds.Location()
	if err != nil {
		return nil, err
	}

	service := roundservice.NewRoundService(
		rounddb.NewRepository(db),
		logger,
		metrics,
		tracer,
		db,
		publisher,
		scores,
		roundservice.WithLocation(loc),
	)

	module := &Module{
		RoundService:  service,
		observability: obs,
	}

	if cfg.Queue.Enabled {
		queue, err := roundqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, metrics, service)
		if err != nil {
			return nil, fmt.Errorf("failed to create round queue service: %w", err)
		}
		service.SetStartScheduler(queue)
		module.QueueService = queue
	}

	if httpRouter != nil {
		var lookup roundhandlers.TagLookup
		if tags != nil {
			lookup = roundadapters.NewUserTagLookup(tags)
		}
		var jobs roundhandlers.JobLister
		if module.QueueService != nil {
			jobs = module.QueueService
		}
		handlers := roundhandlers.NewHandlers(service, scores, lookup, jobs, logger)
		httpRouter.Route("/rounds", handlers.Routes)
	}

	return module, nil
}

// Run starts the queue workers, if any, and blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting round module")

	if wg != nil {
		defer wg.Done()
	}

	if m.QueueService != nil {
		// Cancelling the start context would hard-stop River; Close stops it gracefully.
		if err := m.QueueService.Start(context.WithoutCancel(ctx)); err != nil {
			logger.ErrorContext(ctx, "Failed to start round queue", attr.Error(err))
		}
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Round module goroutine stopped")
}

// Close stops the queue workers. Run returns once its context is cancelled.
func (m *Module) Close(ctx context.Context) error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping round module")

	if m.QueueService != nil {
		if err := m.QueueService.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop round queue: %w", err)
		}
	}

	logger.Info("Round module stopped")
	return nil
}
