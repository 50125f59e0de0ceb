// Package app wires the modules into one process and serves them over HTTP.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/frolf-rounds/app/modules/round"
	roundhandlers "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/handlers"
	"github.com/Black-And-White-Club/frolf-rounds/app/modules/score"
	"github.com/Black-And-White-Club/frolf-rounds/app/modules/user"
	userhandlers "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/infrastructure/handlers"
	"github.com/Black-And-White-Club/frolf-rounds/config"
	"github.com/Black-And-White-Club/frolf-rounds/internal/db/bundb"
	"github.com/Black-And-White-Club/frolf-rounds/internal/eventbus"
	"github.com/Black-And-White-Club/frolf-rounds/internal/httpserver"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// App holds every long-lived component of the server.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	Publisher     message.Publisher
	Router        chi.Router

	UserModule  *user.Module
	ScoreModule *score.Module
	RoundModule *round.Module
}

// NewApp connects to Postgres and the message broker and builds the modules.
// With migrate set, pending schema migrations run before the modules start.
func NewApp(ctx context.Context, cfg *config.Config, migrate bool) (*App, error) {
	obs := observability.Init(observability.Config{
		ServiceName: "frolf-rounds",
		Environment: cfg.Observability.Environment,
		LogLevel:    cfg.Observability.LogLevel,
	})
	logger := obs.Provider.Logger

	db, err := bundb.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if migrate {
		if err := bundb.MigrateUp(ctx, db, logger); err != nil {
			db.Close()
			return nil, err
		}
	}

	var publisher message.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = eventbus.NewNATSPublisher(eventbus.NATSConfig{
			URL:       cfg.NATS.URL,
			JetStream: cfg.NATS.JetStream,
		}, logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
		}
	} else {
		logger.WarnContext(ctx, "No NATS URL configured, publishing events in-process")
		publisher = eventbus.NewInMemory(logger)
	}

	router := chi.NewRouter()
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", httpserver.CorrelationIDHeader, roundhandlers.UserIDHeader, userhandlers.UserRoleHeader},
			ExposedHeaders: []string{httpserver.CorrelationIDHeader},
			MaxAge:         300,
		}))
	}
	router.Use(httpserver.CorrelationIDMiddleware)
	router.Use(httpserver.LoggingMiddleware(logger))
	router.Use(httpserver.RateLimitMiddleware(
		httpserver.NewClientRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst),
	))

	a := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		Publisher:     publisher,
		Router:        router,
	}

	a.UserModule = user.NewUserModule(ctx, obs, db, router)
	a.ScoreModule = score.NewScoreModule(ctx, obs, db, publisher)
	a.RoundModule, err = round.NewRoundModule(ctx, cfg, obs, db, publisher,
		a.ScoreModule.ScoreService, a.UserModule.UserService, router)
	if err != nil {
		a.closeInfra()
		return nil, err
	}

	router.Get("/healthz", a.handleHealth)

	return a, nil
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.DB.PingContext(r.Context()); err != nil {
		httpserver.WriteError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	if a.RoundModule.QueueService != nil {
		if err := a.RoundModule.QueueService.HealthCheck(r.Context()); err != nil {
			httpserver.WriteError(w, http.StatusServiceUnavailable, "queue unavailable")
			return
		}
	}
	httpserver.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves the API and metrics until ctx is cancelled, then shuts down.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Provider.Logger

	apiServer := &http.Server{
		Addr:              a.Config.HTTP.Address,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(a.Observability.Registry.Prometheus, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{
		Addr:              a.Config.Observability.MetricsAddress,
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	servers := []*http.Server{apiServer, metricsServer}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.RoundModule.Run(gctx, nil)
		return nil
	})

	for _, srv := range servers {
		g.Go(func() error {
			logger.InfoContext(gctx, "HTTP server listening", attr.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server on %s failed: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Error shutting down HTTP server", attr.String("address", srv.Addr), attr.Error(err))
			}
		}
		if err := a.RoundModule.Close(shutdownCtx); err != nil {
			logger.Error("Error closing round module", attr.Error(err))
		}
		return nil
	})

	runErr := g.Wait()
	if runErr != nil {
		logger.Error("Server stopped with error", attr.Error(runErr))
	}

	a.closeInfra()
	logger.Info("Shutdown complete")
	return runErr
}

func (a *App) closeInfra() {
	logger := a.Observability.Provider.Logger
	if err := a.Publisher.Close(); err != nil {
		logger.Error("Error closing publisher", attr.Error(err))
	}
	if err := a.DB.Close(); err != nil {
		logger.Error("Error closing database", attr.Error(err))
	}
}
