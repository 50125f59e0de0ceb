package user

import (
	"context"

	userservice "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/application"
	userhandlers "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/infrastructure/handlers"
	userdb "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the user module.
type Module struct {
	UserService   userservice.Service
	observability observability.Observability
}

// NewUserModule builds the user service and mounts /users on httpRouter when given.
func NewUserModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
) *Module {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "user.NewUserModule called")

	service := userservice.NewUserService(
		userdb.NewRepository(db),
		logger,
		obs.Registry.Metrics,
		obs.Registry.Tracer,
		db,
	)

	if httpRouter != nil {
		httpRouter.Route("/users", userhandlers.NewHandlers(service, logger).Routes)
	}

	return &Module{
		UserService:   service,
		observability: obs,
	}
}
