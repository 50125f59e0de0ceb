package score

import (
	"context"

	scoreservice "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/application"
	scoredb "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the score module. It has no routes of its own; the round
// module calls it on finalization and serves its standings.
type Module struct {
	ScoreService scoreservice.Service
}

// NewScoreModule builds the score service.
func NewScoreModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	publisher message.Publisher,
) *Module {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "score.NewScoreModule called")

	return &Module{
		ScoreService: scoreservice.NewScoreService(
			scoredb.NewRepository(db),
			logger,
			obs.Registry.Metrics,
			obs.Registry.Tracer,
			db,
			publisher,
		),
	}
}
