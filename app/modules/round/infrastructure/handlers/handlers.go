// Package roundhandlers exposes the round service over HTTP.
package roundhandlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	roundservice "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/application"
	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	roundqueue "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/queue"
	scoreservice "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/application"
	"github.com/Black-And-White-Club/frolf-rounds/internal/httpserver"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/go-chi/chi/v5"
)

// UserIDHeader carries the requester's member ID, set by the gateway.
const UserIDHeader = httpserver.UserIDHeader

// TagLookup resolves a member's tag number when a join request omits it.
type TagLookup interface {
	GetUserTag(ctx context.Context, memberID roundtypes.MemberID) (*int, error)
}

// JobLister reports the start jobs queued for a round.
type JobLister interface {
	GetScheduledJobs(ctx context.Context, roundID roundtypes.RoundID) ([]roundqueue.JobInfo, error)
}

// Handlers serves the /rounds routes.
type Handlers struct {
	service   roundservice.Service
	standings scoreservice.Service
	tags      TagLookup
	jobs      JobLister
	logger    *slog.Logger
}

// NewHandlers creates round handlers. standings, tags and jobs may be nil.
func NewHandlers(service roundservice.Service, standings scoreservice.Service, tags TagLookup, jobs JobLister, logger *slog.Logger) *Handlers {
	return &Handlers{
		service:   service,
		standings: standings,
		tags:      tags,
		jobs:      jobs,
		logger:    logger,
	}
}

// Routes mounts the round endpoints on r.
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.ListRounds)
	r.Post("/", h.CreateRound)
	r.Route("/{roundID}", func(r chi.Router) {
		r.Get("/", h.GetRound)
		r.Patch("/", h.EditRound)
		r.Delete("/", h.DeleteRound)
		r.Post("/start", h.StartRound)
		r.Post("/finalize", h.FinalizeRound)
		r.Post("/participants", h.JoinRound)
		r.Put("/participants/{memberID}", h.UpdateParticipantResponse)
		r.Post("/scores", h.SubmitScore)
		r.Get("/standings", h.GetStandings)
		r.Get("/scorecard.xlsx", h.ExportScorecard)
		r.Get("/scores.png", h.ExportScoreChart)
		r.Get("/jobs", h.ListScheduledJobs)
	})
}

func roundIDParam(r *http.Request) (roundtypes.RoundID, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid round ID")
	}
	return roundtypes.RoundID(id), nil
}

func requester(r *http.Request) roundtypes.MemberID {
	return roundtypes.MemberID(r.Header.Get(UserIDHeader))
}

// failureStatus maps a domain failure to its HTTP status.
func failureStatus(err error) int {
	switch {
	case errors.Is(err, roundservice.ErrNotFound), errors.Is(err, scoreservice.ErrStandingsNotFound):
		return http.StatusNotFound
	case errors.Is(err, roundservice.ErrInvalidState),
		errors.Is(err, roundservice.ErrConflict),
		errors.Is(err, roundservice.ErrRoundAlreadyFinalized):
		return http.StatusConflict
	case errors.Is(err, roundservice.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, roundservice.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func (h *Handlers) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		attr.ExtractCorrelationID(r.Context()),
		attr.String("path", r.URL.Path),
		attr.Error(err),
	)
	httpserver.WriteError(w, http.StatusInternalServerError, "internal server error")
}

// writeRoundResult renders a round mutation outcome.
func (h *Handlers) writeRoundResult(w http.ResponseWriter, r *http.Request, result roundservice.RoundResult, err error, successStatus int) {
	if err != nil {
		h.internalError(w, r, "Round operation failed", err)
		return
	}
	if result.Failure != nil {
		failure := *result.Failure
		httpserver.WriteError(w, failureStatus(failure), failure.Error())
		return
	}
	httpserver.WriteJSON(w, successStatus, result.Success)
}
