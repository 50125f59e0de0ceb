// Package userhandlers exposes the user service over HTTP.
package userhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	userservice "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/application"
	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
	"github.com/Black-And-White-Club/frolf-rounds/internal/httpserver"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/attr"
	"github.com/go-chi/chi/v5"
)

// UserRoleHeader carries the requester's role, set by the gateway.
const UserRoleHeader = "X-User-Role"

// Handlers serves the /users routes.
type Handlers struct {
	service userservice.Service
	logger  *slog.Logger
}

// NewHandlers creates user handlers.
func NewHandlers(service userservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// Routes mounts the user endpoints on r.
func (h *Handlers) Routes(r chi.Router) {
	r.Post("/", h.CreateUser)
	r.Get("/{discordID}", h.GetUser)
	r.Patch("/{discordID}", h.UpdateUser)
}

// GetUser handles GET /users/{discordID}.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetUser(r.Context(), usertypes.DiscordID(chi.URLParam(r, "discordID")))
	h.writeResult(w, r, result, err, http.StatusOK)
}

// CreateUser handles POST /users.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input usertypes.CreateUserInput
	if err := httpserver.DecodeJSON(r, &input); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.CreateUser(r.Context(), input)
	h.writeResult(w, r, result, err, http.StatusCreated)
}

type updateUserRequest struct {
	Name      *string             `json:"name,omitempty"`
	Role      *usertypes.UserRole `json:"role,omitempty"`
	TagNumber *int                `json:"tag_number,omitempty"`
}

// UpdateUser handles PATCH /users/{discordID}. A missing role header is
// treated as RATTLER.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := httpserver.DecodeJSON(r, &req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	requesterRole := usertypes.UserRole(r.Header.Get(UserRoleHeader))
	if !requesterRole.Valid() {
		requesterRole = usertypes.UserRoleRattler
	}

	result, err := h.service.UpdateUser(r.Context(), usertypes.UpdateUserInput{
		DiscordID: usertypes.DiscordID(chi.URLParam(r, "discordID")),
		Name:      req.Name,
		Role:      req.Role,
		TagNumber: req.TagNumber,
	}, requesterRole)
	h.writeResult(w, r, result, err, http.StatusOK)
}

func failureStatus(err error) int {
	var validation *userservice.ValidationError
	switch {
	case errors.Is(err, userservice.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, userservice.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, userservice.ErrUnauthorizedRoleChange):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func (h *Handlers) writeResult(w http.ResponseWriter, r *http.Request, result userservice.UserResult, err error, successStatus int) {
	if err != nil {
		h.logger.ErrorContext(r.Context(), "User operation failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httpserver.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if result.Failure != nil {
		failure := *result.Failure
		httpserver.WriteError(w, failureStatus(failure), failure.Error())
		return
	}
	httpserver.WriteJSON(w, successStatus, result.Success)
}
