package roundhandlers

import (
	"net/http"
	"strconv"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	"github.com/Black-And-White-Club/frolf-rounds/internal/httpserver"
	"github.com/go-chi/chi/v5"
)

// ListRounds handles GET /rounds?limit&offset.
func (h *Handlers) ListRounds(w http.ResponseWriter, r *http.Request) {
	limit, offset := 0, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httpserver.WriteError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httpserver.WriteError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		offset = n
	}

	rounds, err := h.service.ListRounds(r.Context(), limit, offset)
	if err != nil {
		h.internalError(w, r, "Failed to list rounds", err)
		return
	}
	if rounds == nil {
		rounds = []*roundtypes.Round{}
	}
	httpserver.WriteJSON(w, http.StatusOK, rounds)
}

// GetRound handles GET /rounds/{roundID}.
func (h *Handlers) GetRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := roundIDParam(r)
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	round, err := h.service.GetRound(r.Context(), roundID)
	if err != nil {
		h.internalError(w, r, "Failed to get round", err)
		return
	}
	if round == nil {
		httpserver.WriteError(w, http.StatusNotFound, "Round not found")
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, round)
}

type createRoundRequest struct {
	Title     string  `json:"title"`
	Location  string  `json:"location"`
	EventType *string `json:"event_type,omitempty"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
}

// CreateRound handles POST /rounds. The creator is the requester.
func (h *Handlers) CreateRound(w http.ResponseWriter, r *http.Request) {
	var req createRoundRequest
	if err := httpserver.DecodeJSON(r, &req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.CreateRound(r.Context(), roundtypes.CreateRoundInput{
		Title:     req.Title,
		Location:  req.Location,
		EventType: req.EventType,
		Date:      req.Date,
		Time:      req.Time,
		CreatorID: requester(r),
	})
	h.writeRoundResult(w, r, result, err, http.StatusCreated)
}

// EditRound handles PATCH /rounds/{roundID}.
func (h *Handlers) EditRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := roundIDParam(r)
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var input roundtypes.EditRoundInput
	if err := httpserver.DecodeJSON(r, &input); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.EditRound(r.Context(), roundID, input)
	h.writeRoundResult(w, r, result, err, http.StatusOK)
}

// DeleteRound handles DELETE /rounds/{roundID}. Only the creator may delete.
func (h *Handlers) DeleteRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := roundIDParam(r)
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.DeleteRound(r.Context(), roundID, requester(r))
	if err != nil {
		h.internalError(w, r, "Failed to delete round", err)
		return
	}
	if result.Failure != nil {
		failure := *result.Failure
		httpserver.WriteError(w, failureStatus(failure), failure.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartRound handles POST /rounds/{roundID}/start.
func (h *Handlers) StartRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := roundIDParam(r)
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.StartRound(r.Context(), roundID)
	h.writeRoundResult(w, r, result, err, http.StatusOK)
}

// FinalizeRound handles POST /rounds/{roundID}/finalize.
func (h *Handlers) FinalizeRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := roundIDParam(r)
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.FinalizeAndProcessScores(r.Context(), roundID)
	h.writeRoundResult(w, r, result, err, http.StatusOK)
}

type joinRoundRequest struct {
	MemberID  roundtypes.MemberID `json:"member_id"`
	Response  roundtypes.Response `json:"response"`
	TagNumber *int                `json:"tag_number,omitempty"`
}

// JoinRound handles POST /rounds/{roundID}/participants. An omitted member ID
// means the requester; an omitted tag is looked up.
func (h *Handlers) JoinRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := roundIDParam(r)
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req joinRoundRequest
	if err := httpserver.DecodeJSON(r, &req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MemberID == "" {
		req.MemberID = requester(r)
	}
	if req.MemberID == "" {
		httpserver.WriteError(w, http.StatusBadRequest, "member_id is required")
		return
	}

	if req.TagNumber == nil && h.tags != nil {
		tag, err := h.tags.GetUserTag(r.Context(), req.MemberID)
		if err != nil {
			h.internalError(w, r, "Failed to look up tag number", err)
			return
		}
		req.TagNumber = tag
	}

	result, err := h.service.JoinRound(r.Context(), roundtypes.JoinRoundInput{
		RoundID:   roundID,
		MemberID:  req.MemberID,
		Response:  req.Response,
		TagNumber: req.TagNumber,
	})
	h.writeRoundResult(w, r, result, err, http.StatusOK)
}

type updateResponseRequest struct {
	Response roundtypes.Response `json:"response"`
}

// UpdateParticipantResponse handles PUT /rounds/{roundID}/participants/{memberID}.
func (h *Handlers) UpdateParticipantResponse(w http.ResponseWriter, r *http.Request) {
	roundID, err := roundIDParam(r)
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateResponseRequest
	if err := httpserver.DecodeJSON(r, &req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.UpdateParticipantResponse(r.Context(), roundtypes.UpdateResponseInput{
		RoundID:  roundID,
		MemberID: roundtypes.MemberID(chi.URLParam(r, "memberID")),
		Response: req.Response,
	})
	h.writeRoundResult(w, r, result, err, http.StatusOK)
}

type submitScoreRequest struct {
	MemberID  roundtypes.MemberID `json:"member_id"`
	Score     *int                `json:"score"`
	TagNumber *int                `json:"tag_number,omitempty"`
}

// SubmitScore handles POST /rounds/{roundID}/scores.
func (h *Handlers) SubmitScore(w http.ResponseWriter, r *http.Request) {
	roundID, err := roundIDParam(r)
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req submitScoreRequest
	if err := httpserver.DecodeJSON(r, &req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Score == nil {
		httpserver.WriteError(w, http.StatusBadRequest, "score is required")
		return
	}
	if req.MemberID == "" {
		req.MemberID = requester(r)
	}
	if req.MemberID == "" {
		httpserver.WriteError(w, http.StatusBadRequest, "member_id is required")
		return
	}

	result, err := h.service.SubmitScore(r.Context(), roundtypes.SubmitScoreInput{
		RoundID:   roundID,
		MemberID:  req.MemberID,
		Score:     *req.Score,
		TagNumber: req.TagNumber,
	})
	h.writeRoundResult(w, r, result, err, http.StatusOK)
}

// GetStandings handles GET /rounds/{roundID}/standings.
func (h *Handlers) GetStandings(w http.ResponseWriter, r *http.Request) {
	if h.standings == nil {
		httpserver.WriteError(w, http.StatusNotFound, "standings are not available")
		return
	}
	roundID, err := roundIDParam(r)
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.standings.GetRoundStandings(r.Context(), roundID)
	if err != nil {
		h.internalError(w, r, "Failed to get standings", err)
		return
	}
	if result.Failure != nil {
		failure := *result.Failure
		httpserver.WriteError(w, failureStatus(failure), failure.Error())
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, result.Success)
}

// ListScheduledJobs handles GET /rounds/{roundID}/jobs.
func (h *Handlers) ListScheduledJobs(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		httpserver.WriteError(w, http.StatusNotFound, "job queue is not enabled")
		return
	}
	roundID, err := roundIDParam(r)
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobs, err := h.jobs.GetScheduledJobs(r.Context(), roundID)
	if err != nil {
		h.internalError(w, r, "Failed to list scheduled jobs", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, jobs)
}
