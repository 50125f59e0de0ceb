package roundhandlers

import (
	"bytes"
	"io"
	"net/http"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	roundexport "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/export"
	"github.com/Black-And-White-Club/frolf-rounds/internal/httpserver"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportScorecard handles GET /rounds/{roundID}/scorecard.xlsx.
func (h *Handlers) ExportScorecard(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, xlsxContentType, roundexport.WriteScorecard)
}

// ExportScoreChart handles GET /rounds/{roundID}/scores.png.
func (h *Handlers) ExportScoreChart(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "image/png", roundexport.WriteScoreChart)
}

// export renders into a buffer first so a failure can still produce a JSON error.
func (h *Handlers) export(w http.ResponseWriter, r *http.Request, contentType string, render func(io.Writer, *roundtypes.Round) error) {
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

	var buf bytes.Buffer
	if err := render(&buf, round); err != nil {
		h.internalError(w, r, "Failed to render export", err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
