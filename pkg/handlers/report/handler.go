package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/health-atlas/pkg/adapters"
	"github.com/de-tools/health-atlas/pkg/models/api"
	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/observability"
	"github.com/de-tools/health-atlas/pkg/services/analysis"
	"github.com/de-tools/health-atlas/pkg/services/health"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	explorer health.Explorer
}

func NewHandler(explorer health.Explorer) *Handler {
	return &Handler{explorer: explorer}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	summary := h.explorer.Summary(ctx)
	respondJSON(w, r, adapters.MapSummaryDomainToApi(summary))
}

func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.explorer.Days(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	response := make([]api.Day, 0, len(days))
	for _, d := range days {
		response = append(response, adapters.MapDayDomainToApi(d))
	}
	respondJSON(w, r, response)
}

func (h *Handler) ListNights(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")

	nights, err := h.explorer.Nights(r.Context(), source)
	if err != nil {
		respondError(w, r, err)
		return
	}

	response := make([]api.Night, 0, len(nights))
	for _, n := range nights {
		response = append(response, adapters.MapNightDomainToApi(n))
	}
	respondJSON(w, r, response)
}

func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	comparison, err := h.explorer.Comparison(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, adapters.MapComparisonDomainToApi(comparison))
}

func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, h.explorer.ListAnalyses(r.Context()))
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	report, err := h.explorer.RunAnalysis(r.Context(), name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	observability.RecordAnalysisServed(name)
	respondJSON(w, r, adapters.MapReportDomainToApi(report))
}

func (h *Handler) GetParams(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, adapters.MapParamsDomainToApi(h.explorer.Params()))
}

func respondJSON(w http.ResponseWriter, r *http.Request, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// respondError maps pipeline outcomes to statuses: absent data is 404, a bad
// query is 400, anything else is 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoData),
		errors.Is(err, domain.ErrEmptyJoin),
		errors.Is(err, analysis.ErrNotRegistered):
		status = http.StatusNotFound
	case errors.Is(err, health.ErrUnknownSource):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode error response")
	}
}
