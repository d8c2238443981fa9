package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/de-tools/service-reports/pkg/adapters"
	"github.com/de-tools/service-reports/pkg/models/api"
	"github.com/de-tools/service-reports/pkg/models/store"
	reportstore "github.com/de-tools/service-reports/pkg/store/duckdb/reports"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Reader is the read side of the report store.
type Reader interface {
	ListConsolidated(ctx context.Context) ([]store.ConsolidatedReport, error)
	GetConsolidated(ctx context.Context, month string) (*store.ConsolidatedReport, error)
}

type Handler struct {
	reports Reader
}

func NewHandler(reports Reader) *Handler {
	return &Handler{
		reports: reports,
	}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	records, err := h.reports.ListConsolidated(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list consolidated reports")
		writeError(w, r, http.StatusInternalServerError, "failed to list reports")
		return
	}

	response := make([]api.ConsolidatedReport, 0, len(records))
	for _, record := range records {
		response = append(response, adapters.MapStoreConsolidatedReportToApi(record))
	}
	writeJSON(w, r, http.StatusOK, response)
}

// GetReport serves one month. The month is its start date, path escaped:
// /api/v1/reports/1%2F1%2F2025.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	month, err := url.PathUnescape(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid month")
		return
	}

	record, err := h.reports.GetConsolidated(ctx, month)
	if errors.Is(err, reportstore.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "no report for "+month)
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("month", month).Msg("failed to get consolidated report")
		writeError(w, r, http.StatusInternalServerError, "failed to get report")
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapStoreConsolidatedReportToApi(*record))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, api.Health{Status: "ok"})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, api.Error{Error: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
