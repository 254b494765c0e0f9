package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/storewatch/storewatch-api/internal/jobs"
	"github.com/storewatch/storewatch-api/internal/models"
)

type ReportHandler struct {
	manager     *jobs.Manager
	development bool
	logger      zerolog.Logger
}

func NewReportHandler(manager *jobs.Manager, development bool, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{manager: manager, development: development, logger: logger}
}

// CreateReport starts a new report run and returns its id immediately.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	id, err := h.manager.Create()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create report")
		respondError(w, err, h.development)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{
		"report_id": id,
		"message":   "Report generation started",
	})
}

// GetReport returns the current snapshot of one report.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["reportID"]
	report, err := h.manager.Get(id)
	if err != nil {
		respondError(w, err, h.development)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// ListReports returns status snapshots for all reports, without payloads.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports := h.manager.List()
	respondJSON(w, http.StatusOK, struct {
		Count   int                     `json:"count"`
		Reports []models.ReportResponse `json:"reports"`
	}{
		Count:   len(reports),
		Reports: reports,
	})
}
