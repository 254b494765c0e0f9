// Package jobs owns the asynchronous report job life-cycle: job creation,
// the single RUNNING to COMPLETE/FAILED transition and concurrent-safe
// status lookup.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/storewatch/storewatch-api/internal/apperr"
	"github.com/storewatch/storewatch-api/internal/models"
)

// Runner computes one report payload. Implemented by report.Pipeline.
type Runner interface {
	Run(ctx context.Context) (*models.ReportData, error)
}

// Manager owns the id to report-record table. It is the only state shared
// between the HTTP layer and the pipeline goroutines.
type Manager struct {
	mu      sync.RWMutex
	reports map[string]*models.Report
	runner  Runner
	logger  zerolog.Logger
}

func NewManager(runner Runner, logger zerolog.Logger) *Manager {
	return &Manager{
		reports: make(map[string]*models.Report),
		runner:  runner,
		logger:  logger,
	}
}

// Create allocates a new RUNNING report and launches the pipeline in its own
// goroutine. It returns the report id without waiting for the run.
func (m *Manager) Create() (string, error) {
	if m.runner == nil {
		return "", fmt.Errorf("report manager not initialized")
	}

	id := uuid.NewString()
	m.mu.Lock()
	m.reports[id] = &models.Report{
		ID:        id,
		Status:    models.StatusRunning,
		StartTime: time.Now().UTC(),
	}
	m.mu.Unlock()

	go m.run(id)

	m.logger.Info().Str("report_id", id).Msg("Report generation started")
	return id, nil
}

// Get returns a snapshot of the report, or a NotFound error for unknown ids.
func (m *Manager) Get(id string) (models.ReportResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reports[id]
	if !ok {
		return models.ReportResponse{}, apperr.NotFoundf("report %s not found", id)
	}
	return r.ToResponse(), nil
}

// List returns status snapshots for every known report, payloads omitted.
func (m *Manager) List() []models.ReportResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.ReportResponse, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, r.StatusResponse())
	}
	return out
}

// run executes the pipeline for one report and records the terminal state.
// Errors and panics stay contained to this report; other in-flight runs and
// the process itself are unaffected.
func (m *Manager) run(id string) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().Str("report_id", id).Msgf("Report run panicked: %v", r)
			m.fail(id, fmt.Sprintf("internal error: %v", r))
		}
	}()

	m.logger.Info().Str("report_id", id).Msg("Processing report")
	data, err := m.runner.Run(context.Background())
	if err != nil {
		m.logger.Error().Err(err).Str("report_id", id).Msg("Report run failed")
		m.fail(id, err.Error())
		return
	}
	m.complete(id, data)
	m.logger.Info().Str("report_id", id).Int("stores", data.StoreCount).Msg("Report completed")
}

func (m *Manager) complete(id string, data *models.ReportData) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reports[id]
	if !ok || r.Status != models.StatusRunning {
		// Terminal states never revert.
		return
	}
	now := time.Now().UTC()
	r.Status = models.StatusComplete
	r.CompletionTime = &now
	r.Data = data
}

func (m *Manager) fail(id string, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reports[id]
	if !ok || r.Status != models.StatusRunning {
		return
	}
	now := time.Now().UTC()
	r.Status = models.StatusFailed
	r.CompletionTime = &now
	r.Error = message
}
