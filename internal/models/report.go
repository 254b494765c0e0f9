package models

import "time"

// ReportStatus is the life-cycle state of a report job.
type ReportStatus string

const (
	StatusRunning  ReportStatus = "RUNNING"
	StatusComplete ReportStatus = "COMPLETE"
	StatusFailed   ReportStatus = "FAILED"
)

// StoreReport is one store's entry in a finished report.
type StoreReport struct {
	StoreID            string  `json:"store_id"`
	UptimePercentage   float64 `json:"uptime_percentage"`
	DowntimePercentage float64 `json:"downtime_percentage"`
}

// ReportData is the payload of a completed report.
type ReportData struct {
	GeneratedAt time.Time     `json:"generated_at"`
	StoreCount  int           `json:"store_count"`
	Stores      []StoreReport `json:"stores"`
}

// Report tracks one asynchronous report generation run. A report is created
// RUNNING and transitions exactly once to COMPLETE or FAILED.
type Report struct {
	ID             string
	Status         ReportStatus
	StartTime      time.Time
	CompletionTime *time.Time
	Data           *ReportData
	Error          string
}

// ReportResponse is the JSON shape returned for a single report.
type ReportResponse struct {
	ReportID       string       `json:"report_id"`
	Status         ReportStatus `json:"status"`
	StartTime      time.Time    `json:"startTime"`
	CompletionTime *time.Time   `json:"completionTime"`
	Data           *ReportData  `json:"data,omitempty"`
	Error          string       `json:"error,omitempty"`
}

// ToResponse returns the full response for the report, including the payload
// when the report completed successfully.
func (r *Report) ToResponse() ReportResponse {
	resp := ReportResponse{
		ReportID:       r.ID,
		Status:         r.Status,
		StartTime:      r.StartTime,
		CompletionTime: r.CompletionTime,
	}
	switch r.Status {
	case StatusComplete:
		resp.Data = r.Data
	case StatusFailed:
		resp.Error = r.Error
	}
	return resp
}

// StatusResponse returns the report without its payload. List endpoints use
// this to keep responses small.
func (r *Report) StatusResponse() ReportResponse {
	resp := ReportResponse{
		ReportID:       r.ID,
		Status:         r.Status,
		StartTime:      r.StartTime,
		CompletionTime: r.CompletionTime,
	}
	if r.Status == StatusFailed {
		resp.Error = r.Error
	}
	return resp
}
