package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/storewatch/storewatch-api/internal/handlers"
)

// NewRouter sets up the API routes. Report endpoints are reachable both at
// the root and under /api.
func NewRouter(report *handlers.ReportHandler) *mux.Router {
	router := mux.NewRouter()

	for _, r := range []*mux.Router{router, router.PathPrefix("/api").Subrouter()} {
		r.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)
		r.HandleFunc("/reports", report.CreateReport).Methods(http.MethodPost)
		r.HandleFunc("/reports", report.ListReports).Methods(http.MethodGet)
		r.HandleFunc("/reports/{reportID}", report.GetReport).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(handlers.NotFound)

	return router
}
