package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/rs/zerolog"
	"github.com/storewatch/storewatch-api/internal/config"
	"github.com/storewatch/storewatch-api/internal/dataset"
	"github.com/storewatch/storewatch-api/internal/handlers"
	"github.com/storewatch/storewatch-api/internal/jobs"
	"github.com/storewatch/storewatch-api/internal/middleware"
	"github.com/storewatch/storewatch-api/internal/report"
	"github.com/storewatch/storewatch-api/internal/routes"
)

type application struct {
	config  *config.Config
	manager *jobs.Manager
	logger  zerolog.Logger
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	// Load configuration.
	cfg := config.Load()

	// Make sure the dataset files are in place before accepting requests.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	if err := dataset.EnsureData(ctx, cfg.Dataset, logger); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("Failed to prepare dataset files")
	}
	cancel()

	// The pipeline reads the datasets fresh on every run; nothing is cached
	// across report jobs.
	source := dataset.NewFileSource(cfg.Dataset)
	pipeline := report.NewPipeline(source, cfg.DefaultTimezone, logger)
	manager := jobs.NewManager(pipeline, logger)

	app := &application{
		config:  cfg,
		manager: manager,
		logger:  logger,
	}

	// Initialize the HTTP router and middleware.
	router := app.initRouter(logger)
	loggedRouter := middleware.LoggingMiddleware(app.logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins([]string{"*"}),
		h.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type"}),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, logger)

	logger.Info().Msg("Application terminated.")
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter(logger zerolog.Logger) http.Handler {
	reportHandler := handlers.NewReportHandler(app.manager, app.config.IsDevelopment(), logger)
	return routes.NewRouter(reportHandler)
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, logger zerolog.Logger) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server. In-flight report jobs are not
	// persisted; they die with the process.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}
}
