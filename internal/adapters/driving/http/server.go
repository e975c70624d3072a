package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/botforge-labs/trainset-core/internal/core/ports/driven"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	handler    http.Handler
	version    string

	// Services
	ingestionService    driving.IngestionService
	workspaceService    driving.WorkspaceService
	bulkService         driving.BulkService
	scheduleService     driving.ScheduleService
	notificationService driving.NotificationService

	// Infrastructure
	verifier driven.TokenVerifier
	db       Pinger // PostgreSQL health check
	redis    Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	ingestionService driving.IngestionService,
	workspaceService driving.WorkspaceService,
	bulkService driving.BulkService,
	scheduleService driving.ScheduleService,
	notificationService driving.NotificationService,
	verifier driven.TokenVerifier,
	db Pinger,
	redis Pinger, // can be nil
) *Server {
	s := &Server{
		router:              http.NewServeMux(),
		version:             cfg.Version,
		ingestionService:    ingestionService,
		workspaceService:    workspaceService,
		bulkService:         bulkService,
		scheduleService:     scheduleService,
		notificationService: notificationService,
		verifier:            verifier,
		db:                  db,
		redis:               redis,
	}

	s.setupRoutes()

	// Logging outermost so recovered panics are logged with their 500
	logging := NewLoggingMiddleware()
	recovery := NewRecoveryMiddleware()
	s.handler = logging.Handler(recovery.Handler(s.router))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.verifier)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Document registry endpoints
	s.router.Handle("GET /api/v1/documents",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListDocuments)))
	s.router.Handle("GET /api/v1/documents/selection",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetSelection)))
	s.router.Handle("POST /api/v1/documents/selection/toggle",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleToggleSelection)))
	s.router.Handle("POST /api/v1/documents/selection/select-all",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSelectAll)))
	s.router.Handle("POST /api/v1/documents/selection/clear",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleClearSelection)))
	s.router.Handle("DELETE /api/v1/documents/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteDocument)))

	// Content submission endpoints
	s.router.Handle("POST /api/v1/content/upload",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUploadFile)))
	s.router.Handle("POST /api/v1/content/text",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUploadText)))
	s.router.Handle("POST /api/v1/content/scrape",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleScrapeWebsite)))
	s.router.Handle("POST /api/v1/content/youtube",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleExtractVideo)))
	s.router.Handle("POST /api/v1/content/qa",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUploadQA)))

	// Bulk operation endpoints
	s.router.Handle("POST /api/v1/content/retrain",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleRetrain)))
	s.router.Handle("POST /api/v1/content/delete-bulk",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteBulk)))

	// Retrain schedule endpoints
	s.router.Handle("GET /api/v1/content/retrain-schedule/{botId}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetSchedule)))
	s.router.Handle("POST /api/v1/content/retrain-schedule",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSaveSchedule)))

	// Notification endpoint
	s.router.Handle("GET /api/v1/notifications",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetNotification)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the full middleware chain, for tests
func (s *Server) Handler() http.Handler {
	return s.handler
}
