package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/resumeiq/backend/repository"
	"github.com/resumeiq/backend/storage"
	ws "github.com/resumeiq/backend/websocket"
)

// Server holds all server dependencies
type Server struct {
	config            *Config
	repo              *repository.GORMRepository
	wsHub             *ws.Hub
	amqp              *AMQPNotifier
	authService       *AuthService
	authEndpoints     *AuthEndpoints
	analysisEndpoints *AnalysisEndpoints
	skillEndpoints    *SkillEndpoints
	eventStream       *EventStreamHandler
}

// NewServer creates a new server instance
func NewServer(config *Config) *Server {
	return &Server{config: config}
}

// SetDatabase sets the database connection
func (s *Server) SetDatabase(repo *repository.GORMRepository) {
	s.repo = repo
}

// InitializeServices builds the LLM client, file store, notifiers and
// endpoints. The database must be set first.
func (s *Server) InitializeServices(ctx context.Context) error {
	if s.repo == nil {
		return errors.New("database not configured")
	}

	client, model, err := NewLLMClient(ctx, s.config.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	timeout := s.config.LLM.ScoringTimeout
	if s.config.LLM.Provider == ProviderGemini {
		timeout = s.config.LLM.AlternateTimeout
	}
	analyzer := NewAnalyzer(client, model, timeout)
	if s.config.LLM.CacheDir != "" {
		analyzer.WithCache(NewReplyCache(s.config.LLM.CacheDir))
		slog.Info("LLM reply cache enabled", "dir", s.config.LLM.CacheDir)
	}

	files, err := newFileStore(ctx, s.config.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Initialize WebSocket hub
	s.wsHub = ws.NewHub()
	go s.wsHub.Run()
	s.eventStream = NewEventStreamHandler(s.wsHub, s.config.WebSocket.AllowedOrigins)

	notifiers := MultiNotifier{NewHubNotifier(s.wsHub)}
	if s.config.Events.AMQPURL != "" {
		s.amqp, err = NewAMQPNotifier(s.config.Events.AMQPURL, s.config.Events.Exchange)
		if err != nil {
			return err
		}
		notifiers = append(notifiers, s.amqp)
	}

	if s.config.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	s.authService = NewAuthService(s.repo, s.config.JWT)
	s.authEndpoints = NewAuthEndpoints(s.authService)
	s.analysisEndpoints = NewAnalysisEndpoints(s.repo, analyzer, files, notifiers, s.config.Analysis, s.config.Server.UploadMaxBytes)
	s.skillEndpoints = NewSkillEndpoints(s.repo)

	return nil
}

func newFileStore(ctx context.Context, cfg StorageConfig) (storage.FileStore, error) {
	switch cfg.Backend {
	case "local", "":
		return storage.NewLocalStore(cfg.LocalDir)
	case "s3":
		return storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "none":
		slog.Warn("Resume file storage disabled")
		return nil, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// SetupRoutes configures all HTTP routes
func (s *Server) SetupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health endpoint
	r.Get("/health", s.healthHandler)

	r.Route("/api", func(r chi.Router) {
		s.analysisEndpoints.RegisterRoutes(r)
		s.authEndpoints.RegisterRoutes(r)
		r.Get("/ws/events", s.eventStream.ServeHTTP)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authService.Middleware)
			s.authEndpoints.RegisterProtectedRoutes(r)
			s.skillEndpoints.RegisterRoutes(r)
		})
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start() {
	port := s.config.Server.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	if s.amqp != nil {
		if err := s.amqp.Close(); err != nil {
			slog.Error("Failed to close RabbitMQ connection", "error", err)
		}
	}

	slog.Info("Server exited")
}

// CheckOrigin validates the origin of WebSocket connections to prevent CSRF attacks
func CheckOrigin(r *http.Request, allowedOriginsStr string) bool {
	origin := r.Header.Get("Origin")

	// If no allowed origins are configured, deny all requests for security
	if allowedOriginsStr == "" {
		slog.Warn("WebSocket connection rejected: no allowed origins configured", "origin", origin)
		return false
	}

	for _, allowed := range strings.Split(allowedOriginsStr, ",") {
		if strings.TrimSpace(allowed) == origin {
			slog.Info("WebSocket connection accepted", "origin", origin)
			return true
		}
	}

	slog.Warn("WebSocket connection rejected: origin not allowed", "origin", origin, "allowed_origins", allowedOriginsStr)
	return false
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "not configured"

	if s.repo != nil {
		if err := s.repo.Ping(r.Context()); err != nil {
			dbStatus = "down"
			status = "degraded"
		} else {
			dbStatus = "up"
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": status, "database": dbStatus})
	slog.Info("Health check", "status", status, "database", dbStatus)
}
