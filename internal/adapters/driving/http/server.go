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

	"github.com/syutarojp/novel-forge/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService       driving.AuthService
	userService       driving.UserService
	projectService    driving.ProjectService
	manuscriptService driving.ManuscriptService
	binderService     driving.BinderService
	codexService      driving.CodexService
	proofreadService  driving.ProofreadService
	compileService    driving.CompileService

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	userService driving.UserService,
	projectService driving.ProjectService,
	manuscriptService driving.ManuscriptService,
	binderService driving.BinderService,
	codexService driving.CodexService,
	proofreadService driving.ProofreadService,
	compileService driving.CompileService,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:            http.NewServeMux(),
		version:           cfg.Version,
		authService:       authService,
		userService:       userService,
		projectService:    projectService,
		manuscriptService: manuscriptService,
		binderService:     binderService,
		codexService:      codexService,
		proofreadService:  proofreadService,
		compileService:    compileService,
		db:                db,
		redisClient:       redisClient,
	}

	var handler http.Handler = s.router
	handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	handler = NewLoggingMiddleware().Handler(handler)
	handler = NewRecoveryMiddleware().Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // proofreading calls can run long
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)
	auth := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(h)
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Setup endpoints (public, one-time use)
	s.router.HandleFunc("GET /api/v1/setup", s.handleNeedsSetup)
	s.router.HandleFunc("POST /api/v1/setup", s.handleSetup)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout", auth(s.handleLogout))

	// User endpoints
	s.router.Handle("GET /api/v1/me", auth(s.handleGetMe))

	// Project endpoints
	s.router.Handle("GET /api/v1/projects", auth(s.handleListProjects))
	s.router.Handle("POST /api/v1/projects", auth(s.handleCreateProject))
	s.router.Handle("GET /api/v1/projects/{id}", auth(s.handleGetProject))
	s.router.Handle("PUT /api/v1/projects/{id}", auth(s.handleUpdateProject))
	s.router.Handle("DELETE /api/v1/projects/{id}", auth(s.handleDeleteProject))

	// Manuscript endpoints
	s.router.Handle("GET /api/v1/projects/{id}/content", auth(s.handleGetContent))
	s.router.Handle("PUT /api/v1/projects/{id}/content", auth(s.handleUpdateContent))
	s.router.Handle("GET /api/v1/projects/{id}/outline", auth(s.handleGetOutline))
	s.router.Handle("POST /api/v1/projects/{id}/import", auth(s.handleImportMarkdown))

	// Section operations
	s.router.Handle("POST /api/v1/projects/{id}/sections/swap", auth(s.handleSwapSections))
	s.router.Handle("POST /api/v1/projects/{id}/sections/{ordinal}/move", auth(s.handleMoveSection))
	s.router.Handle("POST /api/v1/projects/{id}/sections/{ordinal}/level", auth(s.handleChangeSectionLevel))
	s.router.Handle("POST /api/v1/projects/{id}/sections/{ordinal}/trash", auth(s.handleTrashSection))

	// Trash endpoints
	s.router.Handle("GET /api/v1/projects/{id}/trash", auth(s.handleListTrash))
	s.router.Handle("POST /api/v1/projects/{id}/trash/{trashId}/restore", auth(s.handleRestoreSection))
	s.router.Handle("DELETE /api/v1/projects/{id}/trash/{trashId}", auth(s.handleDeleteTrashEntry))

	// Binder endpoints
	s.router.Handle("GET /api/v1/projects/{id}/binder", auth(s.handleListBinderItems))
	s.router.Handle("POST /api/v1/projects/{id}/binder", auth(s.handleCreateBinderItem))
	s.router.Handle("GET /api/v1/projects/{id}/binder/{itemId}", auth(s.handleGetBinderItem))
	s.router.Handle("PUT /api/v1/projects/{id}/binder/{itemId}", auth(s.handleUpdateBinderItem))
	s.router.Handle("POST /api/v1/projects/{id}/binder/{itemId}/move", auth(s.handleMoveBinderItem))
	s.router.Handle("DELETE /api/v1/projects/{id}/binder/{itemId}", auth(s.handleDeleteBinderItem))

	// Codex endpoints
	s.router.Handle("GET /api/v1/projects/{id}/codex", auth(s.handleListCodexEntries))
	s.router.Handle("POST /api/v1/projects/{id}/codex", auth(s.handleCreateCodexEntry))
	s.router.Handle("GET /api/v1/projects/{id}/codex/{entryId}", auth(s.handleGetCodexEntry))
	s.router.Handle("PUT /api/v1/projects/{id}/codex/{entryId}", auth(s.handleUpdateCodexEntry))
	s.router.Handle("DELETE /api/v1/projects/{id}/codex/{entryId}", auth(s.handleDeleteCodexEntry))
	s.router.Handle("GET /api/v1/projects/{id}/codex/{entryId}/relations", auth(s.handleListCodexRelations))
	s.router.Handle("POST /api/v1/projects/{id}/relations", auth(s.handleCreateCodexRelation))
	s.router.Handle("DELETE /api/v1/projects/{id}/relations/{relationId}", auth(s.handleDeleteCodexRelation))

	// Proofreading endpoints
	s.router.Handle("POST /api/v1/projects/{id}/proofread", auth(s.handleProofreadProject))
	s.router.Handle("POST /api/v1/proofread", auth(s.handleProofreadText))

	// Compile endpoint
	s.router.Handle("POST /api/v1/projects/{id}/compile", auth(s.handleCompile))
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
