// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     remote
// Description: HTTP server hosting the WebSocket calculator and health route
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package remote

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/msto63/mdwcalc/internal/preferences"
	"github.com/msto63/mdwcalc/pkg/core/config"
	"github.com/msto63/mdwcalc/pkg/core/health"
	"github.com/msto63/mdwcalc/pkg/core/logging"
	"github.com/msto63/mdwcalc/pkg/core/version"
)

// Routes
const (
	PathWebSocket = "/ws"
	PathHealth    = "/healthz"
)

// Server is the remote calculator server
type Server struct {
	httpServer *http.Server
	ws         *WebSocketHandler
	health     *health.Registry
	logger     *logging.Logger
	config     Config

	// bound address once StartAsync has listened
	addr string
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PingInterval   time.Duration
	AllowedOrigins []string
	Version        string
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:         "127.0.0.1",
		Port:         8089,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PingInterval: 30 * time.Second,
		Version:      version.ComponentVersion("remote"),
	}
}

// ConfigFrom converts the [server] section of the application config
func ConfigFrom(sc config.ServerConfig) Config {
	cfg := DefaultConfig()
	if sc.Host != "" {
		cfg.Host = sc.Host
	}
	if sc.Port != 0 {
		cfg.Port = sc.Port
	}
	if sc.ReadTimeout.Duration > 0 {
		cfg.ReadTimeout = sc.ReadTimeout.Duration
	}
	if sc.WriteTimeout.Duration > 0 {
		cfg.WriteTimeout = sc.WriteTimeout.Duration
	}
	if sc.PingInterval.Duration > 0 {
		cfg.PingInterval = sc.PingInterval.Duration
	}
	cfg.AllowedOrigins = sc.AllowedOrigins
	return cfg
}

// New creates a new server. store may be nil, in which case theme
// messages are answered with preferences_unavailable.
func New(cfg Config, store preferences.Store) (*Server, error) {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.Version == "" {
		cfg.Version = version.ComponentVersion("remote")
	}

	logger := logging.New("remote-server")

	ws := NewWebSocketHandler(HandlerConfig{
		Store:          store,
		PingInterval:   cfg.PingInterval,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logging.New("remote-websocket"),
	})

	// Create health registry
	healthRegistry := health.NewRegistry("mdwcalc-remote", cfg.Version)
	healthRegistry.RegisterFunc("http", func(ctx context.Context) health.CheckResult {
		return health.CheckResult{
			Name:    "http",
			Status:  health.StatusHealthy,
			Message: "HTTP server is running",
		}
	})
	healthRegistry.RegisterFunc("sessions", func(ctx context.Context) health.CheckResult {
		return health.CheckResult{
			Name:    "sessions",
			Status:  health.StatusHealthy,
			Message: fmt.Sprintf("%d open", ws.Sessions()),
		}
	})
	healthRegistry.RegisterFunc("preferences", preferencesCheck(store))

	mux := http.NewServeMux()
	mux.Handle(PathWebSocket, ws)
	mux.Handle(PathHealth, health.Handler(healthRegistry, 5*time.Second))

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      loggingMiddleware(logger, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		ws:         ws,
		health:     healthRegistry,
		logger:     logger,
		config:     cfg,
	}, nil
}

// preferencesCheck reports a missing or unreadable store as degraded;
// calculator sessions keep working without it.
func preferencesCheck(store preferences.Store) func(ctx context.Context) health.CheckResult {
	return func(ctx context.Context) health.CheckResult {
		if store == nil {
			return health.CheckResult{
				Name:    "preferences",
				Status:  health.StatusDegraded,
				Message: "No preferences store configured",
			}
		}
		p, err := store.Load(ctx)
		if err != nil {
			return health.CheckResult{
				Name:    "preferences",
				Status:  health.StatusDegraded,
				Message: err.Error(),
			}
		}
		return health.CheckResult{
			Name:    "preferences",
			Status:  health.StatusHealthy,
			Message: "theme " + string(p.Theme()),
		}
	}
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker for the WebSocket upgrade
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

// Handler returns the routed handler including request logging
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting remote calculator",
		"host", s.config.Host,
		"port", s.config.Port,
	)
	return s.httpServer.ListenAndServe()
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}

	s.addr = ln.Addr().String()
	s.logger.Info("Starting remote calculator (async)",
		"address", s.addr,
	)

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully stops the server and closes open sessions
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping remote calculator", "sessions", s.ws.Sessions())

	err := s.httpServer.Shutdown(ctx)
	s.ws.CloseAll()
	return err
}

// Address returns the server address
func (s *Server) Address() string {
	if s.addr != "" {
		return s.addr
	}
	return s.httpServer.Addr
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}
