// ============================================================================
// mDW Rechner - Taschenrechner
// ============================================================================
//
// Package:     remote
// Description: WebSocket sessions driving one calculator engine each
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/msto63/mdwcalc/internal/calculator"
	"github.com/msto63/mdwcalc/internal/keypad"
	"github.com/msto63/mdwcalc/internal/preferences"
	"github.com/msto63/mdwcalc/pkg/core/logging"
)

const (
	writeWait    = 10 * time.Second
	storeTimeout = 5 * time.Second
)

// Message types
const (
	TypePress   = "press"
	TypeState   = "state"
	TypePing    = "ping"
	TypeTheme   = "theme"
	TypeDisplay = "display"
	TypePong    = "pong"
	TypeError   = "error"
)

// Error codes
const (
	CodeInvalidPayload         = "invalid_payload"
	CodeUnknownButton          = "unknown_button"
	CodeUnknownType            = "unknown_type"
	CodePreferencesUnavailable = "preferences_unavailable"
)

// WSMessage represents a client message
type WSMessage struct {
	Type    string          `json:"type"`              // "press", "state", "ping", "theme"
	Payload json.RawMessage `json:"payload,omitempty"` // Message-specific payload
}

// WSPressPayload names the pressed button
type WSPressPayload struct {
	Button string `json:"button"`
}

// WSThemePayload asks for the stored theme, optionally toggling it first
type WSThemePayload struct {
	Toggle bool `json:"toggle"`
}

// WSResponse represents a server message
type WSResponse struct {
	Type    string      `json:"type"`              // "display", "theme", "pong", "error"
	Payload interface{} `json:"payload,omitempty"` // Response-specific payload
}

// WSDisplayPayload is the display of the session's engine
type WSDisplayPayload struct {
	Session string `json:"session"`
	Live    string `json:"live"`
	History string `json:"history"`
}

// WSThemeResponse carries the stored theme
type WSThemeResponse struct {
	Theme string `json:"theme"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandlerConfig configures the WebSocket handler
type HandlerConfig struct {
	// Store holds the shared theme; nil disables theme messages
	Store preferences.Store

	// PingInterval between server pings; zero disables keepalive
	PingInterval time.Duration

	// AllowedOrigins for the upgrade; empty or "*" allows any origin
	AllowedOrigins []string

	Logger *logging.Logger
}

// session is one connection with its own engine
type session struct {
	id     string
	conn   *websocket.Conn
	engine *calculator.Engine
}

// WebSocketHandler serves calculator sessions over WebSocket
type WebSocketHandler struct {
	upgrader     websocket.Upgrader
	store        preferences.Store
	pingInterval time.Duration
	logger       *logging.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(cfg HandlerConfig) *WebSocketHandler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("remote-websocket")
	}

	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
		store:        cfg.Store,
		pingInterval: cfg.PingInterval,
		logger:       logger,
		sessions:     make(map[string]*session),
	}
}

// originChecker accepts requests without an Origin header and those whose
// origin is listed.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	s := &session{
		id:     uuid.NewString(),
		conn:   conn,
		engine: calculator.New(),
	}
	h.track(s)
	defer h.untrack(s)

	h.handleConnection(r.Context(), s)
}

// Sessions returns the number of open sessions
func (h *WebSocketHandler) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// CloseAll closes every open session
func (h *WebSocketHandler) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	deadline := time.Now().Add(time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown")
	for _, s := range h.sessions {
		s.conn.WriteControl(websocket.CloseMessage, msg, deadline)
		s.conn.Close()
	}
}

func (h *WebSocketHandler) track(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.id] = s
}

func (h *WebSocketHandler) untrack(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s.id)
}

// handleConnection reads messages until the peer goes away
func (h *WebSocketHandler) handleConnection(ctx context.Context, s *session) {
	conn := s.conn
	defer conn.Close()

	h.logger.Info("WebSocket session opened",
		"session", s.id,
		"remote", conn.RemoteAddr().String(),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if h.pingInterval > 0 {
		pongWait := 2 * h.pingInterval
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		go h.keepAlive(ctx, s)
	} else {
		conn.SetReadDeadline(time.Time{})
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "session", s.id, "error", err)
			} else {
				h.logger.Info("WebSocket session closed", "session", s.id)
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendError(s, CodeInvalidPayload, "Malformed message: "+err.Error())
			continue
		}

		h.handleMessage(ctx, s, msg)
	}
}

// keepAlive pings the peer until ctx ends
func (h *WebSocketHandler) keepAlive(ctx context.Context, s *session) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				h.logger.Debug("Ping failed", "session", s.id, "error", err)
				return
			}
		}
	}
}

func (h *WebSocketHandler) handleMessage(ctx context.Context, s *session, msg WSMessage) {
	switch msg.Type {
	case TypePing:
		h.sendResponse(s, WSResponse{Type: TypePong})

	case TypeState:
		h.sendDisplay(s, s.engine.Display())

	case TypePress:
		var payload WSPressPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Button == "" {
			h.sendError(s, CodeInvalidPayload, "Invalid press payload")
			return
		}

		d, err := keypad.Press(s.engine, payload.Button)
		var unknown *keypad.UnknownButtonError
		if errors.As(err, &unknown) {
			h.sendError(s, CodeUnknownButton, unknown.Error())
			return
		}

		h.logger.Debug("Button pressed",
			"session", s.id,
			"button", payload.Button,
			"live", d.Live,
			"history", d.History,
		)
		h.sendDisplay(s, d)

	case TypeTheme:
		var payload WSThemePayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(s, CodeInvalidPayload, "Invalid theme payload")
				return
			}
		}
		h.handleTheme(ctx, s, payload)

	default:
		h.sendError(s, CodeUnknownType, "Unknown message type: "+msg.Type)
	}
}

func (h *WebSocketHandler) handleTheme(ctx context.Context, s *session, payload WSThemePayload) {
	if h.store == nil {
		h.sendError(s, CodePreferencesUnavailable, "No preferences store configured")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var (
		theme preferences.Theme
		err   error
	)
	if payload.Toggle {
		theme, err = preferences.Toggle(ctx, h.store)
	} else {
		var p preferences.Preferences
		p, err = h.store.Load(ctx)
		theme = p.Theme()
	}
	if err != nil {
		h.logger.Warn("Preferences access failed", "session", s.id, "error", err)
		h.sendError(s, CodePreferencesUnavailable, err.Error())
		return
	}

	h.sendResponse(s, WSResponse{Type: TypeTheme, Payload: WSThemeResponse{Theme: string(theme)}})
}

func (h *WebSocketHandler) sendDisplay(s *session, d calculator.Display) {
	h.sendResponse(s, WSResponse{
		Type: TypeDisplay,
		Payload: WSDisplayPayload{
			Session: s.id,
			Live:    d.Live,
			History: d.History,
		},
	})
}

// sendResponse sends a response message via WebSocket
func (h *WebSocketHandler) sendResponse(s *session, resp WSResponse) {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(resp); err != nil {
		h.logger.Warn("WebSocket send error", "session", s.id, "error", err)
	}
}

// sendError sends an error response via WebSocket
func (h *WebSocketHandler) sendError(s *session, code, message string) {
	h.sendResponse(s, WSResponse{
		Type: TypeError,
		Payload: WSErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}
