package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/msto63/mdwcalc/internal/preferences"
	"github.com/msto63/mdwcalc/pkg/core/config"
	"github.com/msto63/mdwcalc/pkg/core/health"
)

type failingStore struct{}

func (failingStore) Load(ctx context.Context) (preferences.Preferences, error) {
	return preferences.Preferences{}, errors.New("disk on fire")
}

func (failingStore) Save(ctx context.Context, p preferences.Preferences) error {
	return errors.New("disk on fire")
}

func (failingStore) Close() error { return nil }

// response mirrors WSResponse with a raw payload for decoding in tests
type response struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newTestServer(t *testing.T, store preferences.Store) (*Server, *httptest.Server) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.PingInterval = 0

	srv, err := New(cfg, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + PathWebSocket
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg interface{}) response {
	t.Helper()
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var resp response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	return resp
}

func press(t *testing.T, conn *websocket.Conn, button string) WSDisplayPayload {
	t.Helper()
	resp := roundTrip(t, conn, WSMessage{
		Type:    TypePress,
		Payload: json.RawMessage(`{"button":"` + button + `"}`),
	})
	if resp.Type != TypeDisplay {
		t.Fatalf("press %q: got %s %s", button, resp.Type, resp.Payload)
	}
	var d WSDisplayPayload
	if err := json.Unmarshal(resp.Payload, &d); err != nil {
		t.Fatal(err)
	}
	return d
}

func decodeError(t *testing.T, resp response) WSErrorPayload {
	t.Helper()
	if resp.Type != TypeError {
		t.Fatalf("type = %s, want error", resp.Type)
	}
	var e WSErrorPayload
	if err := json.Unmarshal(resp.Payload, &e); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestPressChain(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts)

	var d WSDisplayPayload
	for _, b := range []string{"7", "+", "3", "*", "2", "="} {
		d = press(t, conn, b)
	}

	if d.Live != "20" {
		t.Errorf("live = %q, want 20", d.Live)
	}
	if d.History != "" {
		t.Errorf("history = %q, want empty", d.History)
	}
	if _, err := uuid.Parse(d.Session); err != nil {
		t.Errorf("session %q is not a UUID: %v", d.Session, err)
	}
}

func TestPressMultiDigit(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts)

	if d := press(t, conn, "12.5"); d.Live != "12.5" {
		t.Errorf("live = %q, want 12.5", d.Live)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	_, ts := newTestServer(t, nil)
	a := dial(t, ts)
	b := dial(t, ts)

	da := press(t, a, "5")
	resp := roundTrip(t, b, WSMessage{Type: TypeState})
	var db WSDisplayPayload
	if err := json.Unmarshal(resp.Payload, &db); err != nil {
		t.Fatal(err)
	}

	if da.Live != "5" || db.Live != "0" {
		t.Errorf("live a=%q b=%q, want 5 and 0", da.Live, db.Live)
	}
	if da.Session == db.Session {
		t.Error("sessions share an id")
	}
}

func TestPing(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts)

	if resp := roundTrip(t, conn, WSMessage{Type: TypePing}); resp.Type != TypePong {
		t.Errorf("type = %s, want pong", resp.Type)
	}
}

func TestErrorsKeepConnection(t *testing.T) {
	tests := []struct {
		name string
		msg  interface{}
		code string
	}{
		{"unknown type", WSMessage{Type: "divide"}, CodeUnknownType},
		{"unknown button", WSMessage{Type: TypePress, Payload: json.RawMessage(`{"button":"sqrt"}`)}, CodeUnknownButton},
		{"missing button", WSMessage{Type: TypePress}, CodeInvalidPayload},
		{"bad press payload", WSMessage{Type: TypePress, Payload: json.RawMessage(`[1]`)}, CodeInvalidPayload},
		{"bad theme payload", WSMessage{Type: TypeTheme, Payload: json.RawMessage(`"x"`)}, CodeInvalidPayload},
		{"no store", WSMessage{Type: TypeTheme}, CodePreferencesUnavailable},
	}

	_, ts := newTestServer(t, nil)
	conn := dial(t, ts)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := decodeError(t, roundTrip(t, conn, tt.msg))
			if e.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", e.Code, tt.code, e.Message)
			}
		})
	}

	// connection still usable
	if d := press(t, conn, "4"); d.Live != "4" {
		t.Errorf("live = %q, want 4", d.Live)
	}
}

func TestMalformedMessage(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":`)); err != nil {
		t.Fatal(err)
	}
	var resp response
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if e := decodeError(t, resp); e.Code != CodeInvalidPayload {
		t.Errorf("code = %s, want %s", e.Code, CodeInvalidPayload)
	}
}

func TestTheme(t *testing.T) {
	store := preferences.NewMemoryStore()
	_, ts := newTestServer(t, store)
	conn := dial(t, ts)

	theme := func(msg WSMessage) string {
		resp := roundTrip(t, conn, msg)
		if resp.Type != TypeTheme {
			t.Fatalf("type = %s, want theme (%s)", resp.Type, resp.Payload)
		}
		var p WSThemeResponse
		if err := json.Unmarshal(resp.Payload, &p); err != nil {
			t.Fatal(err)
		}
		return p.Theme
	}

	if got := theme(WSMessage{Type: TypeTheme}); got != "light" {
		t.Errorf("initial theme = %s, want light", got)
	}
	if got := theme(WSMessage{Type: TypeTheme, Payload: json.RawMessage(`{"toggle":true}`)}); got != "dark" {
		t.Errorf("toggled theme = %s, want dark", got)
	}

	p, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !p.DarkMode {
		t.Error("toggle not persisted")
	}
}

func TestThemeStoreFailure(t *testing.T) {
	_, ts := newTestServer(t, failingStore{})
	conn := dial(t, ts)

	e := decodeError(t, roundTrip(t, conn, WSMessage{Type: TypeTheme, Payload: json.RawMessage(`{"toggle":true}`)}))
	if e.Code != CodePreferencesUnavailable {
		t.Errorf("code = %s, want %s", e.Code, CodePreferencesUnavailable)
	}
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		name   string
		store  preferences.Store
		status health.Status
	}{
		{"with store", preferences.NewMemoryStore(), health.StatusHealthy},
		{"without store", nil, health.StatusDegraded},
		{"broken store", failingStore{}, health.StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newTestServer(t, tt.store)

			resp, err := http.Get(ts.URL + PathHealth)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Errorf("status code = %d, want 200", resp.StatusCode)
			}
			var report health.Report
			if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
				t.Fatal(err)
			}
			if report.Status != tt.status {
				t.Errorf("status = %s, want %s", report.Status, tt.status)
			}
			if len(report.Checks) != 3 {
				t.Errorf("checks = %d, want 3", len(report.Checks))
			}
		})
	}
}

func TestOriginChecker(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no list", nil, "http://evil.example", true},
		{"wildcard", []string{"*"}, "http://evil.example", true},
		{"listed", []string{"http://localhost:3000"}, "http://localhost:3000", true},
		{"unlisted", []string{"http://localhost:3000"}, "http://evil.example", false},
		{"no origin header", []string{"http://localhost:3000"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, PathWebSocket, nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := originChecker(tt.allowed)(r); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRejectedOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowedOrigins = []string{"http://localhost:3000"}
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + PathWebSocket
	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %v", resp)
	}
}

func TestStartAsyncAndStop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 0
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := srv.StartAsync(); err != nil {
		t.Fatalf("StartAsync: %v", err)
	}

	url := "ws://" + srv.Address() + PathWebSocket
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if resp := roundTrip(t, conn, WSMessage{Type: TypePing}); resp.Type != TypePong {
		t.Fatalf("type = %s, want pong", resp.Type)
	}
	if n := srv.ws.Sessions(); n != 1 {
		t.Errorf("sessions = %d, want 1", n)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected session to be closed")
	}
}

func TestConfigFrom(t *testing.T) {
	sc := config.Default().Server
	sc.Port = 9999
	sc.PingInterval = config.Duration{Duration: 5 * time.Second}
	sc.AllowedOrigins = []string{"http://localhost:3000"}

	cfg := ConfigFrom(sc)
	if cfg.Host != "127.0.0.1" || cfg.Port != 9999 {
		t.Errorf("address = %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.PingInterval != 5*time.Second {
		t.Errorf("ping interval = %v", cfg.PingInterval)
	}
	if len(cfg.AllowedOrigins) != 1 {
		t.Errorf("allowed origins = %v", cfg.AllowedOrigins)
	}

	// zero values fall back to the defaults
	cfg = ConfigFrom(config.ServerConfig{})
	if cfg.Port != DefaultConfig().Port || cfg.ReadTimeout != DefaultConfig().ReadTimeout {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestNewRejectsInvalidPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 70000
	if _, err := New(cfg, nil); err == nil {
		t.Error("expected error")
	}
}
