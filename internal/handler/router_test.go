package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ssirawiitch/Socket-Programming/internal/app/chat"
	"github.com/ssirawiitch/Socket-Programming/internal/configs"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &configs.AppConfig{
		Environment:    "development",
		Port:           8080,
		AllowedOrigins: []string{},
	}

	srv := httptest.NewServer(Router(chat.NewHub(), cfg))
	t.Cleanup(srv.Close)
	return srv
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}

	var ev map[string]any
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("invalid event JSON %q: %v", raw, err)
	}
	return ev
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}

	var body struct {
		Code int `json:"code"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != 0 {
		t.Errorf("code = %d, want 0", body.Code)
	}
}

func TestWebSocketHandshakeFlow(t *testing.T) {
	srv := newTestServer(t)
	conn := dialWS(t, srv)

	err := conn.WriteJSON(map[string]any{
		"type":     "handshake",
		"username": "alice",
		"avatar":   "alice.png",
	})
	if err != nil {
		t.Fatalf("write handshake: %v", err)
	}

	// After a successful handshake the client receives the group snapshot, the
	// roster including itself, and the join notice.
	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		ev := readEvent(t, conn)
		typ, _ := ev["type"].(string)
		seen[typ] = true

		if typ == "user_list" {
			users, _ := ev["users"].([]any)
			if len(users) != 1 {
				t.Errorf("roster size = %d, want 1", len(users))
			}
		}
	}

	for _, want := range []string{"group_list", "user_list", "system"} {
		if !seen[want] {
			t.Errorf("missing %q event after handshake (got %v)", want, seen)
		}
	}
}

func TestWebSocketDuplicateNameClosed(t *testing.T) {
	srv := newTestServer(t)

	first := dialWS(t, srv)
	if err := first.WriteJSON(map[string]any{"type": "handshake", "username": "alice"}); err != nil {
		t.Fatalf("write handshake: %v", err)
	}
	// Wait until the first registration is visible.
	readEvent(t, first)

	second := dialWS(t, srv)
	if err := second.WriteJSON(map[string]any{"type": "handshake", "username": "alice"}); err != nil {
		t.Fatalf("write duplicate handshake: %v", err)
	}

	ev := readEvent(t, second)
	if ev["type"] != "error" {
		t.Fatalf("expected error event, got %v", ev)
	}
	if ev["message"] != "Username already exists" {
		t.Errorf("message = %v, want %q", ev["message"], "Username already exists")
	}

	// The connection is closed after the error event.
	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := second.ReadMessage(); err == nil {
		t.Error("expected connection to be closed after duplicate-name error")
	}
}

func TestInboundEventRateLimited(t *testing.T) {
	srv := newTestServer(t)
	conn := dialWS(t, srv)

	if err := conn.WriteJSON(map[string]any{"type": "handshake", "username": "alice"}); err != nil {
		t.Fatalf("write handshake: %v", err)
	}
	for i := 0; i < 3; i++ {
		readEvent(t, conn)
	}

	// Unknown event kinds produce no output, so the only thing the connection
	// can receive after this burst is the rate-limit error.
	for i := 0; i < 60; i++ {
		if err := conn.WriteJSON(map[string]any{"type": "noise"}); err != nil {
			t.Fatalf("write event %d: %v", i, err)
		}
	}

	ev := readEvent(t, conn)
	if ev["type"] != "error" {
		t.Fatalf("expected error event, got %v", ev)
	}
	if code, _ := ev["code"].(float64); int(code) != 1001 {
		t.Errorf("error code = %v, want 1001", ev["code"])
	}

	// The limiter drops the excess events but keeps the connection open.
	if err := conn.WriteJSON(map[string]any{"type": "noise"}); err != nil {
		t.Errorf("connection closed after rate limiting: %v", err)
	}
}

func TestConnectRateLimited(t *testing.T) {
	srv := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	// The per-IP connect bucket holds ConnectBurst tokens; the next dial from
	// the same address is refused before the upgrade.
	for i := 0; i < ConnectBurst; i++ {
		conn := dialWS(t, srv)
		defer conn.Close()
	}

	_, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("dial over the connect burst succeeded")
	}
	if res == nil || res.StatusCode != http.StatusTooManyRequests {
		t.Errorf("over-burst dial response = %v, want 429", res)
	}
}
