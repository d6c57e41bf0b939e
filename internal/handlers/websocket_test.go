package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"reefermon/internal/models"
	"reefermon/internal/service"
	"reefermon/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", defaultInterval},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=5m", defaultInterval},
		{"interval_ms_too_large", "/ws?interval_ms=600000", defaultInterval},
		{"interval_invalid_string", "/ws?interval=bogus", defaultInterval},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", defaultInterval},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

func dialWS(t *testing.T, srv *httptest.Server, rawQuery string) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = rawQuery
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	return conn
}

func TestWebSocket_StatusStream_InitialAndPeriodic(t *testing.T) {
	temp := 3.2
	st := &mockStatus{snap: models.StatusSnapshot{
		AssetID:     7,
		AssetName:   "Reefer 7",
		Temperature: &temp,
		Unit:        models.UnitCelsius,
		Door:        models.DoorClosed,
	}}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&service.Service{Status: st}, nil)
	r.GET("/ws", h.wsLive)

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dialWS(t, srv, "asset=7&unit=c&interval_ms=20")
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	// Initial snapshot arrives before the first tick.
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "status" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var snap models.StatusSnapshot
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.AssetID != 7 || snap.Temperature == nil || *snap.Temperature != 3.2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if st.lastAssetID != 7 || st.lastUnit != "c" {
		t.Fatalf("query params not forwarded: asset=%d unit=%q", st.lastAssetID, st.lastUnit)
	}

	// A periodic tick follows.
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "status" {
		t.Fatalf("expected periodic status, got %+v", env)
	}
	if st.calls < 2 {
		t.Fatalf("expected at least 2 status fetches, got %d", st.calls)
	}
}

func TestWebSocket_MissingAsset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&service.Service{Status: &mockStatus{}}, nil)
	r.GET("/ws", h.wsLive)

	srv := httptest.NewServer(r)
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	_, resp, err := dialer.Dial(u.String(), nil)
	if err == nil {
		t.Fatal("expected handshake to fail without ?asset")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 response, got %+v", resp)
	}
}

func TestWebSocket_ServiceErrorSendsErrorEnvelope(t *testing.T) {
	st := &mockStatus{err: &telemetry.AuthError{Status: http.StatusUnauthorized}}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&service.Service{Status: st}, nil)
	r.GET("/ws", h.wsLive)

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dialWS(t, srv, "asset=7")
	defer conn.Close()

	var env wsEnvelope
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read error envelope: %v", err)
	}
	if env.Type != "error" || env.Error == "" {
		t.Fatalf("expected error envelope, got %+v", env)
	}
	// The connection closes after reporting the failure.
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected connection to close after error")
	}
}
