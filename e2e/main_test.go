package e2e

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/api"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/infrastructure/memory"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/pkg/metrics"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/server"
)

// TestServer はE2Eテスト用のサーバー
type TestServer struct {
	Echo     *echo.Echo
	Store    *memory.Store
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

// NewTestServer はインメモリストアで組み立てたサーバーを作成する。テストごとに独立している
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	e := server.New(server.Dependencies{
		TxManager:       store,
		SessionRepo:     memory.NewSessionRepository(store),
		SeatRepo:        memory.NewSeatRepository(store),
		TicketRepo:      memory.NewTicketRepository(store),
		FilmRepo:        memory.NewFilmRepository(store),
		Metrics:         m,
		MetricsGatherer: reg,
	})

	return &TestServer{Echo: e, Store: store, Registry: reg, Metrics: m}
}

// Request はHTTPリクエストを送信する。userID が0以外なら X-User-ID を付与する
func (s *TestServer) Request(method, path string, body interface{}, userID int64) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != 0 {
		req.Header.Set(api.HeaderUserID, strconv.FormatInt(userID, 10))
	}

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("レスポンスのデコードに失敗: %v (body=%s)", err, rec.Body.String())
	}
	return v
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body=%s)", rec.Code, want, rec.Body.String())
	}
}
