package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/application"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
)

func newSessionTestEcho(s SessionServiceInterface) *echo.Echo {
	e := NewTestEcho()
	h := NewSessionHandler(s)
	e.POST("/sessions", h.Create)
	e.GET("/sessions", h.List)
	e.GET("/sessions/:id", h.GetByID)
	e.DELETE("/sessions/:id", h.Delete)
	e.GET("/sessions/:id/seats", h.ListSeats)
	e.GET("/sessions/:id/seats/free/count", h.CountFreeSeats)
	e.GET("/sessions/:id/seats/occupied/count", h.CountOccupiedSeats)
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSessionHandler_Create(t *testing.T) {
	startsAt := time.Date(2025, 12, 31, 18, 0, 0, 0, time.FixedZone("JST", 9*60*60))

	t.Run("上映と座席を作成できる", func(t *testing.T) {
		mockService := new(MockSessionService)
		se := &session.Session{ID: 5, FilmID: 1, StartsAt: startsAt, TicketPrice: decimal.RequireFromString("1800"), TotalSeats: 2, FreeSeats: 2}
		seats := []*seat.Seat{
			{ID: 10, SessionID: 5, RowNumber: 1, PlaceNumber: 1},
			{ID: 11, SessionID: 5, RowNumber: 1, PlaceNumber: 2},
		}
		mockService.On("ScheduleSession", mock.Anything, mock.MatchedBy(func(in application.ScheduleSessionInput) bool {
			return in.FilmID == 1 && in.StartsAt.Equal(startsAt) && in.TicketPrice.Equal(decimal.RequireFromString("1800")) &&
				in.Rows == 1 && in.PlacesPerRow == 2
		})).Return(se, seats, nil)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodPost, "/sessions",
			`{"film_id":1,"starts_at":"2025-12-31T18:00:00+09:00","ticket_price":"1800","rows":1,"places_per_row":2}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp ScheduleSessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(5), resp.Session.ID)
		assert.Equal(t, 2, resp.Session.FreeSeats)
		assert.Len(t, resp.Seats, 2)
		mockService.AssertExpectations(t)
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "不正なJSON", body: "invalid"},
		{name: "作品IDなし", body: `{"starts_at":"2025-12-31T18:00:00+09:00","rows":1,"places_per_row":1}`},
		{name: "開始日時の形式が不正", body: `{"film_id":1,"starts_at":"tomorrow","rows":1,"places_per_row":1}`},
		{name: "行数が負", body: `{"film_id":1,"starts_at":"2025-12-31T18:00:00+09:00","rows":-1,"places_per_row":1}`},
		{name: "行数が上限超過", body: `{"film_id":1,"starts_at":"2025-12-31T18:00:00+09:00","rows":101,"places_per_row":1}`},
		{name: "桁あふれする配置", body: `{"film_id":1,"starts_at":"2025-12-31T18:00:00+09:00","rows":4294967296,"places_per_row":4294967296}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockSessionService)

			rec := doRequest(newSessionTestEcho(mockService), http.MethodPost, "/sessions", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			mockService.AssertNotCalled(t, "ScheduleSession", mock.Anything, mock.Anything)
		})
	}

	t.Run("負の価格はドメイン検証で400", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("ScheduleSession", mock.Anything, mock.Anything).Return(nil, nil, session.ErrInvalidTicketPrice)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodPost, "/sessions",
			`{"film_id":1,"starts_at":"2025-12-31T18:00:00+09:00","ticket_price":"-1","rows":1,"places_per_row":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), session.ErrInvalidTicketPrice.Error())
	})
}

func TestSessionHandler_List(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantInput application.ListSessionsInput
	}{
		{name: "既定値", query: "", wantInput: application.ListSessionsInput{}},
		{name: "作品名の降順", query: "?sort=film&order=desc", wantInput: application.ListSessionsInput{SortBy: "film", Descending: true}},
		{name: "空席ありのみ", query: "?sort=free_seats&available=true", wantInput: application.ListSessionsInput{SortBy: "free_seats", AvailableOnly: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockSessionService)
			mockService.On("ListSessions", mock.Anything, tt.wantInput).Return([]*session.Session{
				{ID: 1, FilmID: 1, FilmName: "羅生門", TotalSeats: 10, FreeSeats: 3},
			}, nil)

			rec := doRequest(newSessionTestEcho(mockService), http.MethodGet, "/sessions"+tt.query, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			var resp []SessionResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Len(t, resp, 1)
			assert.Equal(t, "羅生門", resp[0].FilmName)
			mockService.AssertExpectations(t)
		})
	}

	t.Run("並び順の値が不正", func(t *testing.T) {
		rec := doRequest(newSessionTestEcho(new(MockSessionService)), http.MethodGet, "/sessions?order=up", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("並び替え項目が不正", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("ListSessions", mock.Anything, mock.Anything).Return(nil, session.ErrInvalidSortField)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodGet, "/sessions?sort=price", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("空の一覧は空配列を返す", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("ListSessions", mock.Anything, mock.Anything).Return([]*session.Session{}, nil)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodGet, "/sessions", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestSessionHandler_GetAndDelete(t *testing.T) {
	t.Run("上映を取得できる", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("GetSession", mock.Anything, int64(7)).Return(&session.Session{ID: 7, FilmID: 1, TotalSeats: 4, FreeSeats: 1}, nil)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodGet, "/sessions/7", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"free_seats":1`)
	})

	t.Run("存在しない上映は404", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("GetSession", mock.Anything, int64(8)).Return(nil, session.ErrSessionNotFound)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodGet, "/sessions/8", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("上映を削除できる", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("DeleteSession", mock.Anything, int64(7)).Return(nil)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodDelete, "/sessions/7", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("存在しない上映の削除は404", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("DeleteSession", mock.Anything, int64(9)).Return(session.ErrSessionNotFound)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodDelete, "/sessions/9", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSessionHandler_Seats(t *testing.T) {
	seats := []*seat.Seat{{ID: 1, SessionID: 7, RowNumber: 1, PlaceNumber: 1}}

	t.Run("全座席を取得できる", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("ListSeats", mock.Anything, int64(7)).Return(seats, nil)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodGet, "/sessions/7/seats", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertNotCalled(t, "ListFreeSeats", mock.Anything, mock.Anything)
	})

	t.Run("空席のみを取得できる", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("ListFreeSeats", mock.Anything, int64(7)).Return(seats, nil)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodGet, "/sessions/7/seats?free=true", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertNotCalled(t, "ListSeats", mock.Anything, mock.Anything)
	})

	t.Run("free の値が不正", func(t *testing.T) {
		rec := doRequest(newSessionTestEcho(new(MockSessionService)), http.MethodGet, "/sessions/7/seats?free=maybe", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("空席数を取得できる", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("CountFreeSeats", mock.Anything, int64(7)).Return(12, nil)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodGet, "/sessions/7/seats/free/count", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"session_id":7,"count":12}`, rec.Body.String())
	})

	t.Run("販売済み座席数を取得できる", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("CountOccupiedSeats", mock.Anything, int64(7)).Return(3, nil)

		rec := doRequest(newSessionTestEcho(mockService), http.MethodGet, "/sessions/7/seats/occupied/count", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"session_id":7,"count":3}`, rec.Body.String())
	})
}
