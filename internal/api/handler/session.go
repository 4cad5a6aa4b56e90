package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/application"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
)

type SessionHandler struct {
	sessionService SessionServiceInterface
}

func NewSessionHandler(sessionService SessionServiceInterface) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type CreateSessionRequest struct {
	FilmID       int64           `json:"film_id" validate:"required,gt=0" example:"1"`
	StartsAt     string          `json:"starts_at" validate:"required" example:"2025-12-31T18:00:00+09:00"`
	TicketPrice  decimal.Decimal `json:"ticket_price" swaggertype:"string" example:"1800.00"`
	Rows         int             `json:"rows" validate:"gte=0,lte=100" example:"10"`
	PlacesPerRow int             `json:"places_per_row" validate:"gte=0,lte=100" example:"20"`
}

type SessionResponse struct {
	ID          int64           `json:"id" example:"1"`
	FilmID      int64           `json:"film_id" example:"1"`
	FilmName    string          `json:"film_name,omitempty" example:"七人の侍"`
	StartsAt    string          `json:"starts_at" example:"2025-12-31T18:00:00+09:00"`
	TicketPrice decimal.Decimal `json:"ticket_price" swaggertype:"string" example:"1800.00"`
	TotalSeats  int             `json:"total_seats" example:"200"`
	FreeSeats   int             `json:"free_seats" example:"120"`
}

type SeatResponse struct {
	ID          int64 `json:"id" example:"1"`
	SessionID   int64 `json:"session_id" example:"1"`
	RowNumber   int   `json:"row_number" example:"3"`
	PlaceNumber int   `json:"place_number" example:"12"`
	Occupied    bool  `json:"occupied" example:"false"`
}

type ScheduleSessionResponse struct {
	Session SessionResponse `json:"session"`
	Seats   []SeatResponse  `json:"seats"`
}

type SeatCountResponse struct {
	SessionID int64 `json:"session_id" example:"1"`
	Count     int   `json:"count" example:"120"`
}

func toSessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		ID:          s.ID,
		FilmID:      s.FilmID,
		FilmName:    s.FilmName,
		StartsAt:    s.StartsAt.Format(time.RFC3339),
		TicketPrice: s.TicketPrice,
		TotalSeats:  s.TotalSeats,
		FreeSeats:   s.FreeSeats,
	}
}

func toSeatResponses(seats []*seat.Seat) []SeatResponse {
	res := make([]SeatResponse, len(seats))
	for i, s := range seats {
		res[i] = SeatResponse{
			ID:          s.ID,
			SessionID:   s.SessionID,
			RowNumber:   s.RowNumber,
			PlaceNumber: s.PlaceNumber,
			Occupied:    s.Occupied,
		}
	}
	return res
}

// Create godoc
// @Summary 上映を登録
// @Description 上映と rows × places_per_row の座席をまとめて作成します
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "上映情報"
// @Success 201 {object} ScheduleSessionResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse "作品が存在しない"
// @Router /sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "上映開始日時の形式が不正です")
	}

	se, seats, err := h.sessionService.ScheduleSession(c.Request().Context(), application.ScheduleSessionInput{
		FilmID:       req.FilmID,
		StartsAt:     startsAt,
		TicketPrice:  req.TicketPrice,
		Rows:         req.Rows,
		PlacesPerRow: req.PlacesPerRow,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ScheduleSessionResponse{
		Session: toSessionResponse(se),
		Seats:   toSeatResponses(seats),
	})
}

// List godoc
// @Summary 上映一覧を取得
// @Description これから開始する上映を取得します
// @Tags sessions
// @Produce json
// @Param sort query string false "並び替え項目（datetime / film / free_seats）" default(datetime)
// @Param order query string false "並び順（asc / desc）" default(asc)
// @Param available query bool false "空席のある上映のみ"
// @Success 200 {array} SessionResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	var descending bool
	switch c.QueryParam("order") {
	case "", "asc":
	case "desc":
		descending = true
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "order の値が不正です")
	}
	availableOnly, err := parseBoolQuery(c, "available")
	if err != nil {
		return err
	}

	sessions, err := h.sessionService.ListSessions(c.Request().Context(), application.ListSessionsInput{
		SortBy:        c.QueryParam("sort"),
		Descending:    descending,
		AvailableOnly: availableOnly,
	})
	if err != nil {
		return err
	}

	res := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		res[i] = toSessionResponse(s)
	}
	return c.JSON(http.StatusOK, res)
}

// GetByID godoc
// @Summary 上映を取得
// @Tags sessions
// @Produce json
// @Param id path int true "上映ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	se, err := h.sessionService.GetSession(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(se))
}

// Delete godoc
// @Summary 上映を削除
// @Description 上映と座席・発券済みチケットを削除します
// @Tags sessions
// @Param id path int true "上映ID"
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.sessionService.DeleteSession(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSeats godoc
// @Summary 上映の座席一覧を取得
// @Tags seats
// @Produce json
// @Param id path int true "上映ID"
// @Param free query bool false "空席のみ"
// @Success 200 {array} SeatResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /sessions/{id}/seats [get]
func (h *SessionHandler) ListSeats(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	freeOnly, err := parseBoolQuery(c, "free")
	if err != nil {
		return err
	}

	var seats []*seat.Seat
	if freeOnly {
		seats, err = h.sessionService.ListFreeSeats(c.Request().Context(), id)
	} else {
		seats, err = h.sessionService.ListSeats(c.Request().Context(), id)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSeatResponses(seats))
}

// CountFreeSeats godoc
// @Summary 空席数を取得
// @Description 表示用の空席数を返します（キャッシュされる場合があります）
// @Tags seats
// @Produce json
// @Param id path int true "上映ID"
// @Success 200 {object} SeatCountResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /sessions/{id}/seats/free/count [get]
func (h *SessionHandler) CountFreeSeats(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	count, err := h.sessionService.CountFreeSeats(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SeatCountResponse{SessionID: id, Count: count})
}

// CountOccupiedSeats godoc
// @Summary 販売済み座席数を取得
// @Tags seats
// @Produce json
// @Param id path int true "上映ID"
// @Success 200 {object} SeatCountResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /sessions/{id}/seats/occupied/count [get]
func (h *SessionHandler) CountOccupiedSeats(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	count, err := h.sessionService.CountOccupiedSeats(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SeatCountResponse{SessionID: id, Count: count})
}
