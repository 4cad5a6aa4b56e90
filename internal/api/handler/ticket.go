package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/application"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/ticket"
)

type TicketHandler struct {
	reservationService ReservationServiceInterface
	ticketService      TicketServiceInterface
}

func NewTicketHandler(rs ReservationServiceInterface, ts TicketServiceInterface) *TicketHandler {
	return &TicketHandler{reservationService: rs, ticketService: ts}
}

type ReserveSeatRequest struct {
	SessionID int64           `json:"session_id" validate:"required,gt=0" example:"1"`
	SeatID    int64           `json:"seat_id" validate:"required,gt=0" example:"42"`
	Price     decimal.Decimal `json:"price" swaggertype:"string" example:"1800.00"`
}

type TicketResponse struct {
	ID        int64           `json:"id" example:"1"`
	SessionID int64           `json:"session_id" example:"1"`
	SeatID    int64           `json:"seat_id" example:"42"`
	UserID    int64           `json:"user_id" example:"7"`
	Price     decimal.Decimal `json:"price" swaggertype:"string" example:"1800.00"`
	CreatedAt string          `json:"created_at" example:"2025-12-06T10:00:00+09:00"`
}

type TicketDetailResponse struct {
	TicketID    int64           `json:"ticket_id" example:"1"`
	UserID      int64           `json:"user_id" example:"7"`
	FilmName    string          `json:"film_name" example:"七人の侍"`
	StartsAt    string          `json:"starts_at" example:"2025-12-31T18:00:00+09:00"`
	RowNumber   int             `json:"row_number" example:"3"`
	PlaceNumber int             `json:"place_number" example:"12"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"1800.00"`
	IssuedAt    string          `json:"issued_at" example:"2025-12-06T10:00:00+09:00"`
}

func toTicketResponse(t *ticket.Ticket) TicketResponse {
	return TicketResponse{
		ID:        t.ID,
		SessionID: t.SessionID,
		SeatID:    t.SeatID,
		UserID:    t.UserID,
		Price:     t.Price,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

// Reserve godoc
// @Summary 座席を予約してチケットを発券
// @Description 空席数の減算・座席の確保・チケット作成を1つのトランザクションで行います
// @Tags tickets
// @Accept json
// @Produce json
// @Param X-User-ID header int true "ユーザーID"
// @Param request body ReserveSeatRequest true "予約内容"
// @Success 201 {object} TicketResponse
// @Failure 400 {object} api.ErrorResponse "入力が不正（validation_error）"
// @Failure 401 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "満席（session_full）または座席が予約済み（seat_unavailable）"
// @Failure 503 {object} api.ErrorResponse "保存に失敗（persistence_failure、再試行可能）"
// @Router /tickets [post]
func (h *TicketHandler) Reserve(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	var req ReserveSeatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	t, err := h.reservationService.ReserveSeat(c.Request().Context(), application.ReserveSeatInput{
		SessionID: req.SessionID,
		SeatID:    req.SeatID,
		UserID:    userID,
		Price:     req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTicketResponse(t))
}

// ListMine godoc
// @Summary 自分のチケット一覧を取得
// @Description 新しい順に返します
// @Tags tickets
// @Produce json
// @Param X-User-ID header int true "ユーザーID"
// @Success 200 {array} TicketResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /tickets [get]
func (h *TicketHandler) ListMine(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	tickets, err := h.ticketService.ListUserTickets(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	res := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		res[i] = toTicketResponse(t)
	}
	return c.JSON(http.StatusOK, res)
}

// GetByID godoc
// @Summary チケットを取得
// @Tags tickets
// @Produce json
// @Param id path int true "チケットID"
// @Success 200 {object} TicketResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.ticketService.GetTicket(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponse(t))
}

// GetDetail godoc
// @Summary チケットの詳細を取得
// @Description 領収書の表示用に作品名・上映日時・座席位置を含めて返します
// @Tags tickets
// @Produce json
// @Param id path int true "チケットID"
// @Success 200 {object} TicketDetailResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /tickets/{id}/detail [get]
func (h *TicketHandler) GetDetail(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.ticketService.GetTicketDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TicketDetailResponse{
		TicketID:    d.TicketID,
		UserID:      d.UserID,
		FilmName:    d.FilmName,
		StartsAt:    d.StartsAt.Format(time.RFC3339),
		RowNumber:   d.RowNumber,
		PlaceNumber: d.PlaceNumber,
		Price:       d.Price,
		IssuedAt:    d.IssuedAt.Format(time.RFC3339),
	})
}
