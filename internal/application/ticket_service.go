package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/ticket"
)

type TicketService struct {
	ticketRepo  ticket.Repository
	sessionRepo session.Repository
	seatRepo    seat.Repository
}

func NewTicketService(tr ticket.Repository, sr session.Repository, str seat.Repository) *TicketService {
	return &TicketService{ticketRepo: tr, sessionRepo: sr, seatRepo: str}
}

// TicketDetail は領収書の表示に必要な情報をまとめたもの
type TicketDetail struct {
	TicketID    int64
	UserID      int64
	FilmName    string
	StartsAt    time.Time
	RowNumber   int
	PlaceNumber int
	Price       decimal.Decimal
	IssuedAt    time.Time
}

func (s *TicketService) GetTicket(ctx context.Context, id int64) (*ticket.Ticket, error) {
	return s.ticketRepo.GetByID(ctx, id)
}

// ListUserTickets は利用者のチケットを新しい順に返す
func (s *TicketService) ListUserTickets(ctx context.Context, userID int64) ([]*ticket.Ticket, error) {
	if userID <= 0 {
		return nil, ticket.ErrUserIDRequired
	}
	return s.ticketRepo.GetByUserID(ctx, userID)
}

func (s *TicketService) GetTicketDetail(ctx context.Context, id int64) (*TicketDetail, error) {
	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	se, err := s.sessionRepo.GetByID(ctx, t.SessionID)
	if err != nil {
		return nil, fmt.Errorf("上映取得に失敗: %w", err)
	}
	st, err := s.seatRepo.GetByID(ctx, t.SeatID)
	if err != nil {
		return nil, fmt.Errorf("座席取得に失敗: %w", err)
	}
	return &TicketDetail{
		TicketID:    t.ID,
		UserID:      t.UserID,
		FilmName:    se.FilmName,
		StartsAt:    se.StartsAt,
		RowNumber:   st.RowNumber,
		PlaceNumber: st.PlaceNumber,
		Price:       t.Price,
		IssuedAt:    t.CreatedAt,
	}, nil
}
