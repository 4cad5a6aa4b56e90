package handler

import (
	"context"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/application"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/film"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/ticket"
)

// FilmServiceInterface は作品サービスのインターフェース
type FilmServiceInterface interface {
	CreateFilm(ctx context.Context, input application.CreateFilmInput) (*film.Film, error)
	GetFilm(ctx context.Context, id int64) (*film.Film, error)
}

// SessionServiceInterface は上映サービスのインターフェース
type SessionServiceInterface interface {
	ScheduleSession(ctx context.Context, input application.ScheduleSessionInput) (*session.Session, []*seat.Seat, error)
	GetSession(ctx context.Context, id int64) (*session.Session, error)
	ListSessions(ctx context.Context, input application.ListSessionsInput) ([]*session.Session, error)
	DeleteSession(ctx context.Context, id int64) error
	ListSeats(ctx context.Context, sessionID int64) ([]*seat.Seat, error)
	ListFreeSeats(ctx context.Context, sessionID int64) ([]*seat.Seat, error)
	CountFreeSeats(ctx context.Context, sessionID int64) (int, error)
	CountOccupiedSeats(ctx context.Context, sessionID int64) (int, error)
}

// TicketServiceInterface はチケット照会サービスのインターフェース
type TicketServiceInterface interface {
	GetTicket(ctx context.Context, id int64) (*ticket.Ticket, error)
	ListUserTickets(ctx context.Context, userID int64) ([]*ticket.Ticket, error)
	GetTicketDetail(ctx context.Context, id int64) (*application.TicketDetail, error)
}

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	ReserveSeat(ctx context.Context, input application.ReserveSeatInput) (*ticket.Ticket, error)
}
