package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/application"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/film"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/ticket"
)

// MockFilmService はFilmServiceInterfaceのモック
type MockFilmService struct {
	mock.Mock
}

func (m *MockFilmService) CreateFilm(ctx context.Context, input application.CreateFilmInput) (*film.Film, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*film.Film), args.Error(1)
}

func (m *MockFilmService) GetFilm(ctx context.Context, id int64) (*film.Film, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*film.Film), args.Error(1)
}

// MockSessionService はSessionServiceInterfaceのモック
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) ScheduleSession(ctx context.Context, input application.ScheduleSessionInput) (*session.Session, []*seat.Seat, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*session.Session), args.Get(1).([]*seat.Seat), args.Error(2)
}

func (m *MockSessionService) GetSession(ctx context.Context, id int64) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) ListSessions(ctx context.Context, input application.ListSessionsInput) ([]*session.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*session.Session), args.Error(1)
}

func (m *MockSessionService) DeleteSession(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSessionService) ListSeats(ctx context.Context, sessionID int64) ([]*seat.Seat, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*seat.Seat), args.Error(1)
}

func (m *MockSessionService) ListFreeSeats(ctx context.Context, sessionID int64) ([]*seat.Seat, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*seat.Seat), args.Error(1)
}

func (m *MockSessionService) CountFreeSeats(ctx context.Context, sessionID int64) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

func (m *MockSessionService) CountOccupiedSeats(ctx context.Context, sessionID int64) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

// MockTicketService はTicketServiceInterfaceのモック
type MockTicketService struct {
	mock.Mock
}

func (m *MockTicketService) GetTicket(ctx context.Context, id int64) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

func (m *MockTicketService) ListUserTickets(ctx context.Context, userID int64) ([]*ticket.Ticket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ticket.Ticket), args.Error(1)
}

func (m *MockTicketService) GetTicketDetail(ctx context.Context, id int64) (*application.TicketDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.TicketDetail), args.Error(1)
}

// MockReservationService はReservationServiceInterfaceのモック
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) ReserveSeat(ctx context.Context, input application.ReserveSeatInput) (*ticket.Ticket, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}
