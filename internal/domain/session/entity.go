package session

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/money"
)

// MaxTotalSeats は1上映あたりの座席数の上限
const MaxTotalSeats = 10000

// Session は作品の1回の上映を表す
type Session struct {
	ID          int64
	FilmID      int64
	FilmName    string // 一覧・詳細取得時のみ設定される
	StartsAt    time.Time
	TicketPrice decimal.Decimal
	TotalSeats  int
	FreeSeats   int // 販売可能な残席数。予約時の条件付き減算でのみ更新される
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession は新しい上映を作成する。空席数は総座席数で初期化される
func NewSession(filmID int64, startsAt time.Time, ticketPrice decimal.Decimal, totalSeats int) *Session {
	now := time.Now()
	return &Session{
		FilmID:      filmID,
		StartsAt:    startsAt,
		TicketPrice: ticketPrice,
		TotalSeats:  totalSeats,
		FreeSeats:   totalSeats,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasFreeSeats は販売可能な座席が残っているかを返す
func (s *Session) HasFreeSeats() bool {
	return s.FreeSeats > 0
}

// OccupiedSeats は販売済みの座席数を返す
func (s *Session) OccupiedSeats() int {
	return s.TotalSeats - s.FreeSeats
}

// Validate は上映の検証を行う
func (s *Session) Validate() error {
	if s.FilmID <= 0 {
		return ErrFilmIDRequired
	}
	if s.StartsAt.IsZero() {
		return ErrStartsAtRequired
	}
	if !money.IsValidPrice(s.TicketPrice) {
		return ErrInvalidTicketPrice
	}
	// 総座席数0の上映は許可する（全ての予約が満席として扱われる）
	if s.TotalSeats < 0 || s.TotalSeats > MaxTotalSeats {
		return ErrInvalidTotalSeats
	}
	if s.FreeSeats < 0 || s.FreeSeats > s.TotalSeats {
		return ErrInvalidFreeSeats
	}
	return nil
}
