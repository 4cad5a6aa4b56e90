package ticket

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/money"
)

// Ticket は完了した予約の証明。作成後は変更されない
type Ticket struct {
	ID        int64
	SessionID int64
	UserID    int64
	SeatID    int64
	Price     decimal.Decimal
	CreatedAt time.Time
}

// NewTicket は新しいチケットを作成する
func NewTicket(sessionID, userID, seatID int64, price decimal.Decimal) *Ticket {
	return &Ticket{
		SessionID: sessionID,
		UserID:    userID,
		SeatID:    seatID,
		Price:     price,
		CreatedAt: time.Now(),
	}
}

// Validate はチケットの検証を行う
func (t *Ticket) Validate() error {
	if t.SessionID <= 0 {
		return ErrSessionIDRequired
	}
	if t.SeatID <= 0 {
		return ErrSeatIDRequired
	}
	if t.UserID <= 0 {
		return ErrUserIDRequired
	}
	if !money.IsValidPrice(t.Price) {
		return ErrInvalidPrice
	}
	return nil
}
