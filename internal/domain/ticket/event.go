package ticket

import (
	"time"

	"github.com/shopspring/decimal"
)

// IssuedEvent は発券完了時に外部へ通知する内容
type IssuedEvent struct {
	TicketID  int64           `json:"ticket_id"`
	SessionID int64           `json:"session_id"`
	SeatID    int64           `json:"seat_id"`
	UserID    int64           `json:"user_id"`
	Price     decimal.Decimal `json:"price"`
	IssuedAt  time.Time       `json:"issued_at"`
}

// NewIssuedEvent はチケットから発券イベントを作成する
func NewIssuedEvent(t *Ticket) IssuedEvent {
	return IssuedEvent{
		TicketID:  t.ID,
		SessionID: t.SessionID,
		SeatID:    t.SeatID,
		UserID:    t.UserID,
		Price:     t.Price,
		IssuedAt:  t.CreatedAt,
	}
}
