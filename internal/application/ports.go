package application

import (
	"context"
	"time"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/ticket"
)

// SeatCache は上映ごとの空席数の表示用キャッシュ
type SeatCache interface {
	GetFreeCount(ctx context.Context, sessionID int64) (int, error)
	SetFreeCount(ctx context.Context, sessionID int64, count int, ttl time.Duration) error
	Invalidate(ctx context.Context, sessionID int64) error
}

// TicketPublisher は発券イベントを外部へ送信する
type TicketPublisher interface {
	PublishTicketIssued(ctx context.Context, event ticket.IssuedEvent) error
}
