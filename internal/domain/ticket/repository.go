package ticket

import (
	"context"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
)

// Repository はチケットリポジトリのインターフェース
type Repository interface {
	// Insert はチケットを追加しIDを設定する（トランザクション必須）
	Insert(ctx context.Context, tx transaction.Tx, t *Ticket) error

	// GetByID はIDからチケットを取得する
	GetByID(ctx context.Context, id int64) (*Ticket, error)

	// GetByUserID はユーザーのチケット一覧を新しい順に取得する
	GetByUserID(ctx context.Context, userID int64) ([]*Ticket, error)
}
