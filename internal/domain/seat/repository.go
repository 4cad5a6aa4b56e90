package seat

import (
	"context"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
)

// Repository は座席リポジトリのインターフェース
type Repository interface {
	// CreateBulk は複数の座席を一括作成する（トランザクション必須）
	CreateBulk(ctx context.Context, tx transaction.Tx, seats []*Seat) error

	// GetByID はIDから座席を取得する
	GetByID(ctx context.Context, id int64) (*Seat, error)

	// GetBySessionID は上映の座席一覧を行・番号順に取得する
	GetBySessionID(ctx context.Context, sessionID int64) ([]*Seat, error)

	// GetFreeBySessionID は上映の空き座席一覧を取得する
	GetFreeBySessionID(ctx context.Context, sessionID int64) ([]*Seat, error)

	// TryClaimSeat は上映に属する空き座席の場合のみ使用中にする（条件付き更新、トランザクション必須）
	TryClaimSeat(ctx context.Context, tx transaction.Tx, seatID, sessionID int64) (bool, error)

	// CountOccupiedBySessionID は上映の使用中座席数を取得する
	CountOccupiedBySessionID(ctx context.Context, sessionID int64) (int, error)
}
