package session

import (
	"context"
	"time"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
)

// SortField は上映一覧の並び替え項目
type SortField string

const (
	SortByDateTime  SortField = "datetime"
	SortByFilmName  SortField = "film"
	SortByFreeSeats SortField = "free_seats"
)

// ParseSortField は文字列から並び替え項目を取得する。空文字は日時順
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case "", SortByDateTime:
		return SortByDateTime, nil
	case SortByFilmName, SortByFreeSeats:
		return SortField(s), nil
	}
	return "", ErrInvalidSortField
}

// ListFilter は上映一覧の取得条件
type ListFilter struct {
	From       time.Time // この日時以降に開始する上映のみ
	SortBy     SortField
	Descending bool
}

// InventorySnapshot は上映ごとの在庫状態
type InventorySnapshot struct {
	SessionID     int64
	TotalSeats    int
	FreeSeats     int
	OccupiedSeats int
}

// Consistent は空席数と使用中座席数が整合しているかを返す
func (s InventorySnapshot) Consistent() bool {
	return s.FreeSeats == s.TotalSeats-s.OccupiedSeats
}

// Repository は上映リポジトリのインターフェース
type Repository interface {
	// Create は新しい上映を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, s *Session) error

	// GetByID はIDから上映を取得する
	GetByID(ctx context.Context, id int64) (*Session, error)

	// List は条件に合う上映一覧を取得する
	List(ctx context.Context, filter ListFilter) ([]*Session, error)

	// Delete は上映を削除する。座席とチケットも削除される
	Delete(ctx context.Context, id int64) error

	// TryDecrementFreeSeats は空席数が1以上の場合のみ1減らす（条件付き更新、トランザクション必須）
	TryDecrementFreeSeats(ctx context.Context, tx transaction.Tx, id int64) (bool, error)

	// GetFreeSeatCount は上映の空席数を取得する
	GetFreeSeatCount(ctx context.Context, id int64) (int, error)

	// InventorySnapshots は全上映の在庫状態を取得する
	InventorySnapshots(ctx context.Context) ([]InventorySnapshot, error)
}
