package film

import "context"

// Repository は作品リポジトリのインターフェース
type Repository interface {
	// Create は新しい作品を作成する
	Create(ctx context.Context, f *Film) error

	// GetByID はIDから作品を取得する
	GetByID(ctx context.Context, id int64) (*Film, error)
}
