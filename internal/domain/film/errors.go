package film

import "errors"

// Film ドメインのエラー定義
var (
	ErrFilmNotFound     = errors.New("作品が見つかりません")
	ErrFilmNameRequired = errors.New("作品名は必須です")
	ErrInvalidDuration  = errors.New("上映時間は1分以上である必要があります")
)
