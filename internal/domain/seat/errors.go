package seat

import "errors"

// Seat ドメインのエラー定義
var (
	ErrSeatNotFound      = errors.New("座席が見つかりません")
	ErrSeatNotInSession  = errors.New("座席は指定された上映のものではありません")
	ErrSessionIDRequired = errors.New("上映IDは必須です")
	ErrInvalidPosition   = errors.New("列番号と座席番号は1以上である必要があります")
	ErrInvalidLayout     = errors.New("座席配置は0以上である必要があります")
	ErrLayoutTooLarge    = errors.New("列数と1列あたりの座席数は100以下である必要があります")
)
