package ticket

import "errors"

// Ticket ドメインのエラー定義
var (
	ErrTicketNotFound      = errors.New("チケットが見つかりません")
	ErrTicketAlreadyExists = errors.New("同じ座席のチケットが既に存在します")
	ErrSessionIDRequired   = errors.New("上映IDは必須です")
	ErrSeatIDRequired      = errors.New("座席IDは必須です")
	ErrUserIDRequired      = errors.New("ユーザーIDは必須です")
	ErrInvalidPrice        = errors.New("価格は0以上1億未満、小数点以下2桁以内である必要があります")
)
