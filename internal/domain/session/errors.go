package session

import "errors"

// Session ドメインのエラー定義
var (
	ErrSessionNotFound    = errors.New("上映が見つかりません")
	ErrFilmIDRequired     = errors.New("作品IDは必須です")
	ErrStartsAtRequired   = errors.New("上映開始日時は必須です")
	ErrInvalidTicketPrice = errors.New("チケット価格は0以上1億未満、小数点以下2桁以内である必要があります")
	ErrInvalidTotalSeats  = errors.New("座席数は0以上10000以下である必要があります")
	ErrInvalidFreeSeats   = errors.New("空席数は0以上かつ座席数以下である必要があります")
	ErrInvalidSortField   = errors.New("並び替え項目が不正です")
)
