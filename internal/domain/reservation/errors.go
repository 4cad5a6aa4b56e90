package reservation

import (
	"errors"
	"fmt"
)

// 予約試行の結果として呼び出し側に返されるエラー。errors.Is で判別する
var (
	// ErrSessionFull は空席数の条件付き減算が拒否されたことを表す（再試行不要）
	ErrSessionFull = errors.New("上映の空席がありません")
	// ErrSeatUnavailable は座席の確保が拒否されたことを表す（別の座席を選ぶ）
	ErrSeatUnavailable = errors.New("座席は既に予約されています")
	// ErrPersistenceFailure は保存処理の失敗を表す。部分的な状態は残らないため再試行できる
	ErrPersistenceFailure = errors.New("予約の保存に失敗しました")
	// ErrValidation はトランザクション開始前に入力が拒否されたことを表す
	ErrValidation = errors.New("予約内容が不正です")
)

// Kind はメトリクスやログで使う結果の分類
type Kind string

const (
	KindSuccess            Kind = "success"
	KindSessionFull        Kind = "session_full"
	KindSeatUnavailable    Kind = "seat_unavailable"
	KindPersistenceFailure Kind = "persistence_failure"
	KindValidation         Kind = "validation_error"
	KindUnknown            Kind = "unknown"
)

// KindOf はエラーの分類を返す
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindSuccess
	case errors.Is(err, ErrSessionFull):
		return KindSessionFull
	case errors.Is(err, ErrSeatUnavailable):
		return KindSeatUnavailable
	case errors.Is(err, ErrPersistenceFailure):
		return KindPersistenceFailure
	case errors.Is(err, ErrValidation):
		return KindValidation
	}
	return KindUnknown
}

// Retryable は呼び出し側が予約全体を再試行してよいかを返す
func Retryable(err error) bool {
	return errors.Is(err, ErrPersistenceFailure)
}

// ValidationError は入力エラーを ErrValidation でラップする。ドメインエラーはチェーンに残る
func ValidationError(cause error) error {
	return fmt.Errorf("%w: %w", ErrValidation, cause)
}

// PersistenceError は保存層のエラーを ErrPersistenceFailure に変換する。
// 原因は文字列としてのみ保持し、ドライバー固有のエラー型は外に出さない
func PersistenceError(op string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistenceFailure, op, cause)
}
