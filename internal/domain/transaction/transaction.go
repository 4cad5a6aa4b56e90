package transaction

import (
	"context"
	"errors"
)

var (
	// ErrTxDone はコミットまたはロールバック済みのトランザクションを使用したことを表す
	ErrTxDone = errors.New("トランザクションは既に終了しています")
	// ErrForeignTx は別の保存層のトランザクションが渡されたことを表す
	ErrForeignTx = errors.New("この保存層のトランザクションではありません")
)

// Tx は1回の処理単位を表すインターフェース。
// リポジトリの更新系メソッドには必ず明示的に渡す
type Tx interface {
	// Commit はトランザクションをコミットする
	Commit() error
	// Rollback はトランザクションをロールバックする。終了済みの場合は ErrTxDone 相当を返す
	Rollback() error
}

// Manager はトランザクションを管理するインターフェース
type Manager interface {
	// Begin は新しいトランザクションを開始する
	Begin(ctx context.Context) (Tx, error)
}
