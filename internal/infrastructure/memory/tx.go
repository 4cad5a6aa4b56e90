package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
)

// Tx は行ロックと未コミットの変更を保持する
type Tx struct {
	store *Store

	mu     sync.Mutex
	done   bool
	held   map[string]chan struct{}
	staged []func(*Store)

	decremented map[int64]int
	claimed     map[int64]bool
}

func newTx(s *Store) *Tx {
	return &Tx{
		store:       s,
		held:        make(map[string]chan struct{}),
		decremented: make(map[int64]int),
		claimed:     make(map[int64]bool),
	}
}

// Commit は変更をストアへ反映し行ロックを解放する
func (t *Tx) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return transaction.ErrTxDone
	}
	t.store.mu.Lock()
	for _, apply := range t.staged {
		apply(t.store)
	}
	t.store.mu.Unlock()
	t.finish()
	return nil
}

// Rollback は変更を破棄し行ロックを解放する
func (t *Tx) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return transaction.ErrTxDone
	}
	t.finish()
	return nil
}

func (t *Tx) finish() {
	t.staged = nil
	for key, ch := range t.held {
		<-ch
		delete(t.held, key)
	}
	t.done = true
}

// lock は行ロックを取得する。同じトランザクション内では再取得しない
func (t *Tx) lock(ctx context.Context, key string) error {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return transaction.ErrTxDone
	}
	if _, ok := t.held[key]; ok {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	ch := t.store.rowLock(key)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("行ロック待機を中断: %w", ctx.Err())
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		<-ch
		return transaction.ErrTxDone
	}
	t.held[key] = ch
	return nil
}

func (t *Tx) stage(apply func(*Store)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return transaction.ErrTxDone
	}
	t.staged = append(t.staged, apply)
	return nil
}

// unwrapTx は transaction.Tx からメモリ実装のトランザクションを取り出す
func unwrapTx(tx transaction.Tx) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t == nil {
		return nil, transaction.ErrForeignTx
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil, transaction.ErrTxDone
	}
	return t, nil
}

func sessionKey(id int64) string { return fmt.Sprintf("session:%d", id) }

func seatKey(id int64) string { return fmt.Sprintf("seat:%d", id) }

func ticketSeatKey(sessionID, seatID int64) string {
	return fmt.Sprintf("ticket:%d:%d", sessionID, seatID)
}
