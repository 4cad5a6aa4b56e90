// Package memory はプロセス内で完結する在庫ストア。
// PostgreSQL 実装と同じリポジトリ・トランザクションのインターフェースを提供し、
// 行ロックはコミットまたはロールバックまで保持される
package memory

import (
	"context"
	"sync"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/film"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/ticket"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
)

// Store はコミット済みの状態を保持する
type Store struct {
	mu       sync.RWMutex
	films    map[int64]film.Film
	sessions map[int64]session.Session
	seats    map[int64]seat.Seat
	tickets  map[int64]ticket.Ticket
	seq      map[string]int64

	lockMu   sync.Mutex
	rowLocks map[string]chan struct{}
}

// NewStore は空のストアを作成する
func NewStore() *Store {
	return &Store{
		films:    make(map[int64]film.Film),
		sessions: make(map[int64]session.Session),
		seats:    make(map[int64]seat.Seat),
		tickets:  make(map[int64]ticket.Ticket),
		seq:      make(map[string]int64),
		rowLocks: make(map[string]chan struct{}),
	}
}

// Begin は新しいトランザクションを開始する
func (s *Store) Begin(ctx context.Context) (transaction.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newTx(s), nil
}

// nextID は採番する。ロールバックされても番号は戻らない
func (s *Store) nextID(table string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) rowLock(key string) chan struct{} {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	ch, ok := s.rowLocks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		s.rowLocks[key] = ch
	}
	return ch
}

// lockRow はトランザクション外で行ロックを取得する。戻り値で解放する
func (s *Store) lockRow(ctx context.Context, key string) (func(), error) {
	ch := s.rowLock(key)
	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

var _ transaction.Manager = (*Store)(nil)
