package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
)

// SessionRepository は上映リポジトリのメモリ実装
type SessionRepository struct{ store *Store }

func NewSessionRepository(s *Store) *SessionRepository { return &SessionRepository{store: s} }

func (r *SessionRepository) Create(ctx context.Context, tx transaction.Tx, s *session.Session) error {
	t, err := unwrapTx(tx)
	if err != nil {
		return err
	}
	s.ID = r.store.nextID("sessions")
	row := *s
	row.FilmName = ""
	return t.stage(func(st *Store) {
		st.sessions[row.ID] = row
	})
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*session.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	row, ok := r.store.sessions[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return r.withFilmName(row), nil
}

func (r *SessionRepository) List(ctx context.Context, filter session.ListFilter) ([]*session.Session, error) {
	r.store.mu.RLock()
	result := make([]*session.Session, 0, len(r.store.sessions))
	for _, row := range r.store.sessions {
		if !filter.From.IsZero() && row.StartsAt.Before(filter.From) {
			continue
		}
		result = append(result, r.withFilmName(row))
	}
	r.store.mu.RUnlock()

	less := sessionLess(filter.SortBy)
	sort.SliceStable(result, func(i, j int) bool {
		if filter.Descending {
			return less(result[j], result[i])
		}
		return less(result[i], result[j])
	})
	return result, nil
}

func sessionLess(by session.SortField) func(a, b *session.Session) bool {
	byTime := func(a, b *session.Session) bool {
		if !a.StartsAt.Equal(b.StartsAt) {
			return a.StartsAt.Before(b.StartsAt)
		}
		return a.ID < b.ID
	}
	switch by {
	case session.SortByFilmName:
		return func(a, b *session.Session) bool {
			if c := strings.Compare(a.FilmName, b.FilmName); c != 0 {
				return c < 0
			}
			return byTime(a, b)
		}
	case session.SortByFreeSeats:
		return func(a, b *session.Session) bool {
			if a.FreeSeats != b.FreeSeats {
				return a.FreeSeats < b.FreeSeats
			}
			return byTime(a, b)
		}
	}
	return byTime
}

func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	unlock, err := r.store.lockRow(ctx, sessionKey(id))
	if err != nil {
		return err
	}
	defer unlock()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sessions[id]; !ok {
		return session.ErrSessionNotFound
	}
	delete(r.store.sessions, id)
	for seatID, s := range r.store.seats {
		if s.SessionID == id {
			delete(r.store.seats, seatID)
		}
	}
	for ticketID, tk := range r.store.tickets {
		if tk.SessionID == id {
			delete(r.store.tickets, ticketID)
		}
	}
	return nil
}

// TryDecrementFreeSeats は行ロックを取得したうえで空席数を確認し、減算をトランザクションに積む
func (r *SessionRepository) TryDecrementFreeSeats(ctx context.Context, tx transaction.Tx, id int64) (bool, error) {
	t, err := unwrapTx(tx)
	if err != nil {
		return false, err
	}
	if err := t.lock(ctx, sessionKey(id)); err != nil {
		return false, err
	}

	r.store.mu.RLock()
	row, ok := r.store.sessions[id]
	r.store.mu.RUnlock()
	if !ok {
		return false, nil
	}

	t.mu.Lock()
	if row.FreeSeats-t.decremented[id] <= 0 {
		t.mu.Unlock()
		return false, nil
	}
	t.decremented[id]++
	t.mu.Unlock()

	err = t.stage(func(st *Store) {
		if s, ok := st.sessions[id]; ok {
			s.FreeSeats--
			s.UpdatedAt = time.Now()
			st.sessions[id] = s
		}
	})
	return err == nil, err
}

func (r *SessionRepository) GetFreeSeatCount(ctx context.Context, id int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	row, ok := r.store.sessions[id]
	if !ok {
		return 0, session.ErrSessionNotFound
	}
	return row.FreeSeats, nil
}

func (r *SessionRepository) InventorySnapshots(ctx context.Context) ([]session.InventorySnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	occupied := make(map[int64]int, len(r.store.sessions))
	for _, s := range r.store.seats {
		if s.Occupied {
			occupied[s.SessionID]++
		}
	}
	snapshots := make([]session.InventorySnapshot, 0, len(r.store.sessions))
	for id, row := range r.store.sessions {
		snapshots = append(snapshots, session.InventorySnapshot{
			SessionID:     id,
			TotalSeats:    row.TotalSeats,
			FreeSeats:     row.FreeSeats,
			OccupiedSeats: occupied[id],
		})
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].SessionID < snapshots[j].SessionID })
	return snapshots, nil
}

// withFilmName は呼び出し元が r.store.mu を保持していること
func (r *SessionRepository) withFilmName(row session.Session) *session.Session {
	s := row
	if f, ok := r.store.films[row.FilmID]; ok {
		s.FilmName = f.Name
	}
	return &s
}

var _ session.Repository = (*SessionRepository)(nil)
