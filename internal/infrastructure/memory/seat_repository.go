package memory

import (
	"context"
	"sort"
	"time"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
)

// SeatRepository は座席リポジトリのメモリ実装
type SeatRepository struct{ store *Store }

func NewSeatRepository(s *Store) *SeatRepository { return &SeatRepository{store: s} }

func (r *SeatRepository) CreateBulk(ctx context.Context, tx transaction.Tx, seats []*seat.Seat) error {
	t, err := unwrapTx(tx)
	if err != nil {
		return err
	}
	rows := make([]seat.Seat, len(seats))
	for i, s := range seats {
		s.ID = r.store.nextID("seats")
		rows[i] = *s
	}
	return t.stage(func(st *Store) {
		for _, row := range rows {
			st.seats[row.ID] = row
		}
	})
}

func (r *SeatRepository) GetByID(ctx context.Context, id int64) (*seat.Seat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	row, ok := r.store.seats[id]
	if !ok {
		return nil, seat.ErrSeatNotFound
	}
	return &row, nil
}

func (r *SeatRepository) GetBySessionID(ctx context.Context, sessionID int64) ([]*seat.Seat, error) {
	return r.selectSeats(sessionID, func(seat.Seat) bool { return true }), nil
}

func (r *SeatRepository) GetFreeBySessionID(ctx context.Context, sessionID int64) ([]*seat.Seat, error) {
	return r.selectSeats(sessionID, func(s seat.Seat) bool { return !s.Occupied }), nil
}

func (r *SeatRepository) selectSeats(sessionID int64, keep func(seat.Seat) bool) []*seat.Seat {
	r.store.mu.RLock()
	result := make([]*seat.Seat, 0)
	for _, row := range r.store.seats {
		if row.SessionID == sessionID && keep(row) {
			s := row
			result = append(result, &s)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].RowNumber != result[j].RowNumber {
			return result[i].RowNumber < result[j].RowNumber
		}
		return result[i].PlaceNumber < result[j].PlaceNumber
	})
	return result
}

// TryClaimSeat は行ロックを取得したうえで座席の空きを確認し、使用中への変更をトランザクションに積む
func (r *SeatRepository) TryClaimSeat(ctx context.Context, tx transaction.Tx, seatID, sessionID int64) (bool, error) {
	t, err := unwrapTx(tx)
	if err != nil {
		return false, err
	}
	if err := t.lock(ctx, seatKey(seatID)); err != nil {
		return false, err
	}

	r.store.mu.RLock()
	row, ok := r.store.seats[seatID]
	r.store.mu.RUnlock()
	if !ok || row.SessionID != sessionID || row.Occupied {
		return false, nil
	}

	t.mu.Lock()
	if t.claimed[seatID] {
		t.mu.Unlock()
		return false, nil
	}
	t.claimed[seatID] = true
	t.mu.Unlock()

	err = t.stage(func(st *Store) {
		if s, ok := st.seats[seatID]; ok {
			s.Occupied = true
			s.UpdatedAt = time.Now()
			st.seats[seatID] = s
		}
	})
	return err == nil, err
}

func (r *SeatRepository) CountOccupiedBySessionID(ctx context.Context, sessionID int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	count := 0
	for _, row := range r.store.seats {
		if row.SessionID == sessionID && row.Occupied {
			count++
		}
	}
	return count, nil
}

var _ seat.Repository = (*SeatRepository)(nil)
