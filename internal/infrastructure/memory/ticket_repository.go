package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/ticket"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
)

// TicketRepository はチケットリポジトリのメモリ実装
type TicketRepository struct{ store *Store }

func NewTicketRepository(s *Store) *TicketRepository { return &TicketRepository{store: s} }

// Insert は (上映, 座席) の一意性と参照先の存在を確認してから追加をトランザクションに積む
func (r *TicketRepository) Insert(ctx context.Context, tx transaction.Tx, tk *ticket.Ticket) error {
	t, err := unwrapTx(tx)
	if err != nil {
		return err
	}
	// 一意制約の代わりに (上映, 座席) 単位でロックする
	if err := t.lock(ctx, ticketSeatKey(tk.SessionID, tk.SeatID)); err != nil {
		return err
	}

	r.store.mu.RLock()
	_, sessionExists := r.store.sessions[tk.SessionID]
	_, seatExists := r.store.seats[tk.SeatID]
	duplicate := false
	for _, existing := range r.store.tickets {
		if existing.SessionID == tk.SessionID && existing.SeatID == tk.SeatID {
			duplicate = true
			break
		}
	}
	r.store.mu.RUnlock()

	switch {
	case !sessionExists:
		return fmt.Errorf("チケット追加に失敗: %w", session.ErrSessionNotFound)
	case !seatExists:
		return fmt.Errorf("チケット追加に失敗: %w", seat.ErrSeatNotFound)
	case duplicate:
		return ticket.ErrTicketAlreadyExists
	}

	tk.ID = r.store.nextID("tickets")
	row := *tk
	return t.stage(func(st *Store) {
		st.tickets[row.ID] = row
	})
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*ticket.Ticket, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	row, ok := r.store.tickets[id]
	if !ok {
		return nil, ticket.ErrTicketNotFound
	}
	return &row, nil
}

func (r *TicketRepository) GetByUserID(ctx context.Context, userID int64) ([]*ticket.Ticket, error) {
	r.store.mu.RLock()
	result := make([]*ticket.Ticket, 0)
	for _, row := range r.store.tickets {
		if row.UserID == userID {
			tk := row
			result = append(result, &tk)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

var _ ticket.Repository = (*TicketRepository)(nil)
