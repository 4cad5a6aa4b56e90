package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/ticket"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
)

type ticketRow struct {
	ID        int64           `db:"id"`
	SessionID int64           `db:"session_id"`
	UserID    int64           `db:"user_id"`
	SeatID    int64           `db:"seat_id"`
	Price     decimal.Decimal `db:"price"`
	CreatedAt time.Time       `db:"created_at"`
}

func (r *ticketRow) toEntity() *ticket.Ticket {
	return &ticket.Ticket{
		ID: r.ID, SessionID: r.SessionID, UserID: r.UserID, SeatID: r.SeatID,
		Price: r.Price, CreatedAt: r.CreatedAt,
	}
}

const ticketColumns = `id, session_id, user_id, seat_id, price, created_at`

// TicketRepository はチケットリポジトリのPostgreSQL実装
type TicketRepository struct{ db *sqlx.DB }

func NewTicketRepository(db *sqlx.DB) *TicketRepository { return &TicketRepository{db: db} }

// Insert はチケットを追加する。(session_id, seat_id) の一意制約違反は ErrTicketAlreadyExists になる
func (r *TicketRepository) Insert(ctx context.Context, tx transaction.Tx, t *ticket.Ticket) error {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}
	query := `INSERT INTO tickets (session_id, user_id, seat_id, price, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = sqlxTx.QueryRowContext(ctx, query, t.SessionID, t.UserID, t.SeatID, t.Price, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			return ticket.ErrTicketAlreadyExists
		case codeForeignKeyViolation:
			return fmt.Errorf("チケット追加に失敗: %w", seat.ErrSeatNotFound)
		}
		return fmt.Errorf("チケット追加に失敗: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*ticket.Ticket, error) {
	var row ticketRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("チケット取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *TicketRepository) GetByUserID(ctx context.Context, userID int64) ([]*ticket.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	var rows []ticketRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("チケット一覧取得に失敗: %w", err)
	}
	tickets := make([]*ticket.Ticket, len(rows))
	for i := range rows {
		tickets[i] = rows[i].toEntity()
	}
	return tickets, nil
}

var _ ticket.Repository = (*TicketRepository)(nil)
