package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/film"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
)

// sessionRow はDBの行を表す構造体
type sessionRow struct {
	ID          int64           `db:"id"`
	FilmID      int64           `db:"film_id"`
	FilmName    string          `db:"film_name"`
	StartsAt    time.Time       `db:"starts_at"`
	TicketPrice decimal.Decimal `db:"ticket_price"`
	TotalSeats  int             `db:"total_seats"`
	FreeSeats   int             `db:"free_seats"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r *sessionRow) toEntity() *session.Session {
	return &session.Session{
		ID:          r.ID,
		FilmID:      r.FilmID,
		FilmName:    r.FilmName,
		StartsAt:    r.StartsAt,
		TicketPrice: r.TicketPrice,
		TotalSeats:  r.TotalSeats,
		FreeSeats:   r.FreeSeats,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const selectSessions = `
	SELECT s.id, s.film_id, f.name AS film_name, s.starts_at, s.ticket_price,
	       s.total_seats, s.free_seats, s.created_at, s.updated_at
	FROM sessions s
	JOIN films f ON f.id = s.film_id`

// 並び替え項目ごとの ORDER BY 句。同順位は開始日時とIDで決める
var sessionOrderColumns = map[session.SortField]string{
	session.SortByDateTime:  "s.starts_at %[1]s, s.id %[1]s",
	session.SortByFilmName:  "f.name %[1]s, s.starts_at %[1]s, s.id %[1]s",
	session.SortByFreeSeats: "s.free_seats %[1]s, s.starts_at %[1]s, s.id %[1]s",
}

// SessionRepository は上映リポジトリのPostgreSQL実装
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository はSessionRepositoryを作成する
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create は新しい上映を作成する
func (r *SessionRepository) Create(ctx context.Context, tx transaction.Tx, s *session.Session) error {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO sessions (film_id, starts_at, ticket_price, total_seats, free_seats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = sqlxTx.QueryRowContext(ctx, query,
		s.FilmID, s.StartsAt, s.TicketPrice, s.TotalSeats, s.FreeSeats, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return film.ErrFilmNotFound
		}
		return fmt.Errorf("上映作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDから上映を取得する
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*session.Session, error) {
	var row sessionRow
	if err := r.db.GetContext(ctx, &row, selectSessions+` WHERE s.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("上映取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// List は条件に合う上映一覧を取得する
func (r *SessionRepository) List(ctx context.Context, filter session.ListFilter) ([]*session.Session, error) {
	order, ok := sessionOrderColumns[filter.SortBy]
	if !ok {
		order = sessionOrderColumns[session.SortByDateTime]
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	query := selectSessions
	args := []interface{}{}
	if !filter.From.IsZero() {
		query += ` WHERE s.starts_at >= $1`
		args = append(args, filter.From)
	}
	query += " ORDER BY " + fmt.Sprintf(order, direction)

	var rows []sessionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("上映一覧取得に失敗: %w", err)
	}
	sessions := make([]*session.Session, len(rows))
	for i := range rows {
		sessions[i] = rows[i].toEntity()
	}
	return sessions, nil
}

// Delete は上映を削除する。座席とチケットは外部キーの ON DELETE CASCADE で削除される
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("上映削除に失敗: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("上映削除結果の取得に失敗: %w", err)
	}
	if rows == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

// TryDecrementFreeSeats は空席数が1以上の場合のみ1減らす。
// 条件付き UPDATE の行ロックにより、同じ上映への同時減算は直列化される
func (r *SessionRepository) TryDecrementFreeSeats(ctx context.Context, tx transaction.Tx, id int64) (bool, error) {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return false, err
	}
	query := `UPDATE sessions SET free_seats = free_seats - 1, updated_at = NOW() WHERE id = $1 AND free_seats > 0`
	result, err := sqlxTx.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("空席数の減算に失敗: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("空席数の減算結果の取得に失敗: %w", err)
	}
	return rows == 1, nil
}

// GetFreeSeatCount は上映の空席数を取得する
func (r *SessionRepository) GetFreeSeatCount(ctx context.Context, id int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT free_seats FROM sessions WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, session.ErrSessionNotFound
		}
		return 0, fmt.Errorf("空席数取得に失敗: %w", err)
	}
	return count, nil
}

type inventoryRow struct {
	SessionID     int64 `db:"session_id"`
	TotalSeats    int   `db:"total_seats"`
	FreeSeats     int   `db:"free_seats"`
	OccupiedSeats int   `db:"occupied_seats"`
}

// InventorySnapshots は全上映の空席数と使用中座席数を取得する
func (r *SessionRepository) InventorySnapshots(ctx context.Context) ([]session.InventorySnapshot, error) {
	query := `
		SELECT s.id AS session_id, s.total_seats, s.free_seats,
		       COUNT(st.id) FILTER (WHERE st.occupied) AS occupied_seats
		FROM sessions s
		LEFT JOIN seats st ON st.session_id = s.id
		GROUP BY s.id
		ORDER BY s.id
	`
	var rows []inventoryRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("在庫状態取得に失敗: %w", err)
	}
	snapshots := make([]session.InventorySnapshot, len(rows))
	for i, row := range rows {
		snapshots[i] = session.InventorySnapshot{
			SessionID:     row.SessionID,
			TotalSeats:    row.TotalSeats,
			FreeSeats:     row.FreeSeats,
			OccupiedSeats: row.OccupiedSeats,
		}
	}
	return snapshots, nil
}

var _ session.Repository = (*SessionRepository)(nil)
