package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
)

type seatRow struct {
	ID          int64     `db:"id"`
	SessionID   int64     `db:"session_id"`
	RowNumber   int       `db:"row_number"`
	PlaceNumber int       `db:"place_number"`
	Occupied    bool      `db:"occupied"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *seatRow) toEntity() *seat.Seat {
	return &seat.Seat{
		ID: r.ID, SessionID: r.SessionID,
		RowNumber: r.RowNumber, PlaceNumber: r.PlaceNumber,
		Occupied: r.Occupied, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

const seatColumns = `id, session_id, row_number, place_number, occupied, created_at, updated_at`

type SeatRepository struct{ db *sqlx.DB }

func NewSeatRepository(db *sqlx.DB) *SeatRepository { return &SeatRepository{db: db} }

func (r *SeatRepository) CreateBulk(ctx context.Context, tx transaction.Tx, seats []*seat.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return err
	}

	// バッチサイズごとに分割してマルチバリューINSERTを実行
	const batchSize = 1000
	for i := 0; i < len(seats); i += batchSize {
		end := i + batchSize
		if end > len(seats) {
			end = len(seats)
		}
		if err := r.createBulkBatch(ctx, sqlxTx, seats[i:end]); err != nil {
			return err
		}
	}
	return nil
}

// createBulkBatch はバッチ単位でマルチバリューINSERTを実行し、採番されたIDを順に設定する
func (r *SeatRepository) createBulkBatch(ctx context.Context, tx *sqlx.Tx, seats []*seat.Seat) error {
	const cols = 6
	query := `INSERT INTO seats (session_id, row_number, place_number, occupied, created_at, updated_at) VALUES `
	args := make([]interface{}, 0, len(seats)*cols)
	placeholders := make([]string, 0, len(seats))

	for i, s := range seats {
		base := i * cols
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, s.SessionID, s.RowNumber, s.PlaceNumber, s.Occupied, s.CreatedAt, s.UpdatedAt)
	}
	query += strings.Join(placeholders, ", ") + " RETURNING id"

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return session.ErrSessionNotFound
		}
		return fmt.Errorf("座席一括作成に失敗: %w", err)
	}
	defer rows.Close()

	// RETURNING は VALUES の順に返る
	i := 0
	for rows.Next() {
		if i >= len(seats) {
			return errors.New("座席一括作成の結果件数が不正です")
		}
		if err := rows.Scan(&seats[i].ID); err != nil {
			return fmt.Errorf("座席ID取得に失敗: %w", err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("座席一括作成に失敗: %w", err)
	}
	return nil
}

func (r *SeatRepository) GetByID(ctx context.Context, id int64) (*seat.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE id = $1`
	var row seatRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, seat.ErrSeatNotFound
		}
		return nil, fmt.Errorf("座席取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *SeatRepository) GetBySessionID(ctx context.Context, sessionID int64) ([]*seat.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE session_id = $1 ORDER BY row_number, place_number`
	return r.selectSeats(ctx, query, sessionID)
}

func (r *SeatRepository) GetFreeBySessionID(ctx context.Context, sessionID int64) ([]*seat.Seat, error) {
	query := `SELECT ` + seatColumns + ` FROM seats WHERE session_id = $1 AND occupied = FALSE ORDER BY row_number, place_number`
	return r.selectSeats(ctx, query, sessionID)
}

func (r *SeatRepository) selectSeats(ctx context.Context, query string, sessionID int64) ([]*seat.Seat, error) {
	var rows []seatRow
	if err := r.db.SelectContext(ctx, &rows, query, sessionID); err != nil {
		return nil, fmt.Errorf("座席一覧取得に失敗: %w", err)
	}
	seats := make([]*seat.Seat, len(rows))
	for i := range rows {
		seats[i] = rows[i].toEntity()
	}
	return seats, nil
}

// TryClaimSeat は座席が空いていて指定の上映に属する場合のみ使用中にする
func (r *SeatRepository) TryClaimSeat(ctx context.Context, tx transaction.Tx, seatID, sessionID int64) (bool, error) {
	sqlxTx, err := UnwrapTx(tx)
	if err != nil {
		return false, err
	}
	query := `UPDATE seats SET occupied = TRUE, updated_at = NOW() WHERE id = $1 AND session_id = $2 AND occupied = FALSE`
	result, err := sqlxTx.ExecContext(ctx, query, seatID, sessionID)
	if err != nil {
		return false, fmt.Errorf("座席確保に失敗: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("座席確保結果の取得に失敗: %w", err)
	}
	return rows == 1, nil
}

func (r *SeatRepository) CountOccupiedBySessionID(ctx context.Context, sessionID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM seats WHERE session_id = $1 AND occupied = TRUE`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("使用中座席数取得に失敗: %w", err)
	}
	return count, nil
}

var _ seat.Repository = (*SeatRepository)(nil)
