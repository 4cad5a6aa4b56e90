package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/film"
)

type filmRow struct {
	ID              int64     `db:"id"`
	Name            string    `db:"name"`
	DurationMinutes int       `db:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at"`
}

func (r *filmRow) toEntity() *film.Film {
	return &film.Film{
		ID: r.ID, Name: r.Name, DurationMinutes: r.DurationMinutes, CreatedAt: r.CreatedAt,
	}
}

// FilmRepository は作品リポジトリのPostgreSQL実装
type FilmRepository struct{ db *sqlx.DB }

func NewFilmRepository(db *sqlx.DB) *FilmRepository { return &FilmRepository{db: db} }

func (r *FilmRepository) Create(ctx context.Context, f *film.Film) error {
	query := `INSERT INTO films (name, duration_minutes, created_at) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, f.Name, f.DurationMinutes, f.CreatedAt).Scan(&f.ID); err != nil {
		return fmt.Errorf("作品作成に失敗: %w", err)
	}
	return nil
}

func (r *FilmRepository) GetByID(ctx context.Context, id int64) (*film.Film, error) {
	query := `SELECT id, name, duration_minutes, created_at FROM films WHERE id = $1`
	var row filmRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, film.ErrFilmNotFound
		}
		return nil, fmt.Errorf("作品取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

var _ film.Repository = (*FilmRepository)(nil)
