package memory

import (
	"context"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/film"
)

// FilmRepository は作品リポジトリのメモリ実装
type FilmRepository struct{ store *Store }

func NewFilmRepository(s *Store) *FilmRepository { return &FilmRepository{store: s} }

func (r *FilmRepository) Create(ctx context.Context, f *film.Film) error {
	f.ID = r.store.nextID("films")
	r.store.mu.Lock()
	r.store.films[f.ID] = *f
	r.store.mu.Unlock()
	return nil
}

func (r *FilmRepository) GetByID(ctx context.Context, id int64) (*film.Film, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	row, ok := r.store.films[id]
	if !ok {
		return nil, film.ErrFilmNotFound
	}
	return &row, nil
}

var _ film.Repository = (*FilmRepository)(nil)
