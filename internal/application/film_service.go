package application

import (
	"context"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/film"
)

type FilmService struct {
	filmRepo film.Repository
}

func NewFilmService(fr film.Repository) *FilmService {
	return &FilmService{filmRepo: fr}
}

type CreateFilmInput struct {
	Name            string
	DurationMinutes int
}

func (s *FilmService) CreateFilm(ctx context.Context, input CreateFilmInput) (*film.Film, error) {
	f := film.NewFilm(input.Name, input.DurationMinutes)
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := s.filmRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FilmService) GetFilm(ctx context.Context, id int64) (*film.Film, error) {
	return s.filmRepo.GetByID(ctx, id)
}
