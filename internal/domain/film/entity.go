package film

import "time"

// Film は上映作品を表す
type Film struct {
	ID              int64
	Name            string
	DurationMinutes int
	CreatedAt       time.Time
}

// NewFilm は新しい作品を作成する
func NewFilm(name string, durationMinutes int) *Film {
	return &Film{
		Name:            name,
		DurationMinutes: durationMinutes,
		CreatedAt:       time.Now(),
	}
}

// Validate は作品の検証を行う
func (f *Film) Validate() error {
	if f.Name == "" {
		return ErrFilmNameRequired
	}
	if f.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
