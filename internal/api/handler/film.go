package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/application"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/film"
)

type FilmHandler struct {
	filmService FilmServiceInterface
}

func NewFilmHandler(filmService FilmServiceInterface) *FilmHandler {
	return &FilmHandler{filmService: filmService}
}

type CreateFilmRequest struct {
	Name            string `json:"name" validate:"required" example:"七人の侍"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0" example:"207"`
}

type FilmResponse struct {
	ID              int64  `json:"id" example:"1"`
	Name            string `json:"name" example:"七人の侍"`
	DurationMinutes int    `json:"duration_minutes" example:"207"`
	CreatedAt       string `json:"created_at" example:"2025-12-06T10:00:00+09:00"`
}

func toFilmResponse(f *film.Film) FilmResponse {
	return FilmResponse{
		ID:              f.ID,
		Name:            f.Name,
		DurationMinutes: f.DurationMinutes,
		CreatedAt:       f.CreatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary 作品を登録
// @Description 上映作品を登録します
// @Tags films
// @Accept json
// @Produce json
// @Param request body CreateFilmRequest true "作品情報"
// @Success 201 {object} FilmResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /films [post]
func (h *FilmHandler) Create(c echo.Context) error {
	var req CreateFilmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f, err := h.filmService.CreateFilm(c.Request().Context(), application.CreateFilmInput{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toFilmResponse(f))
}

// GetByID godoc
// @Summary 作品を取得
// @Tags films
// @Produce json
// @Param id path int true "作品ID"
// @Success 200 {object} FilmResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /films/{id} [get]
func (h *FilmHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	f, err := h.filmService.GetFilm(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFilmResponse(f))
}
