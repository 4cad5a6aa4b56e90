package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/film"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/reservation"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/ticket"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

var (
	badRequestErrors = []error{
		reservation.ErrValidation,
		film.ErrFilmNameRequired,
		film.ErrInvalidDuration,
		session.ErrFilmIDRequired,
		session.ErrStartsAtRequired,
		session.ErrInvalidTicketPrice,
		session.ErrInvalidTotalSeats,
		session.ErrInvalidFreeSeats,
		session.ErrInvalidSortField,
		seat.ErrSeatNotInSession,
		seat.ErrSessionIDRequired,
		seat.ErrInvalidPosition,
		seat.ErrInvalidLayout,
		seat.ErrLayoutTooLarge,
		ticket.ErrSessionIDRequired,
		ticket.ErrSeatIDRequired,
		ticket.ErrUserIDRequired,
		ticket.ErrInvalidPrice,
	}
	notFoundErrors = []error{
		film.ErrFilmNotFound,
		session.ErrSessionNotFound,
		seat.ErrSeatNotFound,
		ticket.ErrTicketNotFound,
	}
	conflictErrors = []error{
		reservation.ErrSessionFull,
		reservation.ErrSeatUnavailable,
		ticket.ErrTicketAlreadyExists,
	}
)

// StatusCode はドメインエラーに対応するHTTPステータスを返す。
// ErrValidation は原因の not found より優先される
func StatusCode(err error) int {
	switch {
	case errors.Is(err, reservation.ErrPersistenceFailure):
		return http.StatusServiceUnavailable
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		code    = http.StatusInternalServerError
		message = "内部サーバーエラー"
		kind    string
	)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		code = StatusCode(err)
		switch code {
		case http.StatusInternalServerError:
		case http.StatusServiceUnavailable:
			message = reservation.ErrPersistenceFailure.Error()
		default:
			message = err.Error()
		}
		if k := reservation.KindOf(err); k != reservation.KindUnknown {
			kind = string(k)
		}
	}

	// エラーログを出力（5xx エラーの場合）
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if code == http.StatusServiceUnavailable && reservation.Retryable(err) {
		c.Response().Header().Set("Retry-After", "1")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{
			Error: message,
			Code:  code,
			Kind:  kind,
		})
	}
	if err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
