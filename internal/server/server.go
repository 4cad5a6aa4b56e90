package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/api"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/api/handler"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/api/middleware"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/application"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/film"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/ticket"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/pkg/metrics"
)

// Dependencies は HTTP サーバーを組み立てるための依存関係。
// Cache と Publisher は nil の場合に無効となる
type Dependencies struct {
	TxManager   transaction.Manager
	SessionRepo session.Repository
	SeatRepo    seat.Repository
	TicketRepo  ticket.Repository
	FilmRepo    film.Repository

	Cache     application.SeatCache
	CacheTTL  time.Duration
	Publisher application.TicketPublisher

	Metrics         *metrics.Metrics
	MetricsGatherer prometheus.Gatherer
	MetricsAuth     middleware.MetricsConfig
	HealthChecks    map[string]handler.HealthCheck
}

// New はサービスとハンドラーを組み立て、ルーティング済みの Echo を返す
func New(deps Dependencies) *echo.Echo {
	var opts []application.ReservationOption
	if deps.Cache != nil {
		opts = append(opts, application.WithSeatCache(deps.Cache))
	}
	if deps.Publisher != nil {
		opts = append(opts, application.WithTicketPublisher(deps.Publisher))
	}
	if deps.Metrics != nil {
		opts = append(opts, application.WithMetrics(deps.Metrics))
	}

	filmService := application.NewFilmService(deps.FilmRepo)
	sessionService := application.NewSessionService(deps.TxManager, deps.SessionRepo, deps.SeatRepo, deps.FilmRepo, deps.Cache, deps.CacheTTL)
	ticketService := application.NewTicketService(deps.TicketRepo, deps.SessionRepo, deps.SeatRepo)
	reservationService := application.NewReservationService(deps.TxManager, deps.SessionRepo, deps.SeatRepo, deps.TicketRepo, opts...)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler

	middleware.SetupMiddleware(e)
	if deps.Metrics != nil {
		e.Use(middleware.PrometheusMiddleware(deps.Metrics))
	}

	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	filmHandler := handler.NewFilmHandler(filmService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	ticketHandler := handler.NewTicketHandler(reservationService, ticketService)

	e.GET("/health", healthHandler.Check)

	gatherer := deps.MetricsGatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
		middleware.MetricsBasicAuth(deps.MetricsAuth))

	v1 := e.Group("/api/v1")

	v1.POST("/films", filmHandler.Create)
	v1.GET("/films/:id", filmHandler.GetByID)

	v1.POST("/sessions", sessionHandler.Create)
	v1.GET("/sessions", sessionHandler.List)
	v1.GET("/sessions/:id", sessionHandler.GetByID)
	v1.DELETE("/sessions/:id", sessionHandler.Delete)
	v1.GET("/sessions/:id/seats", sessionHandler.ListSeats)
	v1.GET("/sessions/:id/seats/free/count", sessionHandler.CountFreeSeats)
	v1.GET("/sessions/:id/seats/occupied/count", sessionHandler.CountOccupiedSeats)

	v1.POST("/tickets", ticketHandler.Reserve)
	v1.GET("/tickets", ticketHandler.ListMine)
	v1.GET("/tickets/:id", ticketHandler.GetByID)
	v1.GET("/tickets/:id/detail", ticketHandler.GetDetail)

	return e
}
