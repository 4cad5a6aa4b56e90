package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/reservation"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/ticket"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/pkg/logger"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/pkg/metrics"
)

// ReservationService は空席数の減算・座席の確保・チケットの追加を1つのトランザクションで行う
type ReservationService struct {
	txManager   transaction.Manager
	sessionRepo session.Repository
	seatRepo    seat.Repository
	ticketRepo  ticket.Repository
	cache       SeatCache
	publisher   TicketPublisher
	metrics     *metrics.Metrics
}

// ReservationOption は任意の連携先を設定する
type ReservationOption func(*ReservationService)

// WithSeatCache は予約確定後に無効化する空席数キャッシュを設定する
func WithSeatCache(c SeatCache) ReservationOption {
	return func(s *ReservationService) { s.cache = c }
}

// WithTicketPublisher は予約確定後に発券イベントを送る先を設定する
func WithTicketPublisher(p TicketPublisher) ReservationOption {
	return func(s *ReservationService) { s.publisher = p }
}

// WithMetrics は予約結果を記録するメトリクスを設定する
func WithMetrics(m *metrics.Metrics) ReservationOption {
	return func(s *ReservationService) { s.metrics = m }
}

func NewReservationService(
	txm transaction.Manager,
	sessionRepo session.Repository,
	seatRepo seat.Repository,
	ticketRepo ticket.Repository,
	opts ...ReservationOption,
) *ReservationService {
	s := &ReservationService{
		txManager:   txm,
		sessionRepo: sessionRepo,
		seatRepo:    seatRepo,
		ticketRepo:  ticketRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type ReserveSeatInput struct {
	SessionID int64
	SeatID    int64
	UserID    int64
	Price     decimal.Decimal
}

// ReserveSeat は1座席を予約してチケットを返す。
// 失敗時のエラーは reservation.ErrSessionFull / ErrSeatUnavailable / ErrPersistenceFailure / ErrValidation のいずれかを含み、
// どの場合もトランザクション内の変更は残らない
func (s *ReservationService) ReserveSeat(ctx context.Context, input ReserveSeatInput) (*ticket.Ticket, error) {
	start := time.Now()
	log := logger.With(logger.SessionID(input.SessionID), logger.SeatID(input.SeatID), logger.UserID(input.UserID))

	t, stage, err := s.reserve(ctx, input)

	kind := reservation.KindOf(err)
	s.metrics.ObserveReservation(string(kind), time.Since(start).Seconds())

	switch kind {
	case reservation.KindSuccess:
		log.Info("座席を予約しました", logger.TicketID(t.ID))
		s.afterCommit(ctx, log, t)
		return t, nil
	case reservation.KindPersistenceFailure, reservation.KindUnknown:
		log.Error("予約を中断しました", logger.Result(string(kind)), zap.String("stage", string(stage)), zap.Error(err))
	case reservation.KindValidation:
		log.Info("予約内容が不正です", logger.Result(string(kind)), zap.Error(err))
	default:
		log.Info("予約を中断しました", logger.Result(string(kind)), zap.String("stage", string(stage)))
	}
	return nil, err
}

// reserve は検証とトランザクション本体を実行し、到達した段階を返す
func (s *ReservationService) reserve(ctx context.Context, input ReserveSeatInput) (*ticket.Ticket, reservation.Stage, error) {
	stage := reservation.StageStarted

	// トランザクション開始前の検証
	t := ticket.NewTicket(input.SessionID, input.UserID, input.SeatID, input.Price)
	if err := t.Validate(); err != nil {
		return nil, stage, reservation.ValidationError(err)
	}
	if err := s.validateTarget(ctx, input.SessionID, input.SeatID); err != nil {
		return nil, stage, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, stage, reservation.PersistenceError("トランザクション開始", err)
	}
	defer tx.Rollback()

	// 1. 空席数の条件付き減算
	ok, err := s.sessionRepo.TryDecrementFreeSeats(ctx, tx, input.SessionID)
	if err != nil {
		return nil, stage, reservation.PersistenceError("空席数の減算", err)
	}
	if !ok {
		return nil, reservation.StageAborted, reservation.ErrSessionFull
	}
	stage = reservation.StageCapacityReserved

	// 2. 座席の条件付き確保
	ok, err = s.seatRepo.TryClaimSeat(ctx, tx, input.SeatID, input.SessionID)
	if err != nil {
		return nil, stage, reservation.PersistenceError("座席の確保", err)
	}
	if !ok {
		return nil, reservation.StageAborted, reservation.ErrSeatUnavailable
	}
	stage = reservation.StageSeatClaimed

	// 3. チケット追加
	if err := s.ticketRepo.Insert(ctx, tx, t); err != nil {
		return nil, stage, reservation.PersistenceError("チケット追加", err)
	}
	stage = reservation.StageTicketWritten

	if err := tx.Commit(); err != nil {
		return nil, stage, reservation.PersistenceError("コミット", err)
	}
	return t, reservation.StageCommitted, nil
}

// validateTarget は上映と座席の存在、座席が上映に属することを確認する
func (s *ReservationService) validateTarget(ctx context.Context, sessionID, seatID int64) error {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return reservation.ValidationError(err)
		}
		return reservation.PersistenceError("上映取得", err)
	}
	st, err := s.seatRepo.GetByID(ctx, seatID)
	if err != nil {
		if errors.Is(err, seat.ErrSeatNotFound) {
			return reservation.ValidationError(err)
		}
		return reservation.PersistenceError("座席取得", err)
	}
	if !st.BelongsTo(sessionID) {
		return reservation.ValidationError(seat.ErrSeatNotInSession)
	}
	return nil
}

// afterCommit はコミット後の付随処理を行う。失敗しても予約結果は変わらない
func (s *ReservationService) afterCommit(ctx context.Context, log *zap.Logger, t *ticket.Ticket) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, t.SessionID); err != nil {
			log.Warn("キャッシュ無効化エラー", zap.Error(err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishTicketIssued(ctx, ticket.NewIssuedEvent(t)); err != nil {
			log.Warn("発券イベント送信エラー", logger.TicketID(t.ID), zap.Error(err))
			if s.metrics != nil {
				s.metrics.TicketEventPublishFailures.Inc()
			}
		}
	}
}
