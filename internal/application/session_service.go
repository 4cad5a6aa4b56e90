package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/film"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/seat"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/transaction"
	redisinfra "github.com/sanosuguru/cinema-ticket-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/pkg/logger"
)

const defaultSeatCacheTTL = 5 * time.Second

type SessionService struct {
	txManager   transaction.Manager
	sessionRepo session.Repository
	seatRepo    seat.Repository
	filmRepo    film.Repository
	cache       SeatCache
	cacheTTL    time.Duration
	sfGroup     singleflight.Group
	now         func() time.Time
}

// NewSessionService は SessionService を作成する。cache が nil の場合は毎回ストアから数える
func NewSessionService(txm transaction.Manager, sessionRepo session.Repository, seatRepo seat.Repository, filmRepo film.Repository, cache SeatCache, cacheTTL time.Duration) *SessionService {
	if cacheTTL <= 0 {
		cacheTTL = defaultSeatCacheTTL
	}
	return &SessionService{
		txManager:   txm,
		sessionRepo: sessionRepo,
		seatRepo:    seatRepo,
		filmRepo:    filmRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

type ScheduleSessionInput struct {
	FilmID       int64
	StartsAt     time.Time
	TicketPrice  decimal.Decimal
	Rows         int
	PlacesPerRow int
}

// ScheduleSession は上映と全座席を1つのトランザクションで作成する。座席数0の上映も作成できる
func (s *SessionService) ScheduleSession(ctx context.Context, input ScheduleSessionInput) (*session.Session, []*seat.Seat, error) {
	if err := seat.ValidateLayout(input.Rows, input.PlacesPerRow); err != nil {
		return nil, nil, err
	}
	if _, err := s.filmRepo.GetByID(ctx, input.FilmID); err != nil {
		return nil, nil, fmt.Errorf("作品取得に失敗: %w", err)
	}

	se := session.NewSession(input.FilmID, input.StartsAt, input.TicketPrice, input.Rows*input.PlacesPerRow)
	if err := se.Validate(); err != nil {
		return nil, nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.sessionRepo.Create(ctx, tx, se); err != nil {
		return nil, nil, err
	}
	seats := seat.BuildLayout(se.ID, input.Rows, input.PlacesPerRow)
	if err := s.seatRepo.CreateBulk(ctx, tx, seats); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	logger.Info("上映を作成しました", logger.SessionID(se.ID), zap.Int("total_seats", se.TotalSeats))
	return se, seats, nil
}

func (s *SessionService) GetSession(ctx context.Context, id int64) (*session.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

type ListSessionsInput struct {
	SortBy        string
	Descending    bool
	AvailableOnly bool
}

// ListSessions はこれから開始する上映の一覧を返す。AvailableOnly の場合は空席のある上映のみ
func (s *SessionService) ListSessions(ctx context.Context, input ListSessionsInput) ([]*session.Session, error) {
	sortBy, err := session.ParseSortField(input.SortBy)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.List(ctx, session.ListFilter{
		From:       s.now(),
		SortBy:     sortBy,
		Descending: input.Descending,
	})
	if err != nil {
		return nil, err
	}
	if !input.AvailableOnly {
		return sessions, nil
	}

	available := make([]*session.Session, 0, len(sessions))
	for _, se := range sessions {
		if se.HasFreeSeats() {
			available = append(available, se)
		}
	}
	return available, nil
}

// DeleteSession は上映を座席・チケットごと削除し、空席数キャッシュを無効化する
func (s *SessionService) DeleteSession(ctx context.Context, id int64) error {
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidateCache(ctx, id)
	logger.Info("上映を削除しました", logger.SessionID(id))
	return nil
}

func (s *SessionService) ListSeats(ctx context.Context, sessionID int64) ([]*seat.Seat, error) {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.seatRepo.GetBySessionID(ctx, sessionID)
}

func (s *SessionService) ListFreeSeats(ctx context.Context, sessionID int64) ([]*seat.Seat, error) {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.seatRepo.GetFreeBySessionID(ctx, sessionID)
}

func (s *SessionService) CountOccupiedSeats(ctx context.Context, sessionID int64) (int, error) {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return 0, err
	}
	return s.seatRepo.CountOccupiedBySessionID(ctx, sessionID)
}

// CountFreeSeats は表示用の空席数を返す。同じ上映への同時のキャッシュミスは1回の読み出しにまとめる。
// 予約のコミット直前に読んだ値が無効化の後に保存されることがあり、その古さは cacheTTL までに限られる
func (s *SessionService) CountFreeSeats(ctx context.Context, sessionID int64) (int, error) {
	// キャッシュから取得を試みる
	if s.cache != nil {
		count, err := s.cache.GetFreeCount(ctx, sessionID)
		if err == nil {
			logger.Debug("キャッシュヒット", logger.SessionID(sessionID), zap.Int("count", count))
			return count, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("キャッシュ取得エラー", zap.Error(err))
		}
	}

	// まとめた読み出しは最初の呼び出し元のキャンセルに巻き込まれない
	sfCtx := context.WithoutCancel(ctx)
	ch := s.sfGroup.DoChan(strconv.FormatInt(sessionID, 10), func() (interface{}, error) {
		count, err := s.sessionRepo.GetFreeSeatCount(sfCtx, sessionID)
		if err != nil {
			return 0, err
		}
		// キャッシュに保存
		if s.cache != nil {
			if cacheErr := s.cache.SetFreeCount(sfCtx, sessionID, count, s.cacheTTL); cacheErr != nil {
				logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
			}
		}
		return count, nil
	})

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int), nil
	}
}

// InvalidateCache は上映の空席数キャッシュを無効化する
func (s *SessionService) InvalidateCache(ctx context.Context, sessionID int64) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, sessionID); err != nil {
			logger.Warn("キャッシュ無効化エラー", zap.Error(err))
		}
	}
}
