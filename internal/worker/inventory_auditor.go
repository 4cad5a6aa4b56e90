package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/cinema-ticket-reservation/internal/domain/session"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/pkg/logger"
	"github.com/sanosuguru/cinema-ticket-reservation/internal/pkg/metrics"
)

// InventorySource は上映ごとの在庫状態を返すインターフェース
type InventorySource interface {
	InventorySnapshots(ctx context.Context) ([]session.InventorySnapshot, error)
}

// InventoryAuditor は空席数と販売済み座席数のずれを定期的に検出するワーカー。
// 検出のみを行い、データは修正しない
type InventoryAuditor struct {
	source   InventorySource
	metrics  *metrics.Metrics
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewInventoryAuditor は新しい監査ワーカーを作成
func NewInventoryAuditor(source InventorySource, m *metrics.Metrics, interval time.Duration) *InventoryAuditor {
	return &InventoryAuditor{
		source:   source,
		metrics:  m,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start は監査を開始。起動直後に1回実行し、以降は interval ごとに実行する
func (a *InventoryAuditor) Start(ctx context.Context) {
	logger.Info("在庫監査ワーカー開始", zap.Duration("interval", a.interval))

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	defer close(a.doneCh)

	a.audit(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("在庫監査ワーカー停止（コンテキストキャンセル）")
			return
		case <-a.stopCh:
			logger.Info("在庫監査ワーカー停止（シグナル受信）")
			return
		case <-ticker.C:
			a.audit(ctx)
		}
	}
}

// Stop は監査を停止
func (a *InventoryAuditor) Stop() {
	close(a.stopCh)
	<-a.doneCh
}

// audit は全上映の在庫を検査し、ずれのある上映数を返す
func (a *InventoryAuditor) audit(ctx context.Context) int {
	log := logger.Get()

	snapshots, err := a.source.InventorySnapshots(ctx)
	if err != nil {
		log.Error("在庫状態の取得に失敗", zap.Error(err))
		return 0
	}

	drift := 0
	for _, s := range snapshots {
		if s.Consistent() {
			continue
		}
		drift++
		log.Warn("空席数と販売済み座席数が一致しません",
			logger.SessionID(s.SessionID),
			zap.Int("total_seats", s.TotalSeats),
			zap.Int("free_seats", s.FreeSeats),
			zap.Int("occupied_seats", s.OccupiedSeats),
		)
	}

	if a.metrics != nil {
		a.metrics.InventoryDriftSessions.Set(float64(drift))
	}
	log.Debug("在庫監査完了", zap.Int("sessions", len(snapshots)), zap.Int("drift", drift))
	return drift
}
