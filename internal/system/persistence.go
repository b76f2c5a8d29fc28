package system

import (
	"context"
	"time"

	"go.uber.org/zap"

	coresys "github.com/antitower/server/internal/core/system"
	"github.com/antitower/server/internal/world"
)

// LedgerWriter 儲存本場對局從帳本取出的紀錄。
type LedgerWriter interface {
	Write(ctx context.Context, matchID int64, entries []world.LedgerEntry) error
}

// PersistenceSystem 定期把魔力帳本寫入資料庫。
// Phase 6（Cleanup），在 CleanupSystem 之前。
type PersistenceSystem struct {
	world     *world.State
	ledger    LedgerWriter
	matchID   int64
	log       *zap.Logger
	tickCount int
	interval  int // 每 N 個 tick 寫入一次
	pending   []world.LedgerEntry
}

func NewPersistenceSystem(ws *world.State, ledger LedgerWriter, matchID int64, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	return &PersistenceSystem{
		world:    ws,
		ledger:   ledger,
		matchID:  matchID,
		log:      log,
		interval: max(1, intervalTicks),
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.Flush()
}

// Flush 寫入目前緩衝的所有紀錄。寫入失敗時保留紀錄，下次 flush 重試。
// 關機時直接呼叫。
func (s *PersistenceSystem) Flush() {
	s.pending = append(s.pending, s.world.Ledger.Drain()...)
	if len(s.pending) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.ledger.Write(ctx, s.matchID, s.pending); err != nil {
		s.log.Error("ledger flush failed",
			zap.Int("entries", len(s.pending)), zap.Error(err))
		return
	}
	s.log.Debug("ledger flushed", zap.Int("entries", len(s.pending)))
	s.pending = s.pending[:0]
}

// Pending 回傳尚待成功寫入的紀錄數。
func (s *PersistenceSystem) Pending() int { return len(s.pending) }
