package system

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/antitower/server/internal/world"
)

type fakeLedger struct {
	matchID int64
	batches [][]world.LedgerEntry
	err     error
}

func (f *fakeLedger) Write(_ context.Context, matchID int64, entries []world.LedgerEntry) error {
	if f.err != nil {
		return f.err
	}
	f.matchID = matchID
	f.batches = append(f.batches, append([]world.LedgerEntry(nil), entries...))
	return nil
}

func TestPersistenceFlushesOnInterval(t *testing.T) {
	ws := newTestState(t)
	w := &fakeLedger{}
	sys := NewPersistenceSystem(ws, w, 7, zaptest.NewLogger(t), 2)

	ws.CreditMana(15, world.ReasonPotionSale)
	sys.Update(0)
	assert.Empty(t, w.batches)

	sys.Update(0)
	require.Len(t, w.batches, 1)
	assert.Equal(t, int64(7), w.matchID)
	assert.Equal(t, world.ReasonPotionSale, w.batches[0][0].Reason)
	assert.Zero(t, ws.Ledger.Len())

	sys.Update(0)
	sys.Update(0)
	assert.Len(t, w.batches, 1, "nothing new, nothing written")
}

func TestPersistenceRetriesFailedWrites(t *testing.T) {
	ws := newTestState(t)
	w := &fakeLedger{err: errors.New("connection refused")}
	sys := NewPersistenceSystem(ws, w, 1, zaptest.NewLogger(t), 1)

	ws.SpendMana(20, world.ReasonPurchase)
	sys.Update(0)
	assert.Equal(t, 1, sys.Pending())

	w.err = nil
	ws.CreditMana(5, world.ReasonPotionSale)
	sys.Flush()

	assert.Zero(t, sys.Pending())
	require.Len(t, w.batches, 1)
	assert.Len(t, w.batches[0], 2, "earlier failed entries go out first")
	assert.Equal(t, world.ReasonPurchase, w.batches[0][0].Reason)
}
