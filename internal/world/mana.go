package world

import (
	"github.com/antitower/server/internal/core/event"
)

// LedgerEntry records one change of the mana pool.
type LedgerEntry struct {
	Tick    uint64
	Reason  string
	Delta   float64
	Balance float64
}

// Ledger reasons.
const (
	ReasonHarvest    = "harvest"
	ReasonPotionSale = "potion_sale"
	ReasonPurchase   = "purchase"
)

// Ledger buffers mana changes until the persistence layer drains them.
// Consecutive harvest entries are coalesced, so draining every tick
// produces one row per uninterrupted run.
type Ledger struct {
	entries []LedgerEntry
}

func NewLedger() *Ledger {
	return &Ledger{entries: make([]LedgerEntry, 0, 64)}
}

func (l *Ledger) Append(e LedgerEntry) {
	if n := len(l.entries); n > 0 && e.Reason == ReasonHarvest && l.entries[n-1].Reason == e.Reason {
		last := &l.entries[n-1]
		last.Delta += e.Delta
		last.Balance = e.Balance
		last.Tick = e.Tick
		return
	}
	l.entries = append(l.entries, e)
}

// Len returns the number of buffered entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Drain returns and clears the buffered entries.
func (l *Ledger) Drain() []LedgerEntry {
	if len(l.entries) == 0 {
		return nil
	}
	out := make([]LedgerEntry, len(l.entries))
	copy(out, l.entries)
	l.entries = l.entries[:0]
	return out
}

// Mana is the read-only view of the pool used by the HUD.
func (s *State) Mana() float64 { return s.mana }

// CanAfford reports whether the pool covers cost.
func (s *State) CanAfford(cost float64) bool { return s.mana >= cost }

// SpendMana debits cost if the pool covers it. Insufficient balance is a
// silent no-op returning false.
func (s *State) SpendMana(cost float64, reason string) bool {
	if cost <= 0 {
		return true
	}
	if s.mana < cost {
		return false
	}
	s.mana -= cost
	s.recordMana(reason, -cost)
	return true
}

// CreditMana adds amount to the pool.
func (s *State) CreditMana(amount float64, reason string) {
	if amount <= 0 {
		return
	}
	s.mana += amount
	s.recordMana(reason, amount)
}

func (s *State) recordMana(reason string, delta float64) {
	s.Ledger.Append(LedgerEntry{Tick: s.tick, Reason: reason, Delta: delta, Balance: s.mana})
	event.Emit(s.Bus, event.ManaChanged{Reason: reason, Delta: delta, Balance: s.mana})
}
