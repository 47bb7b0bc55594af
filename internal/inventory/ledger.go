// Package inventory tracks owned reward items in acquisition order.
package inventory

import "github.com/xtding233/loot-economy/internal/reward"

// Ledger is the ordered set of owned items. Iteration order is insertion
// order, which is also the order SelectFirstN consumes from.
// It is not safe for concurrent use; the engine serializes access.
type Ledger struct {
	items []reward.Item
}

// NewLedger creates a ledger holding items in the given order.
func NewLedger(items []reward.Item) *Ledger {
	l := &Ledger{}
	for _, it := range items {
		l.Add(it)
	}
	return l
}

// Add appends an item.
func (l *Ledger) Add(it reward.Item) {
	l.items = append(l.items, it)
}

// RemoveByIDs drops every item whose id is in ids and returns how many
// were removed. Unknown ids are ignored.
func (l *Ledger) RemoveByIDs(ids []string) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := l.items[:0]
	removed := 0
	for _, it := range l.items {
		if _, ok := drop[it.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	// clear the tail so removed items are not retained
	for i := len(kept); i < len(l.items); i++ {
		l.items[i] = reward.Item{}
	}
	l.items = kept
	return removed
}

// CountByTier returns how many owned items are of tier t.
func (l *Ledger) CountByTier(t reward.Tier) int {
	n := 0
	for _, it := range l.items {
		if it.Tier == t {
			n++
		}
	}
	return n
}

// SelectFirstN returns up to n items of tier t in ledger order without
// removing them.
func (l *Ledger) SelectFirstN(t reward.Tier, n int) []reward.Item {
	out := make([]reward.Item, 0, n)
	for _, it := range l.items {
		if len(out) == n {
			break
		}
		if it.Tier == t {
			out = append(out, it)
		}
	}
	return out
}

// Apply removes removedIDs and then appends added, as one step.
func (l *Ledger) Apply(added []reward.Item, removedIDs []string) {
	l.RemoveByIDs(removedIDs)
	for _, it := range added {
		l.Add(it)
	}
}

// Items returns a copy of the ledger contents in order.
func (l *Ledger) Items() []reward.Item {
	return append([]reward.Item(nil), l.items...)
}

// Len is the number of owned items.
func (l *Ledger) Len() int { return len(l.items) }
