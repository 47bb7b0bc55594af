package inventory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/loot-economy/internal/reward"
)

func item(id string, t reward.Tier) reward.Item {
	return reward.Item{ID: id, RewardID: "r-" + id, Name: id, Tier: t}
}

func TestSelectFirstNIsDeterministic(t *testing.T) {
	l := NewLedger([]reward.Item{
		item("a", reward.TierCommon),
		item("b", reward.TierUncommon),
		item("c", reward.TierCommon),
		item("d", reward.TierCommon),
	})

	got := l.SelectFirstN(reward.TierCommon, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	// selecting does not consume
	assert.Equal(t, 3, l.CountByTier(reward.TierCommon))
	assert.Len(t, l.SelectFirstN(reward.TierCommon, 10), 3)
}

func TestRemoveByIDs(t *testing.T) {
	l := NewLedger(nil)
	for i := 0; i < 5; i++ {
		l.Add(item(fmt.Sprint(i), reward.TierCommon))
	}
	assert.Equal(t, 2, l.RemoveByIDs([]string{"1", "3", "missing"}))
	assert.Equal(t, 3, l.Len())

	var ids []string
	for _, it := range l.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"0", "2", "4"}, ids)
}

func TestApply(t *testing.T) {
	l := NewLedger([]reward.Item{item("a", reward.TierCommon), item("b", reward.TierCommon)})
	l.Apply([]reward.Item{item("c", reward.TierUncommon)}, []string{"a", "b"})
	assert.Equal(t, 0, l.CountByTier(reward.TierCommon))
	assert.Equal(t, 1, l.CountByTier(reward.TierUncommon))
	assert.Equal(t, 1, l.Len())
}

func TestItemsIsACopy(t *testing.T) {
	l := NewLedger([]reward.Item{item("a", reward.TierCommon)})
	got := l.Items()
	got[0].Name = "changed"
	assert.Equal(t, "a", l.Items()[0].Name)
}
