package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/loot-economy/internal/reward"
)

const sampleSeed = `
rewards:
  - id: coffee
    name: Fancy Coffee
    image: coffee.png
    tier: 4
  - id: movie
    name: Movie Night
    image: movie.png
    tier: 3
    description: pick any film
  - id: trip
    name: Weekend Trip
    image: trip.png
    tier: 1
    aura_colors: ["#ffd700", "#ff8c00"]
`

func TestParseSeed(t *testing.T) {
	got, err := ParseSeed([]byte(sampleSeed))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, reward.TierCommon, got[0].Tier)
	assert.Equal(t, "pick any film", got[1].Description)
	assert.Equal(t, []string{"#ffd700", "#ff8c00"}, got[2].AuraColors)
}

func TestParseSeedCollectsErrors(t *testing.T) {
	_, err := ParseSeed([]byte(`
rewards:
  - id: a
    name: A
    tier: 7
  - id: a
    name: ""
    tier: 3
    aura_colors: ["#fff"]
`))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "rewards[0].tier must be 1..4")
	assert.Contains(t, msg, `rewards[1].id "a" is duplicated`)
	assert.Contains(t, msg, "rewards[1].name is required")
	assert.Contains(t, msg, "rewards[1].aura_colors only apply to tier 1")
}

func TestSeedWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o644))

	got := make(chan []reward.Definition, 4)
	w := NewSeedWatcher(path, nil, func(d []reward.Definition) {
		select {
		case got <- d:
		default:
		}
	})
	require.NoError(t, w.Start())
	defer w.Stop()

	updated := sampleSeed + `
  - id: book
    name: New Book
    image: book.png
    tier: 2
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	// a single write may surface as several events, the first of which can
	// observe a truncated file
	deadline := time.After(5 * time.Second)
	for {
		select {
		case d := <-got:
			if len(d) == 4 {
				return
			}
		case <-deadline:
			t.Fatal("watcher did not report the change")
		}
	}
}
