package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoosterGenerator_OpenOwned(t *testing.T) {
	t.Run("no booster", func(t *testing.T) {
		player := newPlayer()
		_, err := NewBoosterGenerator(&scriptedRand{}).OpenOwned(player, catalogOf(1, 2, 3))
		require.ErrorIs(t, err, ErrOutOfStock)
	})

	t.Run("empty catalog keeps booster", func(t *testing.T) {
		player := newPlayer()
		player.Inventory.Boosters = 1
		_, err := NewBoosterGenerator(&scriptedRand{}).OpenOwned(player, nil)
		require.ErrorIs(t, err, ErrCatalogExhausted)
		assert.Equal(t, int64(1), player.Inventory.Boosters)
	})

	t.Run("novel draw is unlocked", func(t *testing.T) {
		player := newPlayer()
		player.Inventory.Boosters = 2
		player.UnlockedPokemons = []int{1}

		got, err := NewBoosterGenerator(&scriptedRand{ints: []int{2}}).OpenOwned(player, catalogOf(1, 2, 3))
		require.NoError(t, err)
		assert.Equal(t, 3, got.ID)
		assert.True(t, got.IsNew)
		assert.Equal(t, int64(1), player.Inventory.Boosters)
		assert.Equal(t, []int{1, 3}, []int(player.UnlockedPokemons))
	})

	t.Run("duplicate draw still spends the booster", func(t *testing.T) {
		player := newPlayer()
		player.Inventory.Boosters = 1
		player.UnlockedPokemons = []int{1}

		got, err := NewBoosterGenerator(&scriptedRand{ints: []int{0}}).OpenOwned(player, catalogOf(1, 2, 3))
		require.NoError(t, err)
		assert.Equal(t, 1, got.ID)
		assert.False(t, got.IsNew)
		assert.Zero(t, player.Inventory.Boosters)
		assert.Equal(t, []int{1}, []int(player.UnlockedPokemons))
	})
}

func TestBoosterGenerator_DrawPack_ExactlyFourLeft(t *testing.T) {
	player := newPlayer()
	player.UnlockedPokemons = []int{1, 2}
	catalog := catalogOf(1, 2, 3, 4, 5, 6)

	g := NewBoosterGenerator(NewRandomSource(7))
	pack, err := g.DrawPack(player, catalog)
	require.NoError(t, err)
	require.Len(t, pack, PackSize)

	ids := make([]int, 0, len(pack))
	for _, p := range pack {
		ids = append(ids, p.ID)
		assert.True(t, p.IsNew)
	}
	assert.ElementsMatch(t, []int{3, 4, 5, 6}, ids)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6}, []int(player.UnlockedPokemons))
	assert.Equal(t, []int{1, 2}, []int(player.UnlockedPokemons[:2]), "insertion order is preserved")

	before := player.Clone()
	_, err = g.DrawPack(player, catalog)
	require.ErrorIs(t, err, ErrCatalogExhausted)
	assert.Equal(t, before, player)
}

func TestBoosterGenerator_DrawPack_ShinyRolls(t *testing.T) {
	player := newPlayer()
	rnd := &scriptedRand{bools: []bool{false, true, false, false}}

	pack, err := NewBoosterGenerator(rnd).DrawPack(player, catalogOf(10, 11, 12, 13, 14))
	require.NoError(t, err)

	shiny := 0
	for _, p := range pack {
		if p.IsShiny {
			shiny++
		}
	}
	assert.Equal(t, 1, shiny)
	assert.True(t, pack[1].IsShiny)
}

func TestBoosterGenerator_DrawPack_IgnoresDuplicateCatalogRows(t *testing.T) {
	player := newPlayer()
	catalog := catalogOf(1, 1, 2, 2, 3, 3)

	_, err := NewBoosterGenerator(&scriptedRand{}).DrawPack(player, catalog)
	require.ErrorIs(t, err, ErrCatalogExhausted)
	assert.Empty(t, player.UnlockedPokemons)
}

func TestBoosterGenerator_DrawPack_NoDuplicates(t *testing.T) {
	ids := make([]int, 0, 151)
	for i := 1; i <= 151; i++ {
		ids = append(ids, i)
	}
	catalog := catalogOf(ids...)
	player := newPlayer()
	g := NewBoosterGenerator(NewRandomSource(42))

	for {
		_, err := g.DrawPack(player, catalog)
		if err != nil {
			require.ErrorIs(t, err, ErrCatalogExhausted)
			break
		}
	}

	seen := map[int]bool{}
	for _, id := range player.UnlockedPokemons {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, player.UnlockedPokemons, 148, "only whole packs of four can be drawn from 151")
}
