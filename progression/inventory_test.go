package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemTableIsComplete(t *testing.T) {
	for k := ItemPotion; k < numItemKinds; k++ {
		spec := itemTable[k]
		assert.NotEmpty(t, spec.name, "kind %d has no name", k)
		assert.NotNil(t, spec.counter, "kind %d has no counter", k)
	}
}

func TestParseItemKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ItemKind
		wantErr bool
	}{
		{in: "potion", want: ItemPotion},
		{in: "potions", want: ItemPotion},
		{in: "1", want: ItemPotion},
		{in: "superPotion", want: ItemSuperPotion},
		{in: "2", want: ItemSuperPotion},
		{in: "HYPERPOTION", want: ItemHyperPotion},
		{in: "3", want: ItemHyperPotion},
		{in: "booster", want: ItemBooster},
		{in: "4", wantErr: true},
		{in: "elixir", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseItemKind(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRestoration(t *testing.T) {
	assert.Equal(t, 20, ItemPotion.Restoration())
	assert.Equal(t, 50, ItemSuperPotion.Restoration())
	assert.Equal(t, 120, ItemHyperPotion.Restoration())
	assert.Zero(t, ItemBooster.Restoration())
	assert.False(t, ItemBooster.IsPotion())
}

func TestConsume_PotionTwice(t *testing.T) {
	player := newPlayer()
	player.Inventory.Potions = 1

	effect, err := Consume(player, ItemPotion)
	require.NoError(t, err)
	assert.Equal(t, 20, effect.HPRestored)
	assert.Zero(t, player.Inventory.Potions)

	_, err = Consume(player, ItemPotion)
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Zero(t, player.Inventory.Potions)
}

func TestConsume_UnknownKind(t *testing.T) {
	_, err := Consume(newPlayer(), ItemUnknown)
	require.ErrorIs(t, err, ErrValidation)
}

func TestCredit(t *testing.T) {
	player := newPlayer()

	require.NoError(t, Credit(player, ItemHyperPotion, 3))
	assert.Equal(t, int64(3), Count(&player.Inventory, ItemHyperPotion))

	require.ErrorIs(t, Credit(player, ItemHyperPotion, 0), ErrValidation)
	require.ErrorIs(t, Credit(player, ItemHyperPotion, -2), ErrValidation)
	assert.Equal(t, int64(3), player.Inventory.HyperPotions)
}
