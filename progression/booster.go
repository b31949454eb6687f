package progression

import (
	"fmt"

	"pokemon-game-system/models"
)

const (
	// PackSize is the number of distinct new Pokémon in a shop booster pack.
	PackSize = 4
	// ShinyChance is the per-Pokémon shiny probability in a shop pack.
	ShinyChance = 0.05
)

// BoosterGenerator draws Pokémon from the catalog.
type BoosterGenerator struct {
	Rand RandomSource
}

func NewBoosterGenerator(rnd RandomSource) *BoosterGenerator {
	return &BoosterGenerator{Rand: rnd}
}

// OpenOwned spends one banked booster and draws a single Pokémon uniformly from the whole
// catalog. Duplicates are allowed; only a novel draw is added to the unlocked set.
func (g *BoosterGenerator) OpenOwned(player *models.PlayerState, catalog []models.Pokemon) (models.DrawnPokemon, error) {
	if player.Inventory.Boosters <= 0 {
		return models.DrawnPokemon{}, fmt.Errorf("%w: no booster to open", ErrOutOfStock)
	}
	if len(catalog) == 0 {
		return models.DrawnPokemon{}, fmt.Errorf("%w: catalog is empty", ErrCatalogExhausted)
	}

	pick := catalog[g.Rand.IntN(len(catalog))]
	if _, err := Consume(player, ItemBooster); err != nil {
		return models.DrawnPokemon{}, err
	}
	isNew := player.Unlock(pick.ID)

	return models.DrawnPokemon{ID: pick.ID, Name: pick.Name, IsNew: isNew}, nil
}

// DrawPack picks PackSize distinct Pokémon the player has not unlocked, rolls a shiny flag for
// each, and unlocks them. The pick is uniform over the novel pool, which is what rejection
// sampling against the full catalog converges to, but it always terminates: a pool smaller
// than PackSize fails with ErrCatalogExhausted before anything changes.
func (g *BoosterGenerator) DrawPack(player *models.PlayerState, catalog []models.Pokemon) ([]models.DrawnPokemon, error) {
	seen := make(map[int]struct{}, len(catalog))
	pool := make([]models.Pokemon, 0, len(catalog))
	for _, p := range catalog {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		if !player.HasUnlocked(p.ID) {
			pool = append(pool, p)
		}
	}
	if len(pool) < PackSize {
		return nil, fmt.Errorf("%w: %d unlockable pokemon left, pack needs %d", ErrCatalogExhausted, len(pool), PackSize)
	}

	pack := make([]models.DrawnPokemon, 0, PackSize)
	for i := 0; i < PackSize; i++ {
		j := i + g.Rand.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		pack = append(pack, models.DrawnPokemon{
			ID:      pool[i].ID,
			Name:    pool[i].Name,
			IsShiny: g.Rand.Bernoulli(ShinyChance),
			IsNew:   true,
		})
	}

	for _, p := range pack {
		player.Unlock(p.ID)
	}
	return pack, nil
}
