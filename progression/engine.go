// Package progression holds the rules for how a player's experience, level, gold, inventory
// and collection change. Every function mutates the PlayerState it is given in place and
// leaves it untouched when it returns an error; loading and committing the state is the
// caller's job.
package progression

// Engine bundles the components that share one RandomSource.
type Engine struct {
	Resolver BattleResolver
	Ledger   *Ledger
	Boosters *BoosterGenerator
	Shop     *Shop
}

func NewEngine(rnd RandomSource) *Engine {
	boosters := NewBoosterGenerator(rnd)
	return &Engine{
		Resolver: NewCoinFlipResolver(rnd),
		Ledger:   NewLedger(rnd),
		Boosters: boosters,
		Shop:     NewShop(boosters),
	}
}
