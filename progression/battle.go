package progression

import (
	"fmt"

	"pokemon-game-system/models"
)

// WinProbability is the chance the placeholder resolver reports a win.
const WinProbability = 0.5

var battleXP = map[models.BattleResult]int64{
	models.BattleResultWin:  100,
	models.BattleResultLose: 50,
	models.BattleResultDraw: 50, // unreachable with CoinFlipResolver
}

// XPReward returns the experience granted for a battle result.
func XPReward(result models.BattleResult) int64 {
	return battleXP[result]
}

// BattleResolver decides the outcome of a battle. Implementations must not mutate the player.
type BattleResolver interface {
	Resolve(player *models.PlayerState, opponentID, usedPokemonID int) (models.BattleResult, int64, error)
}

// CoinFlipResolver is the placeholder combat policy: one Bernoulli draw, win or lose, never draw.
type CoinFlipResolver struct {
	Rand RandomSource
}

func NewCoinFlipResolver(rnd RandomSource) *CoinFlipResolver {
	return &CoinFlipResolver{Rand: rnd}
}

func (r *CoinFlipResolver) Resolve(player *models.PlayerState, opponentID, usedPokemonID int) (models.BattleResult, int64, error) {
	if opponentID <= 0 {
		return "", 0, fmt.Errorf("%w: opponent id must be positive, got %d", ErrValidation, opponentID)
	}
	if !player.HasUnlocked(usedPokemonID) {
		return "", 0, fmt.Errorf("%w: pokemon %d is not unlocked", ErrNotOwned, usedPokemonID)
	}

	result := models.BattleResultLose
	if r.Rand.Bernoulli(WinProbability) {
		result = models.BattleResultWin
	}
	return result, XPReward(result), nil
}
