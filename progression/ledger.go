package progression

import (
	"fmt"
	"math"

	"pokemon-game-system/models"
)

// BoosterDropChance is the chance a won battle also grants a booster.
const BoosterDropChance = 0.30

// Ledger applies battle results and gold movements to a player.
type Ledger struct {
	Rand RandomSource
}

func NewLedger(rnd RandomSource) *Ledger {
	return &Ledger{Rand: rnd}
}

// ApplyBattleResult records the outcome, adds xp, recomputes level and, on a win, rolls for a
// booster drop. It reports whether a booster was granted.
func (l *Ledger) ApplyBattleResult(player *models.PlayerState, result models.BattleResult, xpEarned int64) (bool, error) {
	if err := validateOutcome(player, result, xpEarned); err != nil {
		return false, err
	}

	boosterWon := result == models.BattleResultWin && l.Rand.Bernoulli(BoosterDropChance)

	recordOutcome(player, result, xpEarned)
	if boosterWon {
		player.Inventory.Boosters++
	}
	return boosterWon, nil
}

// RecordOutcome is ApplyBattleResult without the booster roll, for caller-reported battles.
func (l *Ledger) RecordOutcome(player *models.PlayerState, result models.BattleResult, xpEarned int64) error {
	if err := validateOutcome(player, result, xpEarned); err != nil {
		return err
	}
	recordOutcome(player, result, xpEarned)
	return nil
}

// ApplyGold credits (delta > 0) or debits (delta < 0) gold. A debit that would leave gold
// negative fails and changes nothing.
func ApplyGold(player *models.PlayerState, delta int64) error {
	if err := CheckGold(player, delta); err != nil {
		return err
	}
	player.Gold += delta
	return nil
}

// CheckGold reports whether ApplyGold(player, delta) would succeed, without changing anything.
func CheckGold(player *models.PlayerState, delta int64) error {
	if delta > 0 && player.Gold > math.MaxInt64-delta {
		return fmt.Errorf("%w: gold credit of %d overflows balance %d", ErrValidation, delta, player.Gold)
	}
	if delta < 0 && player.Gold < -delta {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientGold, player.Gold, -delta)
	}
	return nil
}

func validateOutcome(player *models.PlayerState, result models.BattleResult, xpEarned int64) error {
	if !result.Valid() {
		return fmt.Errorf("%w: unknown battle result %q", ErrValidation, result)
	}
	if xpEarned < 0 {
		return fmt.Errorf("%w: xp earned cannot be negative", ErrValidation)
	}
	if xpEarned > math.MaxInt64-player.XP {
		return fmt.Errorf("%w: xp earned %d overflows total %d", ErrValidation, xpEarned, player.XP)
	}
	return nil
}

func recordOutcome(player *models.PlayerState, result models.BattleResult, xpEarned int64) {
	switch result {
	case models.BattleResultWin:
		player.BattleStats.Wins++
	case models.BattleResultLose:
		player.BattleStats.Losses++
	case models.BattleResultDraw:
		player.BattleStats.Draws++
	}
	player.XP += xpEarned
	player.RecomputeLevel()
}
