package progression

import (
	"fmt"
	"slices"

	"pokemon-game-system/models"
)

// ValidStarters are the dex ids a new player may choose from.
var ValidStarters = []int{1, 4, 7}

// ChooseStarter sets the starter once, unlocks it and completes the tutorial.
func ChooseStarter(player *models.PlayerState, pokemonID int) error {
	if !slices.Contains(ValidStarters, pokemonID) {
		return fmt.Errorf("%w: %d is not a valid starter", ErrValidation, pokemonID)
	}
	if player.StarterPokemon != nil {
		return fmt.Errorf("%w: starter is already %d", ErrAlreadyChosen, *player.StarterPokemon)
	}

	starter := pokemonID
	player.StarterPokemon = &starter
	player.Unlock(pokemonID)
	player.TutorialCompleted = true
	return nil
}
