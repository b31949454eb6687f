package progression

import (
	"fmt"

	"pokemon-game-system/models"
)

// Shop sells potions and booster packs for gold.
type Shop struct {
	Boosters *BoosterGenerator
}

func NewShop(boosters *BoosterGenerator) *Shop {
	return &Shop{Boosters: boosters}
}

// PurchaseItem debits price and credits one unit of a potion kind.
func (s *Shop) PurchaseItem(player *models.PlayerState, k ItemKind, price int64) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	if !k.IsPotion() {
		return fmt.Errorf("%w: %s is not sold as a single item", ErrValidation, k)
	}
	if player.Gold < price {
		return fmt.Errorf("%w: have %d, price is %d", ErrInsufficientGold, player.Gold, price)
	}

	if err := ApplyGold(player, -price); err != nil {
		return err
	}
	return Credit(player, k, 1)
}

// PurchaseBoosterPack debits price, grants a fresh pack of PackSize Pokémon, and also banks
// one booster in the inventory.
func (s *Shop) PurchaseBoosterPack(player *models.PlayerState, price int64, catalog []models.Pokemon) ([]models.DrawnPokemon, error) {
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if player.Gold < price {
		return nil, fmt.Errorf("%w: have %d, price is %d", ErrInsufficientGold, player.Gold, price)
	}

	// DrawPack changes nothing when it fails.
	pack, err := s.Boosters.DrawPack(player, catalog)
	if err != nil {
		return nil, err
	}
	if err := ApplyGold(player, -price); err != nil {
		return nil, err
	}
	if err := Credit(player, ItemBooster, 1); err != nil {
		return nil, err
	}
	return pack, nil
}

func validatePrice(price int64) error {
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return nil
}
