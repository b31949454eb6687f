package progression

import (
	"fmt"
	"strings"

	"pokemon-game-system/models"
)

// ItemKind is the closed set of inventory items.
type ItemKind int

const (
	ItemUnknown ItemKind = iota
	ItemPotion
	ItemSuperPotion
	ItemHyperPotion
	ItemBooster

	numItemKinds
)

type itemSpec struct {
	name        string
	aliases     []string
	potion      bool
	restoration int
	counter     func(*models.Inventory) *int64
}

// itemTable is indexed by ItemKind; every kind above ItemUnknown must have an entry.
var itemTable = [numItemKinds]itemSpec{
	ItemPotion: {
		name:        "potion",
		aliases:     []string{"potions", "1"},
		potion:      true,
		restoration: 20,
		counter:     func(inv *models.Inventory) *int64 { return &inv.Potions },
	},
	ItemSuperPotion: {
		name:        "superPotion",
		aliases:     []string{"superPotions", "2"},
		potion:      true,
		restoration: 50,
		counter:     func(inv *models.Inventory) *int64 { return &inv.SuperPotions },
	},
	ItemHyperPotion: {
		name:        "hyperPotion",
		aliases:     []string{"hyperPotions", "3"},
		potion:      true,
		restoration: 120,
		counter:     func(inv *models.Inventory) *int64 { return &inv.HyperPotions },
	},
	ItemBooster: {
		name:    "booster",
		aliases: []string{"boosters"},
		counter: func(inv *models.Inventory) *int64 { return &inv.Boosters },
	},
}

// ParseItemKind accepts an item name, its plural inventory field name, or the numeric potion
// tier used by the potion route ("1", "2", "3"). Matching ignores case.
func ParseItemKind(s string) (ItemKind, error) {
	s = strings.TrimSpace(s)
	for k := ItemPotion; k < numItemKinds; k++ {
		spec := itemTable[k]
		if strings.EqualFold(s, spec.name) {
			return k, nil
		}
		for _, alias := range spec.aliases {
			if strings.EqualFold(s, alias) {
				return k, nil
			}
		}
	}
	return ItemUnknown, fmt.Errorf("%w: unknown item kind %q", ErrValidation, s)
}

func (k ItemKind) valid() bool {
	return k > ItemUnknown && k < numItemKinds
}

func (k ItemKind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return itemTable[k].name
}

// IsPotion reports whether k restores HP when consumed.
func (k ItemKind) IsPotion() bool {
	return k.valid() && itemTable[k].potion
}

// Restoration is the HP restored by consuming one unit of k (0 for non-potions).
func (k ItemKind) Restoration() int {
	if !k.valid() {
		return 0
	}
	return itemTable[k].restoration
}

// Effect describes what consuming an item did.
type Effect struct {
	Kind       ItemKind
	HPRestored int
}

// Count returns the current count of k in inv.
func Count(inv *models.Inventory, k ItemKind) int64 {
	if !k.valid() {
		return 0
	}
	return *itemTable[k].counter(inv)
}

// Consume removes one unit of k. A zero count fails with ErrOutOfStock and changes nothing.
func Consume(player *models.PlayerState, k ItemKind) (Effect, error) {
	if !k.valid() {
		return Effect{}, fmt.Errorf("%w: unknown item kind", ErrValidation)
	}
	c := itemTable[k].counter(&player.Inventory)
	if *c <= 0 {
		return Effect{}, fmt.Errorf("%w: no %s left", ErrOutOfStock, k)
	}
	*c--
	return Effect{Kind: k, HPRestored: itemTable[k].restoration}, nil
}

// Credit adds amount (>= 1) units of k.
func Credit(player *models.PlayerState, k ItemKind, amount int64) error {
	if !k.valid() {
		return fmt.Errorf("%w: unknown item kind", ErrValidation)
	}
	if amount < 1 {
		return fmt.Errorf("%w: credit amount must be at least 1, got %d", ErrValidation, amount)
	}
	*itemTable[k].counter(&player.Inventory) += amount
	return nil
}
