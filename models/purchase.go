package models

import (
	"time"

	"gorm.io/datatypes"
)

type PurchaseKind string

const (
	PurchaseKindItem        PurchaseKind = "item"
	PurchaseKindBoosterPack PurchaseKind = "booster_pack"
)

// DrawnPokemon is a Pokémon handed out by a booster.
type DrawnPokemon struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	IsShiny bool   `json:"isShiny"`
	IsNew   bool   `json:"isNew"`
}

// PurchaseRecord logs a completed shop purchase (append-only, written in the same commit).
type PurchaseRecord struct {
	ID       string                            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlayerID string                            `gorm:"index;not null" json:"player_id"`
	Kind     PurchaseKind                      `gorm:"type:varchar(16);not null" json:"kind"`
	Item     string                            `gorm:"type:varchar(32)" json:"item,omitempty"`
	Price    int64                             `gorm:"not null" json:"price"`
	Pokemons datatypes.JSONSlice[DrawnPokemon] `gorm:"type:jsonb" json:"pokemons,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
