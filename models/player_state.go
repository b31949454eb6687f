package models

import (
	"slices"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// XPPerLevel is the experience span of a single level.
const XPPerLevel = 1000

// LevelForXP is the only way a level is ever derived: floor(xp / XPPerLevel) + 1.
func LevelForXP(xp int64) int {
	if xp < 0 {
		xp = 0
	}
	return int(xp/XPPerLevel) + 1
}

// BattleResult is the outcome of a single battle.
type BattleResult string

const (
	BattleResultWin  BattleResult = "win"
	BattleResultLose BattleResult = "lose"
	BattleResultDraw BattleResult = "draw"
)

// Valid reports whether r is one of the known outcomes.
func (r BattleResult) Valid() bool {
	switch r {
	case BattleResultWin, BattleResultLose, BattleResultDraw:
		return true
	}
	return false
}

// BattleStats counts resolved battles per outcome
type BattleStats struct {
	Wins   int64 `json:"wins" gorm:"not null;default:0"`
	Losses int64 `json:"losses" gorm:"not null;default:0"`
	Draws  int64 `json:"draws" gorm:"not null;default:0"`
}

// Total is the number of battles recorded.
func (s BattleStats) Total() int64 {
	return s.Wins + s.Losses + s.Draws
}

// Inventory holds one counter per consumable kind. Counters are never negative.
type Inventory struct {
	Potions      int64 `json:"potions" gorm:"not null;default:0"`
	SuperPotions int64 `json:"superPotions" gorm:"not null;default:0"`
	HyperPotions int64 `json:"hyperPotions" gorm:"not null;default:0"`
	Boosters     int64 `json:"boosters" gorm:"not null;default:0"`
}

// PlayerState is the progression record of one account (denormalized, one row per player).
type PlayerState struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // account id from the gateway

	XP    int64 `json:"xp" gorm:"not null;default:0"`
	Level int   `json:"level" gorm:"not null;default:1"` // always LevelForXP(XP)
	Gold  int64 `json:"gold" gorm:"not null;default:0;check:gold >= 0"`

	BattleStats BattleStats `json:"battleStats" gorm:"embedded;embeddedPrefix:battle_"`
	Inventory   Inventory   `json:"inventory" gorm:"embedded;embeddedPrefix:inventory_"`

	StarterPokemon    *int                     `json:"starterPokemon"`
	UnlockedPokemons  datatypes.JSONSlice[int] `json:"unlockedPokemons" gorm:"type:jsonb"`
	TutorialCompleted bool                     `json:"tutorialCompleted" gorm:"not null;default:false"`

	// Version is bumped on every commit; writes are compare-and-swap on it.
	Version int64 `json:"version" gorm:"not null;default:1"`

	Timestamps
}

// HasUnlocked reports whether pokemonID is in the unlocked set.
func (p *PlayerState) HasUnlocked(pokemonID int) bool {
	return slices.Contains(p.UnlockedPokemons, pokemonID)
}

// Unlock appends pokemonID if it is not already unlocked and reports whether it was new.
func (p *PlayerState) Unlock(pokemonID int) bool {
	if p.HasUnlocked(pokemonID) {
		return false
	}
	p.UnlockedPokemons = append(p.UnlockedPokemons, pokemonID)
	return true
}

// RecomputeLevel sets Level from XP.
func (p *PlayerState) RecomputeLevel() {
	p.Level = LevelForXP(p.XP)
}

// Clone returns a deep copy safe to mutate independently.
func (p *PlayerState) Clone() *PlayerState {
	cp := *p
	if p.StarterPokemon != nil {
		starter := *p.StarterPokemon
		cp.StarterPokemon = &starter
	}
	cp.UnlockedPokemons = slices.Clone(p.UnlockedPokemons)
	return &cp
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
