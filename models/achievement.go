package models

import (
	"time"
)

// AchievementType: static trigger config
type AchievementType struct {
	Code        string           `gorm:"primaryKey" json:"code"` // e.g., "FIRST_WIN", "COLLECTOR_10"
	Name        string           `gorm:"not null" json:"name"`
	Description string           `json:"description"`
	Rarity      string           `gorm:"type:varchar(16);default:'common'" json:"rarity"` // common, rare, epic, legendary
	Threshold   map[string]int64 `gorm:"type:jsonb;serializer:json" json:"threshold"`    // e.g., {"wins": 1}
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"-"`
}

// PlayerAchievement: awarded instance, at most one per (player, code)
type PlayerAchievement struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlayerID  string    `gorm:"uniqueIndex:idx_player_achievement;not null" json:"player_id"`
	Code      string    `gorm:"uniqueIndex:idx_player_achievement;not null" json:"code"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}

// AchievementTriggers are seeded into achievement_types on startup.
var AchievementTriggers = []AchievementType{
	{
		Code:        "FIRST_STEPS",
		Name:        "First Steps",
		Description: "Picked a starter Pokémon",
		Rarity:      "common",
		Threshold:   map[string]int64{"starter": 1},
	},
	{
		Code:        "FIRST_WIN",
		Name:        "First Victory",
		Description: "Won your first battle",
		Rarity:      "common",
		Threshold:   map[string]int64{"wins": 1},
	},
	{
		Code:        "VETERAN",
		Name:        "Veteran Trainer",
		Description: "Fought 50 battles",
		Rarity:      "rare",
		Threshold:   map[string]int64{"battles": 50},
	},
	{
		Code:        "LEVEL_5",
		Name:        "Rising Trainer",
		Description: "Reached level 5",
		Rarity:      "rare",
		Threshold:   map[string]int64{"level": 5},
	},
	{
		Code:        "COLLECTOR_10",
		Name:        "Collector",
		Description: "Unlocked 10 Pokémon",
		Rarity:      "rare",
		Threshold:   map[string]int64{"unlocked": 10},
	},
	{
		Code:        "COLLECTOR_50",
		Name:        "Master Collector",
		Description: "Unlocked 50 Pokémon",
		Rarity:      "epic",
		Threshold:   map[string]int64{"unlocked": 50},
	},
}
