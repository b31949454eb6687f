package models

import "time"

// BattleRecord is one resolved battle. Rows are append-only.
type BattleRecord struct {
	ID            string       `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlayerID      string       `gorm:"index;not null" json:"player_id"` // PlayerState.ExternalUserID
	OpponentID    int          `gorm:"not null" json:"opponent_id"`
	UsedPokemonID int          `gorm:"not null" json:"used_pokemon_id"`
	Result        BattleResult `gorm:"type:varchar(8);not null;check:result IN ('win','lose','draw')" json:"result"`
	XPEarned      int64        `gorm:"not null" json:"xp_earned"`
	CreatedAt     time.Time    `gorm:"autoCreateTime;index" json:"timestamp"`
}
