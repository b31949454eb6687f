package models

import "gorm.io/datatypes"

// Pokemon is a catalog entry. IDs are national dex numbers, not generated.
type Pokemon struct {
	ID        int                         `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string                      `gorm:"not null" json:"name"`
	Slug      string                      `gorm:"uniqueIndex;not null" json:"slug"`
	Types     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"types"`
	SpriteURL string                      `gorm:"type:text" json:"sprite_url,omitempty"`

	Timestamps
}
