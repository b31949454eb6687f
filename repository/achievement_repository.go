package repository

import (
	"context"

	"pokemon-game-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	SeedTypes(ctx context.Context, types []models.AchievementType) error
	Types(ctx context.Context) ([]models.AchievementType, error)
	Awarded(ctx context.Context, playerID string) ([]models.PlayerAchievement, error)
	// Award records code for the player once and reports whether it was newly awarded.
	Award(ctx context.Context, playerID, code string) (bool, error)
}

type GormAchievementRepository struct {
	DB *gorm.DB
}

func NewGormAchievementRepository(db *gorm.DB) *GormAchievementRepository {
	return &GormAchievementRepository{DB: db}
}

func (r *GormAchievementRepository) SeedTypes(ctx context.Context, types []models.AchievementType) error {
	if len(types) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "rarity", "threshold"}),
	}).Create(&types).Error
}

func (r *GormAchievementRepository) Types(ctx context.Context) ([]models.AchievementType, error) {
	var types []models.AchievementType
	err := r.DB.WithContext(ctx).Order("code ASC").Find(&types).Error
	return types, err
}

func (r *GormAchievementRepository) Awarded(ctx context.Context, playerID string) ([]models.PlayerAchievement, error) {
	var awarded []models.PlayerAchievement
	err := r.DB.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("awarded_at ASC").
		Find(&awarded).Error
	return awarded, err
}

func (r *GormAchievementRepository) Award(ctx context.Context, playerID, code string) (bool, error) {
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "code"}},
		DoNothing: true,
	}).Create(&models.PlayerAchievement{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Code:     code,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
