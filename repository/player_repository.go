package repository

import (
	"context"
	"errors"
	"time"

	"pokemon-game-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyExists   = errors.New("record already exists")
	ErrVersionConflict = errors.New("player state was modified concurrently")
)

// Mutation is everything a single request commits: the new player state plus the log rows
// produced while computing it.
type Mutation struct {
	Player    *models.PlayerState
	Battles   []models.BattleRecord
	Purchases []models.PurchaseRecord
}

type PlayerRepository interface {
	// EnsurePlayer returns the player's state, creating a fresh one on first access.
	EnsurePlayer(ctx context.Context, externalUserID string) (*models.PlayerState, error)
	// Commit writes m all-or-nothing. The write only applies if the stored version still
	// equals m.Player.Version; otherwise ErrVersionConflict. On success m.Player.Version is
	// advanced to the stored value.
	Commit(ctx context.Context, m *Mutation) error
	ListBattles(ctx context.Context, playerID string, limit int) ([]models.BattleRecord, error)
	ListBattlesBetween(ctx context.Context, from, to time.Time) ([]models.BattleRecord, error)
}

type GormPlayerRepository struct {
	DB *gorm.DB
}

func NewGormPlayerRepository(db *gorm.DB) *GormPlayerRepository {
	return &GormPlayerRepository{DB: db}
}

// EnsurePlayer ensures a PlayerState row exists (idempotent)
func (r *GormPlayerRepository) EnsurePlayer(ctx context.Context, externalUserID string) (*models.PlayerState, error) {
	db := r.DB.WithContext(ctx)

	var player models.PlayerState
	err := db.Where("external_user_id = ?", externalUserID).First(&player).Error
	if err == nil {
		return &player, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := models.PlayerState{
		ExternalUserID:   externalUserID,
		Level:            1,
		UnlockedPokemons: []int{},
		Version:          1,
	}
	// Two first requests may race; the loser's insert is a no-op and both re-read the row.
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_user_id"}},
		DoNothing: true,
	}).Create(&fresh).Error; err != nil {
		return nil, err
	}
	if err := db.Where("external_user_id = ?", externalUserID).First(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *GormPlayerRepository) Commit(ctx context.Context, m *Mutation) error {
	p := m.Player
	p.RecomputeLevel()

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PlayerState{}).
			Where("id = ? AND version = ?", p.ID, p.Version).
			Updates(map[string]interface{}{
				"xp":                      p.XP,
				"level":                   p.Level,
				"gold":                    p.Gold,
				"battle_wins":             p.BattleStats.Wins,
				"battle_losses":           p.BattleStats.Losses,
				"battle_draws":            p.BattleStats.Draws,
				"inventory_potions":       p.Inventory.Potions,
				"inventory_super_potions": p.Inventory.SuperPotions,
				"inventory_hyper_potions": p.Inventory.HyperPotions,
				"inventory_boosters":      p.Inventory.Boosters,
				"starter_pokemon":         p.StarterPokemon,
				"unlocked_pokemons":       p.UnlockedPokemons,
				"tutorial_completed":      p.TutorialCompleted,
				"version":                 p.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		if len(m.Battles) > 0 {
			if err := tx.Create(&m.Battles).Error; err != nil {
				return err
			}
		}
		if len(m.Purchases) > 0 {
			if err := tx.Create(&m.Purchases).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.Version++
	return nil
}

// ListBattles returns the newest battles first
func (r *GormPlayerRepository) ListBattles(ctx context.Context, playerID string, limit int) ([]models.BattleRecord, error) {
	var battles []models.BattleRecord
	err := r.DB.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&battles).Error
	return battles, err
}

// ListBattlesBetween returns battles with from <= created_at < to, oldest first
func (r *GormPlayerRepository) ListBattlesBetween(ctx context.Context, from, to time.Time) ([]models.BattleRecord, error) {
	var battles []models.BattleRecord
	err := r.DB.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&battles).Error
	return battles, err
}
