package repository

import (
	"context"
	"errors"

	"pokemon-game-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository interface {
	All(ctx context.Context) ([]models.Pokemon, error)
	Get(ctx context.Context, id int) (*models.Pokemon, error)
	Create(ctx context.Context, p *models.Pokemon) error
	Update(ctx context.Context, p *models.Pokemon) error
	Delete(ctx context.Context, id int) error
	// Upsert inserts or refreshes entries by id.
	Upsert(ctx context.Context, pokemons []models.Pokemon) error
}

type GormCatalogRepository struct {
	DB *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{DB: db}
}

func (r *GormCatalogRepository) All(ctx context.Context) ([]models.Pokemon, error) {
	var pokemons []models.Pokemon
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&pokemons).Error
	return pokemons, err
}

func (r *GormCatalogRepository) Get(ctx context.Context, id int) (*models.Pokemon, error) {
	var p models.Pokemon
	if err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts p. A soft-deleted row with the same id is revived with p's fields.
func (r *GormCatalogRepository) Create(ctx context.Context, p *models.Pokemon) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Pokemon
		err := tx.Unscoped().First(&existing, "id = ?", p.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(p).Error
		}
		if err != nil {
			return err
		}
		if !existing.DeletedAt.Valid {
			return ErrAlreadyExists
		}

		if err := tx.Unscoped().Model(&models.Pokemon{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"name":       p.Name,
				"slug":       p.Slug,
				"types":      p.Types,
				"sprite_url": p.SpriteURL,
				"deleted_at": nil,
			}).Error; err != nil {
			return err
		}
		return tx.First(p, "id = ?", p.ID).Error
	})
}

func (r *GormCatalogRepository) Update(ctx context.Context, p *models.Pokemon) error {
	res := r.DB.WithContext(ctx).Model(&models.Pokemon{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":       p.Name,
			"slug":       p.Slug,
			"types":      p.Types,
			"sprite_url": p.SpriteURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCatalogRepository) Delete(ctx context.Context, id int) error {
	res := r.DB.WithContext(ctx).Delete(&models.Pokemon{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Upsert does a bulk ON CONFLICT (id) DO UPDATE in one statement and revives soft-deleted rows.
func (r *GormCatalogRepository) Upsert(ctx context.Context, pokemons []models.Pokemon) error {
	if len(pokemons) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"slug",
				"types",
				"sprite_url",
				"updated_at",
				"deleted_at",
			}),
		},
	).Create(&pokemons).Error
}
