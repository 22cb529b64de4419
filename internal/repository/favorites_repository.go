package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"confusion/internal/model"
)

// FavoritesRepository persists per-user favorites lists with their ordered entries.
type FavoritesRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.Favorites, error)
	Create(ctx context.Context, favorites *model.Favorites) error
	Update(ctx context.Context, favorites *model.Favorites) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type favoritesRepository struct {
	db *gorm.DB
}

// NewFavoritesRepository creates a new favorites repository.
func NewFavoritesRepository(db *gorm.DB) FavoritesRepository {
	return &favoritesRepository{db: db}
}

func (r *favoritesRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Favorites, error) {
	var favorites model.Favorites
	err := r.db.WithContext(ctx).
		Preload("Dishes", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Where("user_id = ?", userID).
		First(&favorites).Error
	if err != nil {
		return nil, err
	}
	return &favorites, nil
}

func (r *favoritesRepository) Create(ctx context.Context, favorites *model.Favorites) error {
	for i := range favorites.Dishes {
		favorites.Dishes[i].Seq = i
	}
	return r.db.WithContext(ctx).Create(favorites).Error
}

// Update saves the list and replaces its entries in one transaction.
func (r *favoritesRepository) Update(ctx context.Context, favorites *model.Favorites) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Dishes").Save(favorites).Error; err != nil {
			return err
		}
		if err := tx.Where("favorites_id = ?", favorites.ID).Delete(&model.FavoriteDish{}).Error; err != nil {
			return err
		}
		if len(favorites.Dishes) == 0 {
			return nil
		}
		for i := range favorites.Dishes {
			favorites.Dishes[i].ID = 0
			favorites.Dishes[i].FavoritesID = favorites.ID
			favorites.Dishes[i].Seq = i
		}
		return tx.Create(&favorites.Dishes).Error
	})
}

func (r *favoritesRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var favorites model.Favorites
		if err := tx.Where("user_id = ?", userID).First(&favorites).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}
		if err := tx.Where("favorites_id = ?", favorites.ID).Delete(&model.FavoriteDish{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&favorites)
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}
