package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"confusion/internal/model"
)

// DishRepository persists dishes as aggregates: a dish is always loaded and
// saved together with its ordered comments.
type DishRepository interface {
	CatalogRepository[model.Dish]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Dish, error)
}

type dishRepository struct {
	db *gorm.DB
}

// NewDishRepository creates a new dish repository.
func NewDishRepository(db *gorm.DB) DishRepository {
	return &dishRepository{db: db}
}

func (r *dishRepository) withComments(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	})
}

// List returns all dishes with their comments.
func (r *dishRepository) List(ctx context.Context) ([]model.Dish, error) {
	var dishes []model.Dish
	if err := r.withComments(ctx).Order("created_at").Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// FindByID finds a dish by ID.
func (r *dishRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Dish, error) {
	var dish model.Dish
	if err := r.withComments(ctx).Where("id = ?", id).First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

// FindByIDs returns the dishes that exist among ids, in no particular order.
func (r *dishRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Dish, error) {
	if len(ids) == 0 {
		return []model.Dish{}, nil
	}
	var dishes []model.Dish
	if err := r.withComments(ctx).Where("id IN ?", ids).Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// FindByName finds a dish by its unique name.
func (r *dishRepository) FindByName(ctx context.Context, name string) (*model.Dish, error) {
	var dish model.Dish
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

// Create inserts the dish and any comments it carries.
func (r *dishRepository) Create(ctx context.Context, dish *model.Dish) error {
	for i := range dish.Comments {
		dish.Comments[i].Seq = i
	}
	return r.db.WithContext(ctx).Create(dish).Error
}

// Update saves the dish fields and replaces its comment sequence in one transaction.
func (r *dishRepository) Update(ctx context.Context, dish *model.Dish) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Comments").Save(dish).Error; err != nil {
			return err
		}
		if err := tx.Where("dish_id = ?", dish.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if len(dish.Comments) == 0 {
			return nil
		}
		for i := range dish.Comments {
			dish.Comments[i].DishID = dish.ID
			dish.Comments[i].Seq = i
		}
		return tx.Create(&dish.Comments).Error
	})
}

// DeleteAll removes every dish and comment. It is irreversible.
func (r *dishRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := all.Delete(&model.Dish{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

// Delete removes one dish and its comments.
func (r *dishRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Dish{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}
