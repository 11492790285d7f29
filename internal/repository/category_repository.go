package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"organizer-bot/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetOrCreate returns the category with the given name for this user,
// creating it when absent. The second result reports whether it was created.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, userID int64, name string) (*model.Category, bool, error) {
	var category model.Category
	db := r.db.WithContext(ctx)
	err := db.Where("user_id = ? AND name = ?", userID, name).First(&category).Error
	switch {
	case err == nil:
		return &category, false, nil
	case err == gorm.ErrRecordNotFound:
		category = model.Category{UserID: userID, Name: name}
		if err := db.Create(&category).Error; err != nil {
			return nil, false, fmt.Errorf("create category: %w", err)
		}
		return &category, true, nil
	default:
		return nil, false, fmt.Errorf("find category: %w", err)
	}
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID int64) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, userID int64, id uint) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&category).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteByID removes the category and all of its tasks in one transaction.
func (r *CategoryRepository) DeleteByID(ctx context.Context, userID int64, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		err := tx.Where("user_id = ? AND id = ?", userID, id).First(&category).Error
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("find category: %w", err)
		}
		return deleteCategoryTx(tx, &category)
	})
}

// DeleteByName removes the category with this name and all of its tasks.
func (r *CategoryRepository) DeleteByName(ctx context.Context, userID int64, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		err := tx.Where("user_id = ? AND name = ?", userID, name).First(&category).Error
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("find category: %w", err)
		}
		return deleteCategoryTx(tx, &category)
	})
}

func deleteCategoryTx(tx *gorm.DB, category *model.Category) error {
	if err := tx.Where("category_id = ?", category.ID).Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete category tasks: %w", err)
	}
	if err := tx.Delete(category).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// Rename updates the category name; fails with ErrNotFound when the
// category does not exist or belongs to another user.
func (r *CategoryRepository) Rename(ctx context.Context, userID int64, id uint, newName string) error {
	result := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("name", newName)
	if result.Error != nil {
		return fmt.Errorf("rename category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
