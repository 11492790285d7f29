package service

import (
	"context"

	"github.com/pkg/errors"

	"organizer-bot/internal/model"
	"organizer-bot/internal/repository"
)

// CategoryService wraps category business logic.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// GetOrCreate returns the user's category with this name, creating it when
// absent. The second result reports whether a new record was created.
func (s *CategoryService) GetOrCreate(ctx context.Context, userID int64, name string) (*model.Category, bool, error) {
	category, created, err := s.repo.GetOrCreate(ctx, userID, name)
	if err != nil {
		return nil, false, errors.Wrap(err, "get or create category")
	}
	return category, created, nil
}

func (s *CategoryService) List(ctx context.Context, userID int64) ([]model.Category, error) {
	categories, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return categories, nil
}

// DeleteByID removes the category and cascades to its tasks.
func (s *CategoryService) DeleteByID(ctx context.Context, userID int64, id uint) error {
	return s.repo.DeleteByID(ctx, userID, id)
}

// DeleteByName removes the user's category with this name and its tasks.
func (s *CategoryService) DeleteByName(ctx context.Context, userID int64, name string) error {
	return s.repo.DeleteByName(ctx, userID, name)
}

func (s *CategoryService) Rename(ctx context.Context, userID int64, id uint, newName string) error {
	return s.repo.Rename(ctx, userID, id, newName)
}
