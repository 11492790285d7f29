package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"organizer-bot/internal/model"
	"organizer-bot/internal/repository"
)

// TaskService wraps task business logic.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

// Create stores a task under the given category. The category must belong
// to the same user or the call fails with repository.ErrNotFound.
func (s *TaskService) Create(ctx context.Context, userID int64, categoryID uint, description string) (*model.Task, error) {
	if strings.TrimSpace(description) == "" {
		return nil, errors.New("description is required")
	}

	if _, err := s.categoryRepo.FindByID(ctx, userID, categoryID); err != nil {
		return nil, errors.Wrap(err, "check category")
	}

	task := model.Task{
		UserID:      userID,
		CategoryID:  categoryID,
		Description: description,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListWithCategories returns the user's tasks plus a category-name lookup
// for rendering grouped lists.
func (s *TaskService) ListWithCategories(ctx context.Context, userID int64) ([]model.Task, map[uint]string, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "list tasks")
	}

	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "list categories")
	}

	names := make(map[uint]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return tasks, names, nil
}

func (s *TaskService) Delete(ctx context.Context, userID int64, taskID uint) error {
	return s.taskRepo.Delete(ctx, userID, taskID)
}
