package repository

import (
	"context"
	"fmt"
	"time"

	"organizer-bot/internal/model"

	"gorm.io/gorm"
)

// ReminderRepository handles CRUD for dated reminders.
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

// ListByUser returns the user's reminders in storage order.
func (r *ReminderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// ListBetween returns reminders with a date in [start, end).
func (r *ReminderRepository) ListBetween(ctx context.Context, userID int64, start, end time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("id ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// Delete removes a reminder; fails with ErrNotFound when the reminder does
// not exist or belongs to another user.
func (r *ReminderRepository) Delete(ctx context.Context, userID int64, reminderID uint) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, reminderID).Delete(&model.Reminder{})
	if result.Error != nil {
		return fmt.Errorf("delete reminder: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
