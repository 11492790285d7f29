package service

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"organizer-bot/internal/model"
	"organizer-bot/internal/repository"
)

// ReminderService wraps reminder business logic.
type ReminderService struct {
	repo *repository.ReminderRepository
}

func NewReminderService(repo *repository.ReminderRepository) *ReminderService {
	return &ReminderService{repo: repo}
}

func (s *ReminderService) Add(ctx context.Context, userID int64, date time.Time, description string) (*model.Reminder, error) {
	reminder := model.Reminder{
		UserID:      userID,
		Date:        date,
		Description: description,
	}
	if err := s.repo.Create(ctx, &reminder); err != nil {
		return nil, errors.Wrap(err, "add reminder")
	}
	return &reminder, nil
}

func (s *ReminderService) List(ctx context.Context, userID int64) ([]model.Reminder, error) {
	reminders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list reminders")
	}
	return reminders, nil
}

// ListForDay returns reminders dated within the calendar day containing
// now in the given location. Reminder dates are day-granularity values
// stored at UTC midnight, so the window uses UTC midnights of that
// calendar day.
func (s *ReminderService) ListForDay(ctx context.Context, userID int64, now time.Time, loc *time.Location) ([]model.Reminder, error) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	reminders, err := s.repo.ListBetween(ctx, userID, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "list reminders for day")
	}
	return reminders, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID int64, reminderID uint) error {
	return s.repo.Delete(ctx, userID, reminderID)
}
