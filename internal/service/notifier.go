package service

import (
	"context"
	"time"

	"github.com/jmhodges/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"organizer-bot/internal/repository"
)

// Sender delivers a rendered message to a chat.
type Sender interface {
	Send(chatID int64, text string) error
}

// Notifier pushes the scheduled digests to every registered user. Users
// are re-enumerated on every run so users added after startup are picked
// up without a restart.
type Notifier struct {
	users     *repository.UserRepository
	tasks     *TaskService
	reminders *ReminderService
	digest    *Digest
	sender    Sender
	clk       clock.Clock
	loc       *time.Location
	log       *zap.SugaredLogger
}

func NewNotifier(users *repository.UserRepository, tasks *TaskService, reminders *ReminderService, digest *Digest, sender Sender, clk clock.Clock, loc *time.Location, log *zap.SugaredLogger) *Notifier {
	return &Notifier{
		users:     users,
		tasks:     tasks,
		reminders: reminders,
		digest:    digest,
		sender:    sender,
		clk:       clk,
		loc:       loc,
		log:       log,
	}
}

// SendTaskDigests delivers the evening task list to each user that has
// tasks. One user's failure never blocks the rest of the sweep.
func (n *Notifier) SendTaskDigests(ctx context.Context) error {
	users, err := n.users.ListAll(ctx)
	if err != nil {
		return errors.Wrap(err, "list users")
	}

	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		tasks, names, err := n.tasks.ListWithCategories(ctx, user.ID)
		if err != nil {
			n.log.Errorw("build task digest", "user", user.ID, "err", err)
			continue
		}
		if len(tasks) == 0 {
			continue
		}
		if err := n.sender.Send(user.ID, n.digest.TaskList(tasks, names)); err != nil {
			n.log.Errorw("send task digest", "user", user.ID, "err", err)
		}
	}
	return nil
}

// SendTodayReminders delivers the morning digest of reminders whose date
// falls on the current day in the configured location.
func (n *Notifier) SendTodayReminders(ctx context.Context) error {
	users, err := n.users.ListAll(ctx)
	if err != nil {
		return errors.Wrap(err, "list users")
	}

	now := n.clk.Now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		reminders, err := n.reminders.ListForDay(ctx, user.ID, now, n.loc)
		if err != nil {
			n.log.Errorw("check today reminders", "user", user.ID, "err", err)
			continue
		}
		if len(reminders) == 0 {
			continue
		}
		if err := n.sender.Send(user.ID, n.digest.TodayReminders(reminders)); err != nil {
			n.log.Errorw("send reminder digest", "user", user.ID, "err", err)
		}
	}
	return nil
}
