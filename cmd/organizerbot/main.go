package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"organizer-bot/internal/bot"
	"organizer-bot/internal/config"
	"organizer-bot/internal/dialog"
	"organizer-bot/internal/messages"
	"organizer-bot/internal/repository"
	"organizer-bot/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("config", "err", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("db", "err", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	msgs, err := messages.New(log)
	if err != nil {
		log.Fatalw("messages", "err", err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	categorySvc := service.NewCategoryService(categoryRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo)
	reminderSvc := service.NewReminderService(reminderRepo)
	digest := service.NewDigest(msgs)

	machine := dialog.NewMachine(dialog.NewStore(), userRepo, categorySvc, taskSvc, reminderSvc, digest, msgs, log)

	telegramBot, err := bot.New(cfg.BotToken, machine, log)
	if err != nil {
		log.Fatalw("bot", "err", err)
	}

	loc := cfg.Location()
	notifier := service.NewNotifier(userRepo, taskSvc, reminderSvc, digest, telegramBot, clock.New(), loc, log)

	scheduler := service.NewScheduler(loc)
	if _, err := scheduler.ScheduleDaily(cfg.TaskDigestTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := notifier.SendTaskDigests(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("task digest sweep", "err", err)
		}
	}); err != nil {
		log.Fatalw("schedule task digest", "err", err)
	}
	if _, err := scheduler.ScheduleDaily(cfg.ReminderTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := notifier.SendTodayReminders(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("reminder sweep", "err", err)
		}
	}); err != nil {
		log.Fatalw("schedule reminder check", "err", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Infow("organizer bot started", "timezone", cfg.Timezone,
		"task_digest_at", cfg.TaskDigestTime, "reminder_check_at", cfg.ReminderTime)
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalw("bot stopped with error", "err", err)
	}
	log.Infow("shutdown complete")
}
