package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"organizer-bot/internal/dialog"
)

// Bot connects Telegram updates to the dialog machine.
type Bot struct {
	api     *tgbotapi.BotAPI
	machine *dialog.Machine
	log     *zap.SugaredLogger
}

func New(token string, machine *dialog.Machine, log *zap.SugaredLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Infow("bot authorized", "account", api.Self.UserName)

	return &Bot{
		api:     api,
		machine: machine,
		log:     log,
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Infow("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				b.log.Errorw("handle callback", "err", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				b.log.Errorw("handle message", "err", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		b.log.Infow("command received", "user", msg.From.ID, "command", msg.Command())
		switch msg.Command() {
		case "start":
			reply := b.machine.Start(ctx, dialog.Profile{
				ID:        msg.From.ID,
				Username:  msg.From.UserName,
				FirstName: msg.From.FirstName,
			})
			return b.send(msg.Chat.ID, reply)
		case "help":
			return b.send(msg.Chat.ID, b.machine.Help())
		}
		// Unknown commands run through the machine as plain text so an
		// active flow still consumes them.
	}

	return b.send(msg.Chat.ID, b.machine.HandleText(ctx, msg.From.ID, msg.Text))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Warnw("callback ack", "err", err)
	}

	reply := b.machine.HandleSelection(ctx, cb.From.ID, cb.Data)
	return b.edit(cb.Message.Chat.ID, cb.Message.MessageID, reply)
}

// Send delivers a scheduler notification with the main menu attached.
// It satisfies service.Sender.
func (b *Bot) Send(chatID int64, text string) error {
	return b.send(chatID, dialog.Reply{Text: text, Keyboard: dialog.Keyboard{Kind: dialog.KeyboardMain}})
}

func (b *Bot) send(chatID int64, reply dialog.Reply) error {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb, ok := renderKeyboard(reply.Keyboard); ok {
		msg.ReplyMarkup = kb
	}
	_, err := b.api.Send(msg)
	return err
}

// edit rewrites the message that carried the pressed keyboard, falling
// back to a fresh message when Telegram refuses the edit.
func (b *Bot) edit(chatID int64, messageID int, reply dialog.Reply) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
	edit.ParseMode = tgbotapi.ModeHTML
	if kb, ok := renderKeyboard(reply.Keyboard); ok {
		edit.ReplyMarkup = &kb
	}
	if _, err := b.api.Send(edit); err != nil {
		return b.send(chatID, reply)
	}
	return nil
}
