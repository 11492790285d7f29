package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"organizer-bot/internal/dialog"
)

const (
	btnOpenMenu       = "❗ Открыть меню ❗"
	btnBack           = "🚫 Отмена"
	btnCategories     = "🗂 Управление категориями"
	btnTasks          = "⏰ Управление напоминаниями"
	btnReminders      = "📅 Управление событиями"
	btnAddCategory    = "➕ Новая категория"
	btnUpdateCategory = "✏️ Изменить категорию"
	btnDeleteCategory = "🗑 Удалить категорию"
	btnListTasks      = "📋 Мои напоминания"
	btnAddTask        = "➕ Новое напоминание"
	btnDeleteTask     = "🗑 Удалить напоминание"
	btnListReminders  = "📅 Мои события"
	btnAddReminder    = "➕ Новое событие"
	btnDeleteReminder = "🗑 Удалить событие"
)

func renderKeyboard(kb dialog.Keyboard) (tgbotapi.InlineKeyboardMarkup, bool) {
	switch kb.Kind {
	case dialog.KeyboardMain:
		return tgbotapi.NewInlineKeyboardMarkup(
			buttonRow(btnOpenMenu, dialog.CallbackOpenMenu),
		), true

	case dialog.KeyboardSections:
		return tgbotapi.NewInlineKeyboardMarkup(
			buttonRow(btnCategories, dialog.CallbackCategoriesMenu),
			buttonRow(btnTasks, dialog.CallbackTasksMenu),
			buttonRow(btnReminders, dialog.CallbackRemindersMenu),
			backRow(),
		), true

	case dialog.KeyboardCategoryMenu:
		return tgbotapi.NewInlineKeyboardMarkup(
			buttonRow(btnAddCategory, dialog.CallbackAddCategory),
			buttonRow(btnUpdateCategory, dialog.CallbackUpdateCategory),
			buttonRow(btnDeleteCategory, dialog.CallbackDeleteCategory),
			backRow(),
		), true

	case dialog.KeyboardTaskMenu:
		return tgbotapi.NewInlineKeyboardMarkup(
			buttonRow(btnListTasks, dialog.CallbackListTasks),
			buttonRow(btnAddTask, dialog.CallbackAddTask),
			buttonRow(btnDeleteTask, dialog.CallbackDeleteTask),
			backRow(),
		), true

	case dialog.KeyboardReminderMenu:
		return tgbotapi.NewInlineKeyboardMarkup(
			buttonRow(btnListReminders, dialog.CallbackListReminders),
			buttonRow(btnAddReminder, dialog.CallbackAddReminder),
			buttonRow(btnDeleteReminder, dialog.CallbackDeleteReminder),
			backRow(),
		), true

	case dialog.KeyboardBack:
		return tgbotapi.NewInlineKeyboardMarkup(backRow()), true

	case dialog.KeyboardOptions:
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.Options)+1)
		for _, opt := range kb.Options {
			rows = append(rows, buttonRow(opt.Label, opt.Data))
		}
		rows = append(rows, backRow())
		return tgbotapi.NewInlineKeyboardMarkup(rows...), true

	default:
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
}

func buttonRow(label, data string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, data))
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return buttonRow(btnBack, dialog.CallbackBack)
}
