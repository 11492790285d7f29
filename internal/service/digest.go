package service

import (
	"fmt"
	"html"
	"strings"

	"organizer-bot/internal/messages"
	"organizer-bot/internal/model"
)

// DateLayout is the user-facing reminder date format.
const DateLayout = "02.01.2006"

// Digest renders task and reminder lists for chat delivery.
type Digest struct {
	msgs *messages.Catalog
}

func NewDigest(msgs *messages.Catalog) *Digest {
	return &Digest{msgs: msgs}
}

// TaskList groups tasks by category in first-seen order and numbers each
// category's tasks. The same rendering is used by the "list tasks" action
// and the evening digest.
func (d *Digest) TaskList(tasks []model.Task, categoryNames map[uint]string) string {
	groups := make(map[uint][]string)
	var order []uint

	for _, task := range tasks {
		if _, ok := groups[task.CategoryID]; !ok {
			order = append(order, task.CategoryID)
		}
		groups[task.CategoryID] = append(groups[task.CategoryID], task.Description)
	}

	var b strings.Builder
	b.WriteString(d.msgs.Get("tasks_header"))
	b.WriteString("\n\n")
	for _, categoryID := range order {
		b.WriteString(fmt.Sprintf("<b>%s:</b>\n", html.EscapeString(categoryNames[categoryID])))
		for i, description := range groups[categoryID] {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, html.EscapeString(description)))
		}
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

// ReminderList renders reminders in storage order.
func (d *Digest) ReminderList(reminders []model.Reminder) string {
	lines := make([]string, 0, len(reminders))
	for _, reminder := range reminders {
		lines = append(lines, fmt.Sprintf("📅 <b>%s</b> - %s",
			reminder.Date.Format(DateLayout), html.EscapeString(reminder.Description)))
	}
	return strings.Join(lines, "\n")
}

// TodayReminders renders the morning digest of reminders dated today.
func (d *Digest) TodayReminders(reminders []model.Reminder) string {
	var b strings.Builder
	b.WriteString(d.msgs.Get("today_header"))
	for _, reminder := range reminders {
		b.WriteString(fmt.Sprintf("\n- %s: %s",
			reminder.Date.Format(DateLayout), html.EscapeString(reminder.Description)))
	}
	return b.String()
}
