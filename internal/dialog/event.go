package dialog

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback data carried by the static menu buttons. The values are part of
// the wire protocol: already-rendered keyboards keep working across
// restarts as long as these stay stable.
const (
	CallbackOpenMenu       = "main_menu_pressed"
	CallbackBack           = "back_pressed"
	CallbackCategoriesMenu = "categories_pressed"
	CallbackTasksMenu      = "tasks_pressed"
	CallbackRemindersMenu  = "reminders_pressed"
	CallbackAddCategory    = "add_category_pressed"
	CallbackUpdateCategory = "update_category_pressed"
	CallbackDeleteCategory = "delete_category_pressed"
	CallbackListTasks      = "get_task_pressed"
	CallbackAddTask        = "add_task_pressed"
	CallbackDeleteTask     = "delete_task_pressed"
	CallbackListReminders  = "get_dates_pressed"
	CallbackAddReminder    = "add_date"
	CallbackDeleteReminder = "delete_date_pressed"
)

// Structural selection kinds. Option identifiers are encoded as
// "<kind>_<numeric-id>".
const (
	kindCategory = "category"
	kindTask     = "task"
	kindReminder = "reminder"
)

func selectionData(kind string, id uint) string {
	return fmt.Sprintf("%s_%d", kind, id)
}

// splitSelection splits "<kind>_<numeric-id>" on the first underscore.
// Static menu callbacks fail the numeric check and are not selections.
func splitSelection(data string) (kind string, id uint, ok bool) {
	i := strings.Index(data, "_")
	if i <= 0 {
		return "", 0, false
	}
	value, err := strconv.ParseUint(data[i+1:], 10, 32)
	if err != nil {
		return "", 0, false
	}
	return data[:i], uint(value), true
}
