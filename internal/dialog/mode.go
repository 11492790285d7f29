package dialog

// Mode is the conversation cursor of a multi-step dialog. The zero value
// means idle: free text is out-of-band chatter.
type Mode int

const (
	ModeIdle Mode = iota
	ModeAwaitingCategoryName
	ModeAwaitingCategoryDelete
	ModeAwaitingCategoryUpdate
	ModeAwaitingNewCategoryName
	ModeAwaitingTaskDescription
	ModeAwaitingReminderInput
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeAwaitingCategoryName:
		return "awaiting_category_name"
	case ModeAwaitingCategoryDelete:
		return "awaiting_category_selection_for_delete"
	case ModeAwaitingCategoryUpdate:
		return "awaiting_category_selection_for_update"
	case ModeAwaitingNewCategoryName:
		return "awaiting_new_category_name"
	case ModeAwaitingTaskDescription:
		return "awaiting_task_description"
	case ModeAwaitingReminderInput:
		return "awaiting_reminder_input"
	default:
		return "unknown"
	}
}
