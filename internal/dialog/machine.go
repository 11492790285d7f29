package dialog

import (
	"context"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"organizer-bot/internal/messages"
	"organizer-bot/internal/repository"
	"organizer-bot/internal/service"
)

// Profile carries the identity fields of the chat peer.
type Profile struct {
	ID        int64
	Username  string
	FirstName string
}

// Machine interprets one unit of user input against the current
// conversation mode, performs the persistence operation and computes the
// next mode. It knows nothing about the transport: every transition
// returns a Reply and never an error — failures are converted to the
// generic error answer and the mode is reset to idle.
type Machine struct {
	store      *Store
	users      *repository.UserRepository
	categories *service.CategoryService
	tasks      *service.TaskService
	reminders  *service.ReminderService
	digest     *service.Digest
	msgs       *messages.Catalog
	log        *zap.SugaredLogger
}

func NewMachine(store *Store, users *repository.UserRepository, categories *service.CategoryService, tasks *service.TaskService, reminders *service.ReminderService, digest *service.Digest, msgs *messages.Catalog, log *zap.SugaredLogger) *Machine {
	return &Machine{
		store:      store,
		users:      users,
		categories: categories,
		tasks:      tasks,
		reminders:  reminders,
		digest:     digest,
		msgs:       msgs,
		log:        log,
	}
}

// Start registers the user on first contact and greets them by username,
// falling back to the first name.
func (m *Machine) Start(ctx context.Context, p Profile) Reply {
	user, err := m.users.GetOrCreate(ctx, p.ID, p.Username, p.FirstName)
	if err != nil {
		return m.failure(p.ID, "start", err)
	}

	name := user.Username
	if name == "" {
		name = user.FirstName
	}
	return Reply{
		Text:     m.msgs.GetData("welcome", map[string]interface{}{"Name": name}),
		Keyboard: Keyboard{Kind: KeyboardMain},
	}
}

func (m *Machine) Help() Reply {
	return Reply{Text: m.msgs.Get("help"), Keyboard: Keyboard{Kind: KeyboardMain}}
}

// HandleSelection processes one button press. Static menu callbacks are
// matched exactly; "<kind>_<id>" identifiers are dispatched on the current
// mode first, so the delete and update flows consume their category
// selection before the global "category for a new task" fallback applies.
func (m *Machine) HandleSelection(ctx context.Context, userID int64, data string) Reply {
	switch data {
	case CallbackOpenMenu:
		return Reply{Text: m.msgs.Get("menu"), Keyboard: Keyboard{Kind: KeyboardSections}}

	case CallbackBack:
		m.store.Clear(userID)
		return Reply{Text: m.msgs.Get("menu"), Keyboard: Keyboard{Kind: KeyboardSections}}

	case CallbackCategoriesMenu:
		return Reply{Text: m.msgs.Get("menu_categories"), Keyboard: Keyboard{Kind: KeyboardCategoryMenu}}

	case CallbackTasksMenu:
		return Reply{Text: m.msgs.Get("menu_tasks"), Keyboard: Keyboard{Kind: KeyboardTaskMenu}}

	case CallbackRemindersMenu:
		return Reply{Text: m.msgs.Get("menu_reminders"), Keyboard: Keyboard{Kind: KeyboardReminderMenu}}

	case CallbackAddCategory:
		m.store.Set(userID, State{Mode: ModeAwaitingCategoryName})
		return Reply{Text: m.msgs.Get("input_category_name"), Keyboard: Keyboard{Kind: KeyboardBack}}

	case CallbackDeleteCategory:
		return m.presentCategories(ctx, userID, ModeAwaitingCategoryDelete, "input_category_name_for_delete")

	case CallbackUpdateCategory:
		return m.presentCategories(ctx, userID, ModeAwaitingCategoryUpdate, "input_category_name_for_update")

	case CallbackAddTask:
		// No mode change here: the next category selection advances the
		// machine through the global category fallback below.
		return m.presentCategories(ctx, userID, ModeIdle, "select_category_for_task")

	case CallbackListTasks:
		return m.listTasks(ctx, userID)

	case CallbackDeleteTask:
		return m.presentTasksForDeletion(ctx, userID)

	case CallbackAddReminder:
		m.store.Set(userID, State{Mode: ModeAwaitingReminderInput})
		return Reply{Text: m.msgs.Get("input_date_and_description"), Keyboard: Keyboard{Kind: KeyboardBack}}

	case CallbackListReminders:
		return m.listReminders(ctx, userID)

	case CallbackDeleteReminder:
		return m.presentRemindersForDeletion(ctx, userID)
	}

	kind, id, ok := splitSelection(data)
	if !ok {
		m.log.Warnw("unrecognized selection", "user", userID, "data", data)
		return Reply{Text: m.msgs.Get("other_messages"), Keyboard: Keyboard{Kind: KeyboardMain}}
	}

	switch kind {
	case kindCategory:
		return m.handleCategorySelection(ctx, userID, id)
	case kindTask:
		return m.deleteTask(ctx, userID, id)
	case kindReminder:
		return m.deleteReminder(ctx, userID, id)
	default:
		m.log.Warnw("unrecognized selection kind", "user", userID, "data", data)
		return Reply{Text: m.msgs.Get("other_messages"), Keyboard: Keyboard{Kind: KeyboardMain}}
	}
}

// HandleText processes one line of free text against the current mode.
func (m *Machine) HandleText(ctx context.Context, userID int64, text string) Reply {
	state := m.store.Get(userID)
	text = strings.TrimSpace(text)

	switch state.Mode {
	case ModeAwaitingCategoryName:
		m.store.Clear(userID)
		_, created, err := m.categories.GetOrCreate(ctx, userID, text)
		if err != nil {
			return m.failure(userID, "add category", err)
		}
		if created {
			return Reply{
				Text:     m.msgs.GetData("category_added", map[string]interface{}{"Category": text}),
				Keyboard: Keyboard{Kind: KeyboardSections},
			}
		}
		return Reply{
			Text:     m.msgs.GetData("category_exists", map[string]interface{}{"Category": text}),
			Keyboard: Keyboard{Kind: KeyboardMain},
		}

	case ModeAwaitingCategoryDelete:
		// The delete prompt shows the categories as buttons but also
		// accepts the name typed out.
		m.store.Clear(userID)
		if err := m.categories.DeleteByName(ctx, userID, text); err != nil {
			return m.failure(userID, "delete category by name", err)
		}
		return Reply{Text: m.msgs.Get("category_deleted"), Keyboard: Keyboard{Kind: KeyboardMain}}

	case ModeAwaitingNewCategoryName:
		m.store.Clear(userID)
		if err := m.categories.Rename(ctx, userID, state.CategoryID, text); err != nil {
			return m.failure(userID, "rename category", err)
		}
		return Reply{
			Text:     m.msgs.GetData("category_updated", map[string]interface{}{"Category": text}),
			Keyboard: Keyboard{Kind: KeyboardMain},
		}

	case ModeAwaitingTaskDescription:
		m.store.Clear(userID)
		if _, err := m.tasks.Create(ctx, userID, state.CategoryID, text); err != nil {
			return m.failure(userID, "add task", err)
		}
		return Reply{
			Text:     m.msgs.GetData("task_added", map[string]interface{}{"Task": text}),
			Keyboard: Keyboard{Kind: KeyboardMain},
		}

	case ModeAwaitingReminderInput:
		m.store.Clear(userID)
		return m.addReminder(ctx, userID, text)

	default:
		// Idle free text never mutates anything.
		return Reply{Text: m.msgs.Get("other_messages"), Keyboard: Keyboard{Kind: KeyboardMain}}
	}
}

func (m *Machine) handleCategorySelection(ctx context.Context, userID int64, categoryID uint) Reply {
	state := m.store.Get(userID)

	switch state.Mode {
	case ModeAwaitingCategoryDelete:
		m.store.Clear(userID)
		if err := m.categories.DeleteByID(ctx, userID, categoryID); err != nil {
			return m.failure(userID, "delete category", err)
		}
		return Reply{Text: m.msgs.Get("category_deleted"), Keyboard: Keyboard{Kind: KeyboardMain}}

	case ModeAwaitingCategoryUpdate:
		m.store.Set(userID, State{Mode: ModeAwaitingNewCategoryName, CategoryID: categoryID})
		return Reply{Text: m.msgs.Get("input_new_category_name"), Keyboard: Keyboard{Kind: KeyboardBack}}

	default:
		// A bare category selection outside the delete/update flows means
		// "use this category for a new task".
		m.store.Set(userID, State{Mode: ModeAwaitingTaskDescription, CategoryID: categoryID})
		return Reply{Text: m.msgs.Get("input_task_description"), Keyboard: Keyboard{Kind: KeyboardBack}}
	}
}

func (m *Machine) addReminder(ctx context.Context, userID int64, text string) Reply {
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return Reply{Text: m.msgs.Get("invalid_format"), Keyboard: Keyboard{Kind: KeyboardMain}}
	}

	dateToken := text[:i]
	description := strings.TrimLeftFunc(text[i:], unicode.IsSpace)

	date, err := time.Parse(service.DateLayout, dateToken)
	if err != nil {
		return Reply{Text: m.msgs.Get("invalid_format"), Keyboard: Keyboard{Kind: KeyboardMain}}
	}

	if _, err := m.reminders.Add(ctx, userID, date, description); err != nil {
		return m.failure(userID, "add reminder", err)
	}
	return Reply{
		Text:     m.msgs.GetData("reminder_added", map[string]interface{}{"Reminder": description}),
		Keyboard: Keyboard{Kind: KeyboardMain},
	}
}

func (m *Machine) presentCategories(ctx context.Context, userID int64, mode Mode, promptID string) Reply {
	categories, err := m.categories.List(ctx, userID)
	if err != nil {
		return m.failure(userID, "list categories", err)
	}

	if mode != ModeIdle {
		m.store.Set(userID, State{Mode: mode})
	}

	options := make([]Option, 0, len(categories))
	for _, category := range categories {
		options = append(options, Option{
			Label: category.Name,
			Data:  selectionData(kindCategory, category.ID),
		})
	}
	return Reply{
		Text:     m.msgs.Get(promptID),
		Keyboard: Keyboard{Kind: KeyboardOptions, Options: options},
	}
}

func (m *Machine) listTasks(ctx context.Context, userID int64) Reply {
	tasks, names, err := m.tasks.ListWithCategories(ctx, userID)
	if err != nil {
		return m.failure(userID, "list tasks", err)
	}
	if len(tasks) == 0 {
		return Reply{Text: m.msgs.Get("no_tasks"), Keyboard: Keyboard{Kind: KeyboardMain}}
	}
	return Reply{Text: m.digest.TaskList(tasks, names), Keyboard: Keyboard{Kind: KeyboardMain}}
}

func (m *Machine) presentTasksForDeletion(ctx context.Context, userID int64) Reply {
	tasks, _, err := m.tasks.ListWithCategories(ctx, userID)
	if err != nil {
		return m.failure(userID, "list tasks", err)
	}
	if len(tasks) == 0 {
		return Reply{Text: m.msgs.Get("no_tasks"), Keyboard: Keyboard{Kind: KeyboardMain}}
	}

	options := make([]Option, 0, len(tasks))
	for _, task := range tasks {
		options = append(options, Option{
			Label: task.Description,
			Data:  selectionData(kindTask, task.ID),
		})
	}
	return Reply{
		Text:     m.msgs.Get("select_task_to_delete"),
		Keyboard: Keyboard{Kind: KeyboardOptions, Options: options},
	}
}

func (m *Machine) deleteTask(ctx context.Context, userID int64, taskID uint) Reply {
	m.store.Clear(userID)
	if err := m.tasks.Delete(ctx, userID, taskID); err != nil {
		return m.failure(userID, "delete task", err)
	}
	return Reply{Text: m.msgs.Get("task_deleted"), Keyboard: Keyboard{Kind: KeyboardMain}}
}

func (m *Machine) deleteReminder(ctx context.Context, userID int64, reminderID uint) Reply {
	m.store.Clear(userID)
	if err := m.reminders.Delete(ctx, userID, reminderID); err != nil {
		return m.failure(userID, "delete reminder", err)
	}
	return Reply{Text: m.msgs.Get("reminder_deleted"), Keyboard: Keyboard{Kind: KeyboardMain}}
}

func (m *Machine) listReminders(ctx context.Context, userID int64) Reply {
	reminders, err := m.reminders.List(ctx, userID)
	if err != nil {
		return m.failure(userID, "list reminders", err)
	}
	if len(reminders) == 0 {
		return Reply{Text: m.msgs.Get("no_reminders"), Keyboard: Keyboard{Kind: KeyboardMain}}
	}
	return Reply{Text: m.digest.ReminderList(reminders), Keyboard: Keyboard{Kind: KeyboardMain}}
}

func (m *Machine) presentRemindersForDeletion(ctx context.Context, userID int64) Reply {
	reminders, err := m.reminders.List(ctx, userID)
	if err != nil {
		return m.failure(userID, "list reminders", err)
	}
	if len(reminders) == 0 {
		return Reply{Text: m.msgs.Get("no_reminders"), Keyboard: Keyboard{Kind: KeyboardMain}}
	}

	options := make([]Option, 0, len(reminders))
	for _, reminder := range reminders {
		options = append(options, Option{
			Label: reminder.Date.Format(service.DateLayout) + " - " + reminder.Description,
			Data:  selectionData(kindReminder, reminder.ID),
		})
	}
	return Reply{
		Text:     m.msgs.Get("select_reminder_to_delete"),
		Keyboard: Keyboard{Kind: KeyboardOptions, Options: options},
	}
}

// failure converts any caught error into the generic user-facing answer
// and resets the conversation so the user is never left stuck in a mode.
func (m *Machine) failure(userID int64, action string, err error) Reply {
	m.log.Errorw("conversation action failed", "user", userID, "action", action, "err", err)
	m.store.Clear(userID)
	return Reply{Text: m.msgs.Get("error_occurred"), Keyboard: Keyboard{Kind: KeyboardMain}}
}
