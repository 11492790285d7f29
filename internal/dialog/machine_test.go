package dialog_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"organizer-bot/internal/dialog"
	"organizer-bot/internal/messages"
	"organizer-bot/internal/model"
	"organizer-bot/internal/repository"
	"organizer-bot/internal/service"
)

type fixture struct {
	machine    *dialog.Machine
	store      *dialog.Store
	msgs       *messages.Catalog
	users      *repository.UserRepository
	categories *service.CategoryService
	tasks      *service.TaskService
	reminders  *service.ReminderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := repository.NewDB(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// In-memory SQLite gives every connection its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	log := zap.NewNop().Sugar()
	msgs, err := messages.New(log)
	require.NoError(t, err)

	users := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	categories := service.NewCategoryService(categoryRepo)
	tasks := service.NewTaskService(repository.NewTaskRepository(db), categoryRepo)
	reminders := service.NewReminderService(repository.NewReminderRepository(db))
	digest := service.NewDigest(msgs)

	store := dialog.NewStore()
	return &fixture{
		machine:    dialog.NewMachine(store, users, categories, tasks, reminders, digest, msgs, log),
		store:      store,
		msgs:       msgs,
		users:      users,
		categories: categories,
		tasks:      tasks,
		reminders:  reminders,
	}
}

// register inserts the user and returns a category ready for tasks.
func (f *fixture) register(t *testing.T, ctx context.Context, userID int64) *model.Category {
	t.Helper()
	_, err := f.users.GetOrCreate(ctx, userID, "user", "Имя")
	require.NoError(t, err)
	category, _, err := f.categories.GetOrCreate(ctx, userID, "Дом")
	require.NoError(t, err)
	return category
}

func TestStartGreetsByUsernameWithFirstNameFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reply := f.machine.Start(ctx, dialog.Profile{ID: 1, Username: "ivan", FirstName: "Иван"})
	assert.Contains(t, reply.Text, "ivan")
	assert.Equal(t, dialog.KeyboardMain, reply.Keyboard.Kind)

	reply = f.machine.Start(ctx, dialog.Profile{ID: 2, FirstName: "Ольга"})
	assert.Contains(t, reply.Text, "Ольга")

	users, err := f.users.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAddCategoryFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, ctx, 1)

	reply := f.machine.HandleSelection(ctx, 1, dialog.CallbackAddCategory)
	assert.Equal(t, f.msgs.Get("input_category_name"), reply.Text)
	assert.Equal(t, dialog.KeyboardBack, reply.Keyboard.Kind)

	reply = f.machine.HandleText(ctx, 1, "Работа")
	assert.Equal(t, f.msgs.GetData("category_added", map[string]interface{}{"Category": "Работа"}), reply.Text)

	names := categoryNames(t, ctx, f, 1)
	assert.Equal(t, []string{"Дом", "Работа"}, names)
}

func TestAddCategoryDuplicateReportsExists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, ctx, 1)

	f.machine.HandleSelection(ctx, 1, dialog.CallbackAddCategory)
	reply := f.machine.HandleText(ctx, 1, "Дом")
	assert.Equal(t, f.msgs.GetData("category_exists", map[string]interface{}{"Category": "Дом"}), reply.Text)
	assert.Len(t, categoryNames(t, ctx, f, 1), 1)
}

func TestDeleteCategoryBySelectionCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	category := f.register(t, ctx, 1)
	_, err := f.tasks.Create(ctx, 1, category.ID, "посуда")
	require.NoError(t, err)

	reply := f.machine.HandleSelection(ctx, 1, dialog.CallbackDeleteCategory)
	assert.Equal(t, dialog.KeyboardOptions, reply.Keyboard.Kind)
	require.Len(t, reply.Keyboard.Options, 1)

	reply = f.machine.HandleSelection(ctx, 1, reply.Keyboard.Options[0].Data)
	assert.Equal(t, f.msgs.Get("category_deleted"), reply.Text)

	assert.Empty(t, categoryNames(t, ctx, f, 1))
	tasks, _, err := f.tasks.ListWithCategories(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDeleteCategoryByTypedName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, ctx, 1)

	f.machine.HandleSelection(ctx, 1, dialog.CallbackDeleteCategory)
	reply := f.machine.HandleText(ctx, 1, "Дом")
	assert.Equal(t, f.msgs.Get("category_deleted"), reply.Text)
	assert.Empty(t, categoryNames(t, ctx, f, 1))
}

func TestDeleteCategoryByUnknownNameFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, ctx, 1)

	f.machine.HandleSelection(ctx, 1, dialog.CallbackDeleteCategory)
	reply := f.machine.HandleText(ctx, 1, "нет такой")
	assert.Equal(t, f.msgs.Get("error_occurred"), reply.Text)

	// Conversation is reset, further text is inert.
	reply = f.machine.HandleText(ctx, 1, "Дом")
	assert.Equal(t, f.msgs.Get("other_messages"), reply.Text)
	assert.Len(t, categoryNames(t, ctx, f, 1), 1)
}

func TestRenameCategoryFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, ctx, 1)

	reply := f.machine.HandleSelection(ctx, 1, dialog.CallbackUpdateCategory)
	require.Len(t, reply.Keyboard.Options, 1)

	reply = f.machine.HandleSelection(ctx, 1, reply.Keyboard.Options[0].Data)
	assert.Equal(t, f.msgs.Get("input_new_category_name"), reply.Text)

	reply = f.machine.HandleText(ctx, 1, "Квартира")
	assert.Equal(t, f.msgs.GetData("category_updated", map[string]interface{}{"Category": "Квартира"}), reply.Text)
	assert.Equal(t, []string{"Квартира"}, categoryNames(t, ctx, f, 1))
}

func TestAddTaskFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	category := f.register(t, ctx, 1)

	reply := f.machine.HandleSelection(ctx, 1, dialog.CallbackAddTask)
	assert.Equal(t, f.msgs.Get("select_category_for_task"), reply.Text)
	require.Len(t, reply.Keyboard.Options, 1)

	// Presenting categories must not switch the mode by itself.
	assert.Equal(t, dialog.ModeIdle, f.store.Get(1).Mode)

	reply = f.machine.HandleSelection(ctx, 1, reply.Keyboard.Options[0].Data)
	assert.Equal(t, f.msgs.Get("input_task_description"), reply.Text)

	reply = f.machine.HandleText(ctx, 1, "посуда")
	assert.Equal(t, f.msgs.GetData("task_added", map[string]interface{}{"Task": "посуда"}), reply.Text)

	tasks, names, err := f.tasks.ListWithCategories(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "посуда", tasks[0].Description)
	assert.Equal(t, "Дом", names[category.ID])
}

func TestBareCategorySelectionStartsTaskFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	category := f.register(t, ctx, 1)

	// A category button from an old message, pressed with no mode set.
	reply := f.machine.HandleSelection(ctx, 1, "category_"+uintString(category.ID))
	assert.Equal(t, f.msgs.Get("input_task_description"), reply.Text)

	f.machine.HandleText(ctx, 1, "полить цветы")
	tasks, _, err := f.tasks.ListWithCategories(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestListTasksEmptyAndGrouped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	category := f.register(t, ctx, 1)

	reply := f.machine.HandleSelection(ctx, 1, dialog.CallbackListTasks)
	assert.Equal(t, f.msgs.Get("no_tasks"), reply.Text)

	_, err := f.tasks.Create(ctx, 1, category.ID, "посуда")
	require.NoError(t, err)
	reply = f.machine.HandleSelection(ctx, 1, dialog.CallbackListTasks)
	assert.Contains(t, reply.Text, "<b>Дом:</b>")
	assert.Contains(t, reply.Text, "1. посуда")
}

func TestDeleteTaskFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	category := f.register(t, ctx, 1)
	_, err := f.tasks.Create(ctx, 1, category.ID, "посуда")
	require.NoError(t, err)

	reply := f.machine.HandleSelection(ctx, 1, dialog.CallbackDeleteTask)
	require.Len(t, reply.Keyboard.Options, 1)

	reply = f.machine.HandleSelection(ctx, 1, reply.Keyboard.Options[0].Data)
	assert.Equal(t, f.msgs.Get("task_deleted"), reply.Text)

	tasks, _, err := f.tasks.ListWithCategories(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDeleteTaskOfAnotherUserFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	category := f.register(t, ctx, 1)
	f.register(t, ctx, 2)
	task, err := f.tasks.Create(ctx, 1, category.ID, "посуда")
	require.NoError(t, err)

	reply := f.machine.HandleSelection(ctx, 2, "task_"+uintString(task.ID))
	assert.Equal(t, f.msgs.Get("error_occurred"), reply.Text)

	tasks, _, err := f.tasks.ListWithCategories(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestReminderInputValid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, ctx, 1)

	reply := f.machine.HandleSelection(ctx, 1, dialog.CallbackAddReminder)
	assert.Equal(t, f.msgs.Get("input_date_and_description"), reply.Text)

	reply = f.machine.HandleText(ctx, 1, "31.12.2025 Новый год")
	assert.Equal(t, f.msgs.GetData("reminder_added", map[string]interface{}{"Reminder": "Новый год"}), reply.Text)

	reminders, err := f.reminders.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Новый год", reminders[0].Description)
	assert.Equal(t, "31.12.2025", reminders[0].Date.Format(service.DateLayout))
}

func TestReminderInputInvalidFormat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, ctx, 1)

	for _, text := range []string{"Новый год", "2025-12-31 Новый год", "31.12.2025"} {
		f.machine.HandleSelection(ctx, 1, dialog.CallbackAddReminder)
		reply := f.machine.HandleText(ctx, 1, text)
		assert.Equal(t, f.msgs.Get("invalid_format"), reply.Text, text)
		assert.Equal(t, dialog.ModeIdle, f.store.Get(1).Mode, text)
	}

	reminders, err := f.reminders.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, reminders)
}

func TestDeleteReminderFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, ctx, 1)
	f.machine.HandleSelection(ctx, 1, dialog.CallbackAddReminder)
	f.machine.HandleText(ctx, 1, "31.12.2025 Новый год")

	reply := f.machine.HandleSelection(ctx, 1, dialog.CallbackDeleteReminder)
	require.Len(t, reply.Keyboard.Options, 1)
	assert.Equal(t, "31.12.2025 - Новый год", reply.Keyboard.Options[0].Label)

	reply = f.machine.HandleSelection(ctx, 1, reply.Keyboard.Options[0].Data)
	assert.Equal(t, f.msgs.Get("reminder_deleted"), reply.Text)

	reminders, err := f.reminders.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, reminders)
}

func TestDeleteReminderOfAnotherUserFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, ctx, 1)
	f.register(t, ctx, 2)
	f.machine.HandleSelection(ctx, 1, dialog.CallbackAddReminder)
	f.machine.HandleText(ctx, 1, "31.12.2025 Новый год")

	reminders, err := f.reminders.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reminders, 1)

	reply := f.machine.HandleSelection(ctx, 2, "reminder_"+uintString(reminders[0].ID))
	assert.Equal(t, f.msgs.Get("error_occurred"), reply.Text)

	reminders, err = f.reminders.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, reminders, 1)
}

func TestIdleTextNeverMutates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, ctx, 1)

	reply := f.machine.HandleText(ctx, 1, "просто текст")
	assert.Equal(t, f.msgs.Get("other_messages"), reply.Text)

	assert.Len(t, categoryNames(t, ctx, f, 1), 1)
	tasks, _, err := f.tasks.ListWithCategories(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestBackCancelsPendingFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, ctx, 1)

	f.machine.HandleSelection(ctx, 1, dialog.CallbackAddCategory)
	reply := f.machine.HandleSelection(ctx, 1, dialog.CallbackBack)
	assert.Equal(t, f.msgs.Get("menu"), reply.Text)
	assert.Equal(t, dialog.KeyboardSections, reply.Keyboard.Kind)

	reply = f.machine.HandleText(ctx, 1, "Работа")
	assert.Equal(t, f.msgs.Get("other_messages"), reply.Text)
	assert.Len(t, categoryNames(t, ctx, f, 1), 1)
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func categoryNames(t *testing.T, ctx context.Context, f *fixture, userID int64) []string {
	t.Helper()
	categories, err := f.categories.List(ctx, userID)
	require.NoError(t, err)
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	return names
}
