package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizer-bot/internal/model"
	"organizer-bot/internal/repository"
)

func TestTaskDeleteIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := repository.NewCategoryRepository(db)
	tasks := repository.NewTaskRepository(db)
	createUser(t, db, 1)
	createUser(t, db, 2)

	category, _, err := categories.GetOrCreate(ctx, 1, "Работа")
	require.NoError(t, err)

	task := model.Task{UserID: 1, CategoryID: category.ID, Description: "отчёт"}
	require.NoError(t, tasks.Create(ctx, &task))

	// Another user cannot delete it and the owner's list is untouched.
	assert.ErrorIs(t, tasks.Delete(ctx, 2, task.ID), repository.ErrNotFound)

	remaining, err := tasks.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 1)

	require.NoError(t, tasks.Delete(ctx, 1, task.ID))
	remaining, err = tasks.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestTaskListKeepsInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := repository.NewCategoryRepository(db)
	tasks := repository.NewTaskRepository(db)
	createUser(t, db, 1)

	category, _, err := categories.GetOrCreate(ctx, 1, "Работа")
	require.NoError(t, err)

	for _, description := range []string{"первая", "вторая", "третья"} {
		require.NoError(t, tasks.Create(ctx, &model.Task{UserID: 1, CategoryID: category.ID, Description: description}))
	}

	list, err := tasks.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "первая", list[0].Description)
	assert.Equal(t, "вторая", list[1].Description)
	assert.Equal(t, "третья", list[2].Description)
}
