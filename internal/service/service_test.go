package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"todolists/internal/models"
	"todolists/internal/storage"
	"todolists/internal/testutil"
	"todolists/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forEachBackend(t *testing.T, fn func(t *testing.T, svc *ListService)) {
	t.Run("session", func(t *testing.T) {
		fn(t, NewListService(storage.NewSessionStore()))
	})
	t.Run("database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		fn(t, NewListService(storage.NewDatabaseStorage(db)))
	})
}

func requireValidationError(t *testing.T, err error, rule error) *validation.Error {
	t.Helper()
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, rule)
	return verr
}

func TestCreateList(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *ListService) {
		ctx := context.Background()

		list, err := svc.CreateList(ctx, "Groceries")
		require.NoError(t, err)
		assert.Equal(t, "Groceries", list.Name)

		lists, err := svc.Lists(ctx)
		require.NoError(t, err)
		require.Len(t, lists, 1)
		assert.Equal(t, 0, lists[0].TodosCount)
		assert.Equal(t, 0, lists[0].TodosRemainingCount)

		t.Run("rejects empty name", func(t *testing.T) {
			_, err := svc.CreateList(ctx, "")
			verr := requireValidationError(t, err, validation.ErrInvalidLength)
			assert.Equal(t, "List name must be between 1 and 100 characters.", verr.Message)
		})

		t.Run("rejects long name", func(t *testing.T) {
			_, err := svc.CreateList(ctx, strings.Repeat("x", 101))
			requireValidationError(t, err, validation.ErrInvalidLength)
		})

		t.Run("rejects duplicate name", func(t *testing.T) {
			_, err := svc.CreateList(ctx, "Groceries")
			verr := requireValidationError(t, err, validation.ErrDuplicateName)
			assert.Equal(t, "List name must be unique.", verr.Message)
			assert.Equal(t, "Groceries", verr.Value)
		})

		t.Run("names are case sensitive", func(t *testing.T) {
			_, err := svc.CreateList(ctx, "groceries")
			assert.NoError(t, err)
		})

		lists, err = svc.Lists(ctx)
		require.NoError(t, err)
		assert.Len(t, lists, 2, "Rejected lists must not be stored")
	})
}

func TestRenameList(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *ListService) {
		ctx := context.Background()
		work, err := svc.CreateList(ctx, "Work")
		require.NoError(t, err)
		_, err = svc.CreateList(ctx, "Home")
		require.NoError(t, err)

		t.Run("to its own name", func(t *testing.T) {
			list, err := svc.RenameList(ctx, work.ID, "Work")
			require.NoError(t, err)
			assert.Equal(t, "Work", list.Name)
		})

		t.Run("to another list's name", func(t *testing.T) {
			_, err := svc.RenameList(ctx, work.ID, "Home")
			requireValidationError(t, err, validation.ErrDuplicateName)
		})

		t.Run("to a new name", func(t *testing.T) {
			list, err := svc.RenameList(ctx, work.ID, "Office")
			require.NoError(t, err)
			assert.Equal(t, "Office", list.Name)

			found, err := svc.List(ctx, work.ID)
			require.NoError(t, err)
			assert.Equal(t, "Office", found.Name)
		})

		t.Run("invalid length", func(t *testing.T) {
			_, err := svc.RenameList(ctx, work.ID, "")
			requireValidationError(t, err, validation.ErrInvalidLength)
		})

		t.Run("missing list", func(t *testing.T) {
			_, err := svc.RenameList(ctx, 999, "Anything")
			assert.ErrorIs(t, err, storage.ErrListNotFound)
		})
	})
}

func TestDeleteList(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *ListService) {
		ctx := context.Background()
		list, err := svc.CreateList(ctx, "Temporary")
		require.NoError(t, err)
		_, err = svc.AddTodo(ctx, list.ID, "Something")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteList(ctx, list.ID))
		_, err = svc.List(ctx, list.ID)
		assert.ErrorIs(t, err, storage.ErrListNotFound)

		assert.NoError(t, svc.DeleteList(ctx, list.ID))

		// The name is free again
		_, err = svc.CreateList(ctx, "Temporary")
		assert.NoError(t, err)
	})
}

func TestAddTodo(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *ListService) {
		ctx := context.Background()
		list, err := svc.CreateList(ctx, "Groceries")
		require.NoError(t, err)

		todo, err := svc.AddTodo(ctx, list.ID, "Milk")
		require.NoError(t, err)
		assert.Equal(t, "Milk", todo.Name)
		assert.False(t, todo.Completed)

		_, err = svc.AddTodo(ctx, list.ID, "Milk")
		assert.NoError(t, err, "Todo names need not be unique")

		_, err = svc.AddTodo(ctx, list.ID, "")
		verr := requireValidationError(t, err, validation.ErrInvalidLength)
		assert.Equal(t, "Todo name must be between 1 and 100 characters.", verr.Message)
		assert.Equal(t, validation.FieldTodoName, verr.Field)

		_, err = svc.AddTodo(ctx, 999, "Orphan")
		assert.ErrorIs(t, err, storage.ErrListNotFound)

		found, err := svc.List(ctx, list.ID)
		require.NoError(t, err)
		assert.Len(t, found.Todos, 2)
	})
}

func TestDeleteTodo(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *ListService) {
		ctx := context.Background()
		list, err := svc.CreateList(ctx, "Work")
		require.NoError(t, err)
		todo, err := svc.AddTodo(ctx, list.ID, "Report")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteTodo(ctx, list.ID, todo.ID))
		assert.NoError(t, svc.DeleteTodo(ctx, list.ID, todo.ID))

		found, err := svc.List(ctx, list.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Todos)
	})
}

func TestSetTodoStatus(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *ListService) {
		ctx := context.Background()
		list, err := svc.CreateList(ctx, "Groceries")
		require.NoError(t, err)
		milk, err := svc.AddTodo(ctx, list.ID, "Milk")
		require.NoError(t, err)

		todo, err := svc.SetTodoStatus(ctx, list.ID, milk.ID, true)
		require.NoError(t, err)
		assert.True(t, todo.Completed)

		found, err := svc.List(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, found.Counts().Remaining)
		assert.True(t, found.IsComplete())

		todo, err = svc.SetTodoStatus(ctx, list.ID, milk.ID, false)
		require.NoError(t, err)
		assert.False(t, todo.Completed)

		_, err = svc.SetTodoStatus(ctx, list.ID, 999, true)
		assert.ErrorIs(t, err, storage.ErrTodoNotFound)

		_, err = svc.SetTodoStatus(ctx, 999, milk.ID, true)
		assert.ErrorIs(t, err, storage.ErrListNotFound)
	})
}

func TestCompleteAll(t *testing.T) {
	forEachBackend(t, func(t *testing.T, svc *ListService) {
		ctx := context.Background()
		list, err := svc.CreateList(ctx, "Chores")
		require.NoError(t, err)
		for _, name := range []string{"Dishes", "Laundry", "Vacuum"} {
			_, err := svc.AddTodo(ctx, list.ID, name)
			require.NoError(t, err)
		}

		updated, err := svc.CompleteAll(ctx, list.ID)
		require.NoError(t, err)
		assert.True(t, updated.IsComplete())

		_, err = svc.CompleteAll(ctx, list.ID)
		require.NoError(t, err)

		lists, err := svc.Lists(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.ListSummary{
			{ID: list.ID, Name: "Chores", TodosCount: 3, TodosRemainingCount: 0},
		}, lists)

		_, err = svc.CompleteAll(ctx, 999)
		assert.ErrorIs(t, err, storage.ErrListNotFound)
	})
}

// failingStore fails every call with a storage error
type failingStore struct {
	storage.Store
	err error
}

func (f failingStore) AllLists(context.Context) ([]models.ListSummary, error) {
	return nil, f.err
}

func (f failingStore) FindList(context.Context, int) (*models.List, error) {
	return nil, f.err
}

func (f failingStore) DeleteList(context.Context, int) error {
	return f.err
}

func TestStorageErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	cause := errors.Join(storage.ErrStorageUnavailable, errors.New("connection refused"))
	svc := NewListService(failingStore{err: cause})

	_, err := svc.Lists(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)

	_, err = svc.CreateList(ctx, "Work")
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)

	_, err = svc.RenameList(ctx, 1, "Work")
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)

	_, err = svc.AddTodo(ctx, 1, "Report")
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)

	_, err = svc.CompleteAll(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)

	assert.ErrorIs(t, svc.DeleteList(ctx, 1), storage.ErrStorageUnavailable)
}
