package storage

import (
	"context"
	"testing"

	"todolists/internal/models"
	"todolists/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forEachBackend runs fn against a fresh store of every implementation
func forEachBackend(t *testing.T, fn func(t *testing.T, store Store)) {
	backends := []struct {
		name string
		new  func(t *testing.T) Store
	}{
		{"session", func(t *testing.T) Store {
			return NewSessionStore()
		}},
		{"database", func(t *testing.T) Store {
			db := testutil.SetupTestDB(t)
			t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
			return NewDatabaseStorage(db)
		}},
	}

	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			fn(t, backend.new(t))
		})
	}
}

func mustCreateList(t *testing.T, store Store, name string) *models.List {
	t.Helper()
	list, err := store.CreateList(context.Background(), name)
	require.NoError(t, err)
	return list
}

func mustCreateTodo(t *testing.T, store Store, listID int, name string) *models.Todo {
	t.Helper()
	todo, err := store.CreateTodo(context.Background(), listID, name)
	require.NoError(t, err)
	return todo
}

func TestStoreCreateList(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		list := mustCreateList(t, store, "Groceries")
		assert.Positive(t, list.ID)
		assert.Equal(t, "Groceries", list.Name)
		assert.Empty(t, list.Todos)

		summaries, err := store.AllLists(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, models.ListSummary{
			ID:                  list.ID,
			Name:                "Groceries",
			TodosCount:          0,
			TodosRemainingCount: 0,
		}, summaries[0])
		assert.False(t, summaries[0].IsComplete())
	})
}

func TestStoreAllListsOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		summaries, err := store.AllLists(ctx)
		require.NoError(t, err)
		assert.NotNil(t, summaries)
		assert.Empty(t, summaries)

		for _, name := range []string{"Work", "Home", "Errands"} {
			mustCreateList(t, store, name)
		}

		summaries, err = store.AllLists(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 3)
		assert.Equal(t, "Work", summaries[0].Name)
		assert.Equal(t, "Home", summaries[1].Name)
		assert.Equal(t, "Errands", summaries[2].Name)
		assert.Less(t, summaries[0].ID, summaries[1].ID)
		assert.Less(t, summaries[1].ID, summaries[2].ID)
	})
}

func TestStoreListIDsAreNotReused(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		mustCreateList(t, store, "One")
		mustCreateList(t, store, "Two")
		third := mustCreateList(t, store, "Three")

		require.NoError(t, store.DeleteList(ctx, third.ID))

		fourth := mustCreateList(t, store, "Four")
		assert.Greater(t, fourth.ID, third.ID)
	})
}

func TestStoreFindList(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		t.Run("returns not found for unknown id", func(t *testing.T) {
			_, err := store.FindList(ctx, 999)
			assert.ErrorIs(t, err, ErrListNotFound)
		})

		t.Run("returns todos in id order", func(t *testing.T) {
			list := mustCreateList(t, store, "Ordered")
			first := mustCreateTodo(t, store, list.ID, "first")
			second := mustCreateTodo(t, store, list.ID, "second")

			found, err := store.FindList(ctx, list.ID)
			require.NoError(t, err)
			require.Len(t, found.Todos, 2)
			assert.Equal(t, first.ID, found.Todos[0].ID)
			assert.Equal(t, second.ID, found.Todos[1].ID)
		})

		t.Run("returns a copy", func(t *testing.T) {
			list := mustCreateList(t, store, "Copy")
			mustCreateTodo(t, store, list.ID, "untouched")

			found, err := store.FindList(ctx, list.ID)
			require.NoError(t, err)
			found.Name = "Changed"
			found.Todos[0].Completed = true

			again, err := store.FindList(ctx, list.ID)
			require.NoError(t, err)
			assert.Equal(t, "Copy", again.Name)
			assert.False(t, again.Todos[0].Completed)
		})
	})
}

func TestStoreRenameList(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		list := mustCreateList(t, store, "Original")

		require.NoError(t, store.RenameList(ctx, list.ID, "Renamed"))
		found, err := store.FindList(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", found.Name)
		assert.Equal(t, list.ID, found.ID)

		// Same name again still matches the row
		assert.NoError(t, store.RenameList(ctx, list.ID, "Renamed"))

		assert.ErrorIs(t, store.RenameList(ctx, 999, "Ghost"), ErrListNotFound)
	})
}

func TestStoreDeleteList(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		list := mustCreateList(t, store, "Doomed")
		mustCreateTodo(t, store, list.ID, "a")
		mustCreateTodo(t, store, list.ID, "b")
		keep := mustCreateList(t, store, "Kept")

		require.NoError(t, store.DeleteList(ctx, list.ID))

		_, err := store.FindList(ctx, list.ID)
		assert.ErrorIs(t, err, ErrListNotFound)

		// Deleting again is a no-op
		assert.NoError(t, store.DeleteList(ctx, list.ID))
		assert.NoError(t, store.DeleteList(ctx, 999))

		summaries, err := store.AllLists(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, keep.ID, summaries[0].ID)
	})
}

func TestStoreCreateTodo(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		list := mustCreateList(t, store, "Groceries")

		first := mustCreateTodo(t, store, list.ID, "Bread")
		milk := mustCreateTodo(t, store, list.ID, "Milk")
		assert.Greater(t, milk.ID, first.ID)
		assert.Equal(t, list.ID, milk.ListID)
		assert.False(t, milk.Completed)

		found, err := store.FindList(ctx, list.ID)
		require.NoError(t, err)
		require.Len(t, found.Todos, 2)
		assert.Equal(t, "Milk", found.Todos[1].Name)
		assert.False(t, found.Todos[1].Completed)

		t.Run("ids grow past deleted todos", func(t *testing.T) {
			require.NoError(t, store.DeleteTodo(ctx, list.ID, milk.ID))
			next := mustCreateTodo(t, store, list.ID, "Butter")
			assert.Greater(t, next.ID, milk.ID)
		})

		t.Run("duplicate todo names are allowed", func(t *testing.T) {
			mustCreateTodo(t, store, list.ID, "Bread")
		})

		t.Run("unknown list", func(t *testing.T) {
			_, err := store.CreateTodo(ctx, 999, "Orphan")
			assert.ErrorIs(t, err, ErrListNotFound)
		})
	})
}

func TestStoreDeleteTodo(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		list := mustCreateList(t, store, "Work")
		todo := mustCreateTodo(t, store, list.ID, "Report")
		other := mustCreateTodo(t, store, list.ID, "Email")

		require.NoError(t, store.DeleteTodo(ctx, list.ID, todo.ID))
		assert.NoError(t, store.DeleteTodo(ctx, list.ID, todo.ID))
		assert.NoError(t, store.DeleteTodo(ctx, 999, todo.ID))

		found, err := store.FindList(ctx, list.ID)
		require.NoError(t, err)
		require.Len(t, found.Todos, 1)
		assert.Equal(t, other.ID, found.Todos[0].ID)
	})
}

func TestStoreSetTodoStatus(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		list := mustCreateList(t, store, "Groceries")
		milk := mustCreateTodo(t, store, list.ID, "Milk")

		require.NoError(t, store.SetTodoStatus(ctx, list.ID, milk.ID, true))

		found, err := store.FindList(ctx, list.ID)
		require.NoError(t, err)
		assert.True(t, found.Todos[0].Completed)
		assert.Equal(t, 0, found.Counts().Remaining)
		assert.True(t, found.IsComplete())

		// Setting the same status again is fine
		require.NoError(t, store.SetTodoStatus(ctx, list.ID, milk.ID, true))

		require.NoError(t, store.SetTodoStatus(ctx, list.ID, milk.ID, false))
		found, err = store.FindList(ctx, list.ID)
		require.NoError(t, err)
		assert.False(t, found.Todos[0].Completed)
		assert.False(t, found.IsComplete())

		assert.ErrorIs(t, store.SetTodoStatus(ctx, list.ID, 999, true), ErrTodoNotFound)
		assert.ErrorIs(t, store.SetTodoStatus(ctx, 999, milk.ID, true), ErrListNotFound)
	})
}

func TestStoreCompleteAllTodos(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		list := mustCreateList(t, store, "Chores")
		done := mustCreateTodo(t, store, list.ID, "Dishes")
		mustCreateTodo(t, store, list.ID, "Laundry")
		mustCreateTodo(t, store, list.ID, "Vacuum")
		require.NoError(t, store.SetTodoStatus(ctx, list.ID, done.ID, true))

		for i := 0; i < 2; i++ {
			require.NoError(t, store.CompleteAllTodos(ctx, list.ID))

			found, err := store.FindList(ctx, list.ID)
			require.NoError(t, err)
			require.Len(t, found.Todos, 3)
			for _, todo := range found.Todos {
				assert.True(t, todo.Completed)
			}
			assert.True(t, found.IsComplete())
		}

		t.Run("empty list is a no-op", func(t *testing.T) {
			empty := mustCreateList(t, store, "Empty")
			assert.NoError(t, store.CompleteAllTodos(ctx, empty.ID))

			found, err := store.FindList(ctx, empty.ID)
			require.NoError(t, err)
			assert.False(t, found.IsComplete())
		})

		t.Run("unknown list", func(t *testing.T) {
			assert.ErrorIs(t, store.CompleteAllTodos(ctx, 999), ErrListNotFound)
		})
	})
}

func TestStoreSummariesMatchAcrossBackends(t *testing.T) {
	ctx := context.Background()

	build := func(t *testing.T, store Store) []models.ListSummary {
		work := mustCreateList(t, store, "Work")
		home := mustCreateList(t, store, "Home")
		mustCreateList(t, store, "Empty")

		report := mustCreateTodo(t, store, work.ID, "Report")
		mustCreateTodo(t, store, work.ID, "Email")
		dishes := mustCreateTodo(t, store, home.ID, "Dishes")

		require.NoError(t, store.SetTodoStatus(ctx, work.ID, report.ID, true))
		require.NoError(t, store.SetTodoStatus(ctx, home.ID, dishes.ID, true))

		summaries, err := store.AllLists(ctx)
		require.NoError(t, err)
		return summaries
	}

	session := build(t, NewSessionStore())

	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	relational := build(t, NewDatabaseStorage(db))

	assert.Equal(t, session, relational)
	assert.Equal(t, []models.ListSummary{
		{ID: 1, Name: "Work", TodosCount: 2, TodosRemainingCount: 1},
		{ID: 2, Name: "Home", TodosCount: 1, TodosRemainingCount: 0},
		{ID: 3, Name: "Empty", TodosCount: 0, TodosRemainingCount: 0},
	}, session)
}
