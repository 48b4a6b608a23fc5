package storage

import (
	"context"
	"errors"
	"fmt"

	"todolists/internal/models"
)

var (
	ErrListNotFound       = errors.New("list not found")
	ErrTodoNotFound       = errors.New("todo not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Store defines the interface for storage operations. Both implementations must
// produce the same results for the same sequence of calls.
type Store interface {
	// List operations
	FindList(ctx context.Context, id int) (*models.List, error)
	AllLists(ctx context.Context) ([]models.ListSummary, error)
	CreateList(ctx context.Context, name string) (*models.List, error)
	DeleteList(ctx context.Context, id int) error
	RenameList(ctx context.Context, id int, name string) error

	// Todo operations
	CreateTodo(ctx context.Context, listID int, name string) (*models.Todo, error)
	DeleteTodo(ctx context.Context, listID, todoID int) error
	SetTodoStatus(ctx context.Context, listID, todoID int, completed bool) error
	CompleteAllTodos(ctx context.Context, listID int) error
}

// unavailable marks a backend failure that is not a missing record
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
