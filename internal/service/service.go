package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"todolists/internal/logging"
	"todolists/internal/models"
	"todolists/internal/storage"
	"todolists/internal/validation"
)

// ListService validates user input and applies it to a store. It is the only
// place where validators and storage meet.
type ListService struct {
	store storage.Store
}

// NewListService creates a service over the given store
func NewListService(store storage.Store) *ListService {
	return &ListService{store: store}
}

// Lists returns the summaries of all lists ordered by id
func (s *ListService) Lists(ctx context.Context) ([]models.ListSummary, error) {
	return s.store.AllLists(ctx)
}

// List returns a list with its todos
func (s *ListService) List(ctx context.Context, id int) (*models.List, error) {
	return s.store.FindList(ctx, id)
}

// CreateList validates the name against the existing lists and creates the list
func (s *ListService) CreateList(ctx context.Context, name string) (*models.List, error) {
	existing, err := s.store.AllLists(ctx)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateListName(name, existing, validation.NoExclusion); err != nil {
		logRejected(err, logrus.Fields{"operation": "create_list"})
		return nil, err
	}

	list, err := s.store.CreateList(ctx, name)
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"list_id": list.ID,
		"name":    list.Name,
	}).Info("List created")
	return list, nil
}

// RenameList changes the name of an existing list. Renaming a list to its
// current name is allowed.
func (s *ListService) RenameList(ctx context.Context, id int, name string) (*models.List, error) {
	list, err := s.store.FindList(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.AllLists(ctx)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateListName(name, existing, id); err != nil {
		logRejected(err, logrus.Fields{"operation": "rename_list", "list_id": id})
		return nil, err
	}

	if err := s.store.RenameList(ctx, id, name); err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"list_id":  id,
		"old_name": list.Name,
		"new_name": name,
	}).Info("List renamed")

	list.Name = name
	return list, nil
}

// DeleteList removes a list and all of its todos
func (s *ListService) DeleteList(ctx context.Context, id int) error {
	if err := s.store.DeleteList(ctx, id); err != nil {
		return err
	}

	logging.Logger.WithField("list_id", id).Info("List deleted")
	return nil
}

// AddTodo validates the name and appends an incomplete todo to the list
func (s *ListService) AddTodo(ctx context.Context, listID int, name string) (*models.Todo, error) {
	if _, err := s.store.FindList(ctx, listID); err != nil {
		return nil, err
	}

	if err := validation.ValidateTodoName(name); err != nil {
		logRejected(err, logrus.Fields{"operation": "add_todo", "list_id": listID})
		return nil, err
	}

	todo, err := s.store.CreateTodo(ctx, listID, name)
	if err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"list_id": listID,
		"todo_id": todo.ID,
	}).Info("Todo added")
	return todo, nil
}

// DeleteTodo removes a todo from a list
func (s *ListService) DeleteTodo(ctx context.Context, listID, todoID int) error {
	if err := s.store.DeleteTodo(ctx, listID, todoID); err != nil {
		return err
	}

	logging.Logger.WithFields(logrus.Fields{
		"list_id": listID,
		"todo_id": todoID,
	}).Info("Todo deleted")
	return nil
}

// SetTodoStatus marks a todo complete or incomplete and returns the updated todo
func (s *ListService) SetTodoStatus(ctx context.Context, listID, todoID int, completed bool) (*models.Todo, error) {
	list, err := s.store.FindList(ctx, listID)
	if err != nil {
		return nil, err
	}

	var todo *models.Todo
	for i := range list.Todos {
		if list.Todos[i].ID == todoID {
			todo = &list.Todos[i]
			break
		}
	}
	if todo == nil {
		return nil, storage.ErrTodoNotFound
	}

	if err := s.store.SetTodoStatus(ctx, listID, todoID, completed); err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"list_id":   listID,
		"todo_id":   todoID,
		"completed": completed,
	}).Info("Todo status updated")

	todo.Completed = completed
	return todo, nil
}

// CompleteAll marks every todo of a list complete and returns the updated list
func (s *ListService) CompleteAll(ctx context.Context, listID int) (*models.List, error) {
	list, err := s.store.FindList(ctx, listID)
	if err != nil {
		return nil, err
	}

	if err := s.store.CompleteAllTodos(ctx, listID); err != nil {
		return nil, err
	}

	logging.Logger.WithFields(logrus.Fields{
		"list_id": listID,
		"todos":   len(list.Todos),
	}).Info("All todos completed")

	for i := range list.Todos {
		list.Todos[i].Completed = true
	}
	return list, nil
}

func logRejected(err error, fields logrus.Fields) {
	logging.Logger.WithFields(fields).WithError(err).Debug("Input rejected")
}
