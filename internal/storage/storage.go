package storage

import (
	"context"
	"sync"

	"todolists/internal/ident"
	"todolists/internal/models"
)

// sessionList is a list together with the allocator for its todo ids
type sessionList struct {
	list    models.List
	todoIDs ident.Allocator
}

// SessionStore keeps the lists of a single session in memory. Lists are held in
// creation order, which is also ascending id order.
type SessionStore struct {
	mu      sync.Mutex
	lists   []*sessionList
	listIDs ident.Allocator
}

// NewSessionStore creates an empty store for one session
func NewSessionStore() *SessionStore {
	return &SessionStore{
		lists: make([]*sessionList, 0),
	}
}

// FindList returns a copy of the list with its todos
func (s *SessionStore) FindList(_ context.Context, id int) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.find(id)
	if entry == nil {
		return nil, ErrListNotFound
	}
	return copyList(&entry.list), nil
}

// AllLists returns list summaries ordered by id
func (s *SessionStore) AllLists(_ context.Context) ([]models.ListSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]models.ListSummary, 0, len(s.lists))
	for _, entry := range s.lists {
		summaries = append(summaries, entry.list.Summary())
	}
	return summaries, nil
}

// CreateList appends a new empty list
func (s *SessionStore) CreateList(_ context.Context, name string) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.lists))
	for _, entry := range s.lists {
		ids = append(ids, entry.list.ID)
	}

	entry := &sessionList{
		list: models.List{
			ID:    s.listIDs.Next(ids),
			Name:  name,
			Todos: []models.Todo{},
		},
	}
	s.lists = append(s.lists, entry)
	return copyList(&entry.list), nil
}

// DeleteList removes a list and its todos. Unknown ids are ignored.
func (s *SessionStore) DeleteList(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lists[:0]
	for _, entry := range s.lists {
		if entry.list.ID == id {
			entry.list.Todos = nil
			continue
		}
		kept = append(kept, entry)
	}
	// Clear the tail so removed entries can be collected
	for i := len(kept); i < len(s.lists); i++ {
		s.lists[i] = nil
	}
	s.lists = kept
	return nil
}

// RenameList changes the name of a list
func (s *SessionStore) RenameList(_ context.Context, id int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.find(id)
	if entry == nil {
		return ErrListNotFound
	}
	entry.list.Name = name
	return nil
}

// CreateTodo appends an incomplete todo to a list
func (s *SessionStore) CreateTodo(_ context.Context, listID int, name string) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.find(listID)
	if entry == nil {
		return nil, ErrListNotFound
	}

	ids := make([]int, 0, len(entry.list.Todos))
	for _, todo := range entry.list.Todos {
		ids = append(ids, todo.ID)
	}

	todo := models.Todo{
		ID:        entry.todoIDs.Next(ids),
		ListID:    listID,
		Name:      name,
		Completed: false,
	}
	entry.list.Todos = append(entry.list.Todos, todo)
	return &todo, nil
}

// DeleteTodo removes a todo from a list. Unknown ids are ignored.
func (s *SessionStore) DeleteTodo(_ context.Context, listID, todoID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.find(listID)
	if entry == nil {
		return nil
	}

	kept := entry.list.Todos[:0]
	for _, todo := range entry.list.Todos {
		if todo.ID != todoID {
			kept = append(kept, todo)
		}
	}
	entry.list.Todos = kept
	return nil
}

// SetTodoStatus marks a todo complete or incomplete
func (s *SessionStore) SetTodoStatus(_ context.Context, listID, todoID int, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.find(listID)
	if entry == nil {
		return ErrListNotFound
	}

	for i := range entry.list.Todos {
		if entry.list.Todos[i].ID == todoID {
			entry.list.Todos[i].Completed = completed
			return nil
		}
	}
	return ErrTodoNotFound
}

// CompleteAllTodos marks every todo of a list complete
func (s *SessionStore) CompleteAllTodos(_ context.Context, listID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.find(listID)
	if entry == nil {
		return ErrListNotFound
	}

	for i := range entry.list.Todos {
		entry.list.Todos[i].Completed = true
	}
	return nil
}

// find locates a list entry (must be called with lock held)
func (s *SessionStore) find(id int) *sessionList {
	for _, entry := range s.lists {
		if entry.list.ID == id {
			return entry
		}
	}
	return nil
}

// copyList returns a copy that shares no todo storage with the session
func copyList(list *models.List) *models.List {
	listCopy := *list
	listCopy.Todos = make([]models.Todo, len(list.Todos))
	copy(listCopy.Todos, list.Todos)
	return &listCopy
}
