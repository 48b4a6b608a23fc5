package storage

import (
	"context"
	"errors"

	"todolists/internal/models"

	"gorm.io/gorm"
)

// summariesQuery aggregates todo counts per list in a single round trip
const summariesQuery = `SELECT lists.id, lists.name,
	COUNT(todos.id) AS todos_count,
	COUNT(CASE WHEN todos.completed IS NOT TRUE THEN todos.id END) AS todos_remaining_count
	FROM lists LEFT JOIN todos ON lists.id = todos.list_id
	GROUP BY lists.id, lists.name
	ORDER BY lists.id ASC`

// DatabaseStorage implements storage over the lists and todos tables with GORM
type DatabaseStorage struct {
	db *gorm.DB
}

// NewDatabaseStorage creates a relational storage instance
func NewDatabaseStorage(db *gorm.DB) *DatabaseStorage {
	return &DatabaseStorage{db: db}
}

// FindList retrieves a list with its todos ordered by id
func (s *DatabaseStorage) FindList(ctx context.Context, id int) (*models.List, error) {
	var list models.List
	err := s.db.WithContext(ctx).
		Preload("Todos", func(db *gorm.DB) *gorm.DB {
			return db.Order("todos.id ASC")
		}).
		First(&list, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, unavailable("find list", err)
	}

	if list.Todos == nil {
		list.Todos = []models.Todo{}
	}
	return &list, nil
}

// AllLists retrieves list summaries ordered by id
func (s *DatabaseStorage) AllLists(ctx context.Context) ([]models.ListSummary, error) {
	summaries := make([]models.ListSummary, 0)
	if err := s.db.WithContext(ctx).Raw(summariesQuery).Scan(&summaries).Error; err != nil {
		return nil, unavailable("all lists", err)
	}
	return summaries, nil
}

// CreateList inserts a new list; the database assigns the id
func (s *DatabaseStorage) CreateList(ctx context.Context, name string) (*models.List, error) {
	list := &models.List{Name: name}
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return nil, unavailable("create list", err)
	}

	list.Todos = []models.Todo{}
	return list, nil
}

// DeleteList deletes the todos of a list and then the list, atomically.
// Unknown ids are ignored.
func (s *DatabaseStorage) DeleteList(ctx context.Context, id int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&models.Todo{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.List{}).Error
	})
	if err != nil {
		return unavailable("delete list", err)
	}
	return nil
}

// RenameList updates the name of a list
func (s *DatabaseStorage) RenameList(ctx context.Context, id int, name string) error {
	result := s.db.WithContext(ctx).Model(&models.List{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return unavailable("rename list", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrListNotFound
	}
	return nil
}

// CreateTodo inserts an incomplete todo into an existing list
func (s *DatabaseStorage) CreateTodo(ctx context.Context, listID int, name string) (*models.Todo, error) {
	todo := &models.Todo{
		ListID:    listID,
		Name:      name,
		Completed: false,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.List{}).Where("id = ?", listID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrListNotFound
		}
		return tx.Create(todo).Error
	})
	if err != nil {
		if errors.Is(err, ErrListNotFound) {
			return nil, err
		}
		return nil, unavailable("create todo", err)
	}
	return todo, nil
}

// DeleteTodo deletes a todo from a list. Unknown ids are ignored.
func (s *DatabaseStorage) DeleteTodo(ctx context.Context, listID, todoID int) error {
	err := s.db.WithContext(ctx).
		Where("list_id = ? AND id = ?", listID, todoID).
		Delete(&models.Todo{}).Error
	if err != nil {
		return unavailable("delete todo", err)
	}
	return nil
}

// SetTodoStatus marks a todo complete or incomplete
func (s *DatabaseStorage) SetTodoStatus(ctx context.Context, listID, todoID int, completed bool) error {
	result := s.db.WithContext(ctx).Model(&models.Todo{}).
		Where("list_id = ? AND id = ?", listID, todoID).
		Update("completed", completed)
	if result.Error != nil {
		return unavailable("set todo status", result.Error)
	}
	if result.RowsAffected == 0 {
		if err := s.requireList(ctx, listID); err != nil {
			return err
		}
		return ErrTodoNotFound
	}
	return nil
}

// CompleteAllTodos marks every todo of a list complete
func (s *DatabaseStorage) CompleteAllTodos(ctx context.Context, listID int) error {
	result := s.db.WithContext(ctx).Model(&models.Todo{}).
		Where("list_id = ?", listID).
		Update("completed", true)
	if result.Error != nil {
		return unavailable("complete all todos", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either the list is empty or it does not exist
		return s.requireList(ctx, listID)
	}
	return nil
}

// requireList returns ErrListNotFound unless the list exists
func (s *DatabaseStorage) requireList(ctx context.Context, listID int) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.List{}).Where("id = ?", listID).Count(&count).Error; err != nil {
		return unavailable("find list", err)
	}
	if count == 0 {
		return ErrListNotFound
	}
	return nil
}
