// Package validation holds the list and todo name rules. The validators are pure:
// they look only at the name and the state snapshot they are given.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"todolists/internal/models"
)

var (
	ErrInvalidLength = errors.New("invalid length")
	ErrDuplicateName = errors.New("duplicate name")
)

// NoExclusion is passed as excludeID when no list is being renamed
const NoExclusion = 0

// Field names reported on validation errors
const (
	FieldListName = "list_name"
	FieldTodoName = "todo"
)

var (
	validate = validator.New()

	nameRule = fmt.Sprintf("min=%d,max=%d", models.NameMinLength, models.NameMaxLength)
)

// Error describes which rule a value broke. Message is safe to show to users.
type Error struct {
	Rule    error
	Field   string
	Value   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Rule
}

// ValidateListName checks length and uniqueness of a list name. The list whose id
// equals excludeID is ignored so a list can be renamed to its current name.
func ValidateListName(name string, existing []models.ListSummary, excludeID int) error {
	if !validLength(name) {
		return &Error{
			Rule:    ErrInvalidLength,
			Field:   FieldListName,
			Value:   name,
			Message: fmt.Sprintf("List name must be between %d and %d characters.", models.NameMinLength, models.NameMaxLength),
		}
	}

	for _, list := range existing {
		if list.ID != excludeID && list.Name == name {
			return &Error{
				Rule:    ErrDuplicateName,
				Field:   FieldListName,
				Value:   name,
				Message: "List name must be unique.",
			}
		}
	}
	return nil
}

// ValidateTodoName checks the length of a todo name. Todo names need not be unique.
func ValidateTodoName(name string) error {
	if !validLength(name) {
		return &Error{
			Rule:    ErrInvalidLength,
			Field:   FieldTodoName,
			Value:   name,
			Message: fmt.Sprintf("Todo name must be between %d and %d characters.", models.NameMinLength, models.NameMaxLength),
		}
	}
	return nil
}

// validLength counts characters, not bytes
func validLength(name string) bool {
	return validate.Var(name, nameRule) == nil
}
