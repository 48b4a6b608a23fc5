package handlers

import (
	"net/http"

	"todolists/internal/models"
	"todolists/internal/validation"

	"github.com/gin-gonic/gin"
)

// TodoHandler handles todo operations within a list
type TodoHandler struct{}

// NewTodoHandler creates a new todo handler
func NewTodoHandler() *TodoHandler {
	return &TodoHandler{}
}

// CreateTodo handles POST /lists/:id/todos
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	svc, ok := listService(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	todo, err := svc.AddTodo(c.Request.Context(), listID, formName(c, validation.FieldTodoName))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.MessageResponse{
		Message: MsgTodoAdded,
		Data:    todo,
	})
}

// DeleteTodo handles POST /lists/:id/todos/:todo_id/delete
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	svc, ok := listService(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	todoID, ok := pathID(c, "todo_id")
	if !ok {
		return
	}

	if err := svc.DeleteTodo(c.Request.Context(), listID, todoID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: MsgTodoDeleted,
	})
}

// UpdateTodoStatus handles POST /lists/:id/todos/:todo_id
func (h *TodoHandler) UpdateTodoStatus(c *gin.Context) {
	svc, ok := listService(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	todoID, ok := pathID(c, "todo_id")
	if !ok {
		return
	}

	var completed bool
	switch c.PostForm("completed") {
	case "true":
		completed = true
	case "false":
		completed = false
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_INPUT",
			Message: `completed must be "true" or "false"`,
			Details: map[string]interface{}{"field": "completed"},
		})
		return
	}

	todo, err := svc.SetTodoStatus(c.Request.Context(), listID, todoID, completed)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: MsgTodoUpdated,
		Data:    todo,
	})
}

// CompleteAll handles POST /lists/:id/complete_all
func (h *TodoHandler) CompleteAll(c *gin.Context) {
	svc, ok := listService(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := svc.CompleteAll(c.Request.Context(), listID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: MsgAllTodosDone,
		Data:    models.NewListResponse(list),
	})
}
