package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"todolists/internal/middleware"
	"todolists/internal/models"
	"todolists/internal/service"
	"todolists/internal/storage"
	"todolists/internal/validation"

	"github.com/gin-gonic/gin"
)

// Messages shown to users after each operation
const (
	MsgListCreated     = "The list has been created."
	MsgListUpdated     = "The list has been updated."
	MsgListDeleted     = "The list has been deleted."
	MsgTodoAdded       = "The todo item has been added."
	MsgTodoDeleted     = "The todo item has been deleted."
	MsgTodoUpdated     = "The todo item has been updated."
	MsgAllTodosDone    = "All todo items are marked as complete."
	MsgListNotFound    = "The specified list was not found."
	MsgTodoNotFound    = "The specified todo was not found."
	MsgInternalFailure = "An internal error occurred. Please try again later."
)

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: verr.Message,
			Details: map[string]interface{}{
				"field": verr.Field,
				"value": verr.Value,
			},
		})
	case errors.Is(err, storage.ErrListNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Code:    "LIST_NOT_FOUND",
			Message: MsgListNotFound,
		})
	case errors.Is(err, storage.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Code:    "TODO_NOT_FOUND",
			Message: MsgTodoNotFound,
		})
	default:
		// Logged by ErrorSanitizer; never shown to the client
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: MsgInternalFailure,
		})
	}
}

// listService returns the service bound to the request, writing a 500 when the
// session middleware did not run
func listService(c *gin.Context) (*service.ListService, bool) {
	svc, err := middleware.GetListService(c)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return svc, true
}

// pathID parses a positive integer path parameter
func pathID(c *gin.Context, param string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_ID",
			Message: "Invalid id format",
			Details: map[string]interface{}{"field": param},
		})
		return 0, false
	}
	return id, true
}

// formName returns a whitespace-trimmed form value
func formName(c *gin.Context, key string) string {
	return strings.TrimSpace(c.PostForm(key))
}
