package handlers

import (
	"net/http"

	"todolists/internal/models"
	"todolists/internal/validation"

	"github.com/gin-gonic/gin"
)

// ListHandler handles list operations for the service bound to each request
type ListHandler struct{}

// NewListHandler creates a new list handler
func NewListHandler() *ListHandler {
	return &ListHandler{}
}

// Root handles GET /
func (h *ListHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/lists")
}

// GetAllLists handles GET /lists
func (h *ListHandler) GetAllLists(c *gin.Context) {
	svc, ok := listService(c)
	if !ok {
		return
	}

	lists, err := svc.Lists(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Data: models.NewListSummaryResponses(lists),
	})
}

// CreateList handles POST /lists
func (h *ListHandler) CreateList(c *gin.Context) {
	svc, ok := listService(c)
	if !ok {
		return
	}

	list, err := svc.CreateList(c.Request.Context(), formName(c, validation.FieldListName))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.MessageResponse{
		Message: MsgListCreated,
		Data:    models.NewListResponse(list),
	})
}

// GetList handles GET /lists/:id
func (h *ListHandler) GetList(c *gin.Context) {
	svc, ok := listService(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := svc.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Data: models.NewListResponse(list),
	})
}

// RenameList handles POST /lists/:id
func (h *ListHandler) RenameList(c *gin.Context) {
	svc, ok := listService(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := svc.RenameList(c.Request.Context(), id, formName(c, validation.FieldListName))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: MsgListUpdated,
		Data:    models.NewListResponse(list),
	})
}

// DeleteList handles POST /lists/:id/delete
func (h *ListHandler) DeleteList(c *gin.Context) {
	svc, ok := listService(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := svc.DeleteList(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Message: MsgListDeleted,
	})
}
