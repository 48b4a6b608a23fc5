package handlers

import (
	"todolists/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the list and todo routes. read and write are applied to
// GET and POST routes respectively.
func RegisterRoutes(router gin.IRouter, read, write gin.HandlerFunc) {
	listHandler := NewListHandler()
	todoHandler := NewTodoHandler()

	router.GET("/", listHandler.Root)

	lists := router.Group("/lists")
	{
		lists.GET("", read, listHandler.GetAllLists)
		lists.POST("", write, listHandler.CreateList)

		// Routes with list id parameter
		lists.GET("/:id", read, middleware.IDValidator("id"), listHandler.GetList)
		lists.POST("/:id", write, middleware.IDValidator("id"), listHandler.RenameList)
		lists.POST("/:id/delete", write, middleware.IDValidator("id"), listHandler.DeleteList)
		lists.POST("/:id/complete_all", write, middleware.IDValidator("id"), todoHandler.CompleteAll)

		// Todo routes, nested under lists
		lists.POST("/:id/todos", write, middleware.IDValidator("id"), todoHandler.CreateTodo)
		lists.POST("/:id/todos/:todo_id", write, middleware.IDValidator("id", "todo_id"), todoHandler.UpdateTodoStatus)
		lists.POST("/:id/todos/:todo_id/delete", write, middleware.IDValidator("id", "todo_id"), todoHandler.DeleteTodo)
	}
}

// RegisterHealthRoutes mounts the health endpoints
func RegisterHealthRoutes(router gin.IRouter, health *HealthHandler) {
	router.GET("/health", health.BasicHealth)
	router.GET("/health/detailed", health.DetailedHealth)
	router.GET("/health/ready", health.ReadinessProbe)
	router.GET("/health/live", health.LivenessProbe)
}
