package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todolists/internal/config"
	"todolists/internal/service"
	"todolists/internal/session"
	"todolists/internal/storage"
)

// Context keys for values set by the session middleware
const (
	ContextKeySessionID   = "session_id"
	ContextKeyListService = "list_service"
)

var ErrNoListService = errors.New("list service not found in context")

// SessionBinding binds each request to the store of its session cookie. New or
// unknown sessions get a fresh cookie.
func SessionBinding(registry *session.Registry, cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(cfg.CookieName)

		id, store := registry.Get(cookie)
		if id != cookie {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, id, cfg.MaxAge, "/", "", cfg.Secure, true)
		}

		c.Set(ContextKeySessionID, id)
		c.Set(ContextKeyListService, service.NewListService(store))
		c.Next()
	}
}

// SharedStore binds every request to the same store
func SharedStore(store storage.Store) gin.HandlerFunc {
	svc := service.NewListService(store)
	return func(c *gin.Context) {
		c.Set(ContextKeyListService, svc)
		c.Next()
	}
}

// GetListService retrieves the list service bound to the request
func GetListService(c *gin.Context) (*service.ListService, error) {
	value, exists := c.Get(ContextKeyListService)
	if !exists {
		return nil, ErrNoListService
	}

	svc, ok := value.(*service.ListService)
	if !ok {
		return nil, errors.New("invalid list service type in context")
	}
	return svc, nil
}
