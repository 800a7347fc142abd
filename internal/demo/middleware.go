package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware keeps the catalog read-only in demo mode.
// GET, HEAD and OPTIONS requests always pass.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a demo mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		m.respondBlocked(c)
	}
}

// respondBlocked sends a 403 response, as JSON for API clients.
func (m *Middleware) respondBlocked(c *gin.Context) {
	message := "The catalog is read-only in demo mode"

	if strings.Contains(c.GetHeader("Accept"), "application/json") ||
		strings.HasPrefix(c.Request.URL.Path, "/admin/api") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     message,
			"code":      "demo_mode",
			"demo_mode": true,
		})
		return
	}

	c.String(http.StatusForbidden, message)
	c.Abort()
}

// ContextKeyDemoMode stores the demo flag for template rendering.
const ContextKeyDemoMode = "demo_mode"

// InjectContext adds the demo mode flag to the request context.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.enabled)
		c.Next()
	}
}
