package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/catalog"
)

const healthPingTimeout = 2 * time.Second

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Driver  string            `json:"driver,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// driverNamer is implemented by stores that can name their backend.
type driverNamer interface {
	Driver() string
}

// HealthController reports whether the catalog store is reachable.
type HealthController struct {
	store   Pinger
	version string
}

func NewHealthController(store Pinger, version string) *HealthController {
	return &HealthController{store: store, version: version}
}

// Status answers 200 while the store responds and 503 otherwise. Driver
// errors are logged, not echoed.
func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{"catalog_store": h.checkStore(c.Request.Context())},
	}
	if named, ok := h.store.(driverNamer); ok {
		health.Driver = named.Driver()
	}

	statusCode := http.StatusOK
	if check := health.Checks["catalog_store"]; check != "ok" && check != "not configured" {
		health.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}
	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) checkStore(ctx context.Context) string {
	if h.store == nil {
		return "not configured"
	}

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	err := h.store.Ping(ctx)
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, catalog.ErrStoreUnavailable):
		log.Printf("Health check: catalog store unavailable: %v", err)
		return "unavailable"
	default:
		log.Printf("Health check: %v", err)
		return "error"
	}
}

func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
