package handlers

import (
	"net/http"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/cache"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports the service and its optional backends
type HealthHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewHealthHandler(db *gorm.DB, c *cache.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: c}
}

// HealthCheck returns the health status of the API. A failing backend is
// reported but does not make the service unhealthy: compiles still work.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": h.databaseStatus(),
		"cache":    h.cacheStatus(c),
	})
}

func (h *HealthHandler) databaseStatus() string {
	if h.db == nil {
		return "disabled"
	}
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		return "unreachable"
	}
	return "connected"
}

func (h *HealthHandler) cacheStatus(c *gin.Context) string {
	if !h.cache.Enabled() {
		return "disabled"
	}
	if err := h.cache.Ping(c.Request.Context()); err != nil {
		return "unreachable"
	}
	return "connected"
}
