package handler

import (
	"net/http"

	"github.com/classtrack/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
)

// SystemHandler exposes health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db       *persistence.Database
	fallback *persistence.FallbackPeriodRepository
	version  string
}

// NewSystemHandler creates a new SystemHandler. The fallback repository
// is optional; when present its degraded flag is surfaced.
func NewSystemHandler(db *persistence.Database, fallback *persistence.FallbackPeriodRepository, version string) *SystemHandler {
	return &SystemHandler{
		db:       db,
		fallback: fallback,
		version:  version,
	}
}

// Health handles GET /healthz. It reports degraded rather than failing
// outright when the relational store is down, because period reads
// still work from the flat-file fallback.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	httpStatus := http.StatusOK

	if err := h.db.Ping(); err != nil {
		dbStatus = "down"
		status = "degraded"
	}
	if h.fallback != nil && h.fallback.Degraded() {
		status = "degraded"
	}

	c.JSON(httpStatus, gin.H{
		"status":   status,
		"version":  h.version,
		"database": dbStatus,
	})
}

// Ping handles GET /api/v1/ping.
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Ready handles GET /readyz. Unlike Health it fails hard when the
// relational store is unreachable, so orchestrators hold traffic until
// writes can succeed.
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
