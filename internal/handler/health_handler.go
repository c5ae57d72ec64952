// internal/handler/health_handler.go
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printer-service/internal/config"
	"printer-service/internal/identity"
	"printer-service/internal/storage"
	"printer-service/internal/utils"
)

// HealthHandler handles health check and server info requests
type HealthHandler struct {
	store     storage.DocumentStore
	identity  identity.ServerIdentity
	config    *config.Config
	startedAt time.Time
	logger    *utils.ServiceLogger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store storage.DocumentStore, id identity.ServerIdentity, config *config.Config, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store:     store,
		identity:  id,
		config:    config,
		startedAt: time.Now(),
		logger:    utils.NewServiceLogger(logger, "health-handler"),
	}
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.HealthCheck)
	router.GET("/ready", h.ReadinessCheck)
	router.GET("/live", h.LivenessCheck)
}

// RegisterInfoRoutes registers the server identity route
func (h *HealthHandler) RegisterInfoRoutes(router *gin.RouterGroup) {
	router.GET("/info", h.Info)
}

// HealthCheck performs general health check
// @Summary Health check
// @Description Get overall service health status including storage
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Failure 503 {object} HealthResponse "Service is unhealthy"
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	health := &HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   h.config.App.Name,
		Version:   h.config.App.Version,
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
		Checks:    make(map[string]CheckResult),
	}

	start := time.Now()
	if err := h.pingStorage(c.Request.Context()); err != nil {
		health.Status = "unhealthy"
		health.Checks["storage"] = CheckResult{
			Status:  "unhealthy",
			Message: err.Error(),
		}
	} else {
		health.Checks["storage"] = CheckResult{
			Status:  "healthy",
			Message: "Storage OK",
			Data: map[string]interface{}{
				"driver":           h.config.Storage.Driver,
				"response_time_ms": time.Since(start).Milliseconds(),
			},
		}
	}

	statusCode := http.StatusOK
	if health.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, health)
}

// ReadinessCheck for Kubernetes readiness probe
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,timestamp=string} "Service is ready"
// @Failure 503 {object} object{status=string,reason=string} "Service is not ready"
// @Router /ready [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if err := h.pingStorage(c.Request.Context()); err != nil {
		h.logger.Warn("Storage not ready", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "storage not available",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}

// LivenessCheck for Kubernetes liveness probe
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,timestamp=string} "Service is alive"
// @Router /live [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now(),
	})
}

// Info returns the server identity
// @Summary Server info
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse{data=InfoResponse} "Server info"
// @Router /api/info [get]
func (h *HealthHandler) Info(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Server info", InfoResponse{
		ServerID:  h.identity.ServerID,
		CreatedAt: h.identity.CreatedAt,
		Name:      h.config.App.Name,
		Version:   h.config.App.Version,
	})
}

func (h *HealthHandler) pingStorage(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return h.store.Ping(ctx)
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Checks    map[string]CheckResult `json:"checks"`
}

// CheckResult represents individual check result
type CheckResult struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// InfoResponse identifies this server instance
type InfoResponse struct {
	ServerID  string    `json:"server_id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
}
