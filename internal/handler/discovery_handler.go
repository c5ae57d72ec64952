// internal/handler/discovery_handler.go
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printer-service/internal/service"
	"printer-service/internal/utils"
)

// DiscoveryHandler handles printer discovery requests
type DiscoveryHandler struct {
	discoveryService *service.DiscoveryService
	logger           *utils.ServiceLogger
}

// NewDiscoveryHandler creates a new discovery handler
func NewDiscoveryHandler(discoveryService *service.DiscoveryService, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryService: discoveryService,
		logger:           utils.NewServiceLogger(logger, "discovery-handler"),
	}
}

// RegisterRoutes registers discovery routes
func (h *DiscoveryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/printers/discover", h.DiscoverPrinters)
}

// DiscoverPrinters scans the configured networks for unregistered printers
// @Summary Discover printers
// @Description Scan the configured networks for open raw printing ports not yet registered
// @Tags Discovery
// @Produce json
// @Success 200 {object} utils.APIResponse{data=object{printers_found=int,printers=[]discovery.DiscoveredPrinter}} "Printer scan completed"
// @Failure 500 {object} utils.APIResponse "Scan failed"
// @Router /api/printers/discover [get]
func (h *DiscoveryHandler) DiscoverPrinters(c *gin.Context) {
	printers, err := h.discoveryService.Discover(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to scan printers", zap.Error(err))
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Printer scan completed", gin.H{
		"printers_found": len(printers),
		"printers":       printers,
	})
}
