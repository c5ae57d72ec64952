// internal/handler/printer_handler.go
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printer-service/internal/apperror"
	"printer-service/internal/middleware"
	"printer-service/internal/service"
	"printer-service/internal/utils"
)

// PrinterHandler handles printer registry requests
type PrinterHandler struct {
	printerService *service.PrinterService
	logger         *utils.ServiceLogger
}

// PrinterIDRequest names a printer by id; printer_id is accepted as an alias
type PrinterIDRequest struct {
	ID        string `json:"id"`
	PrinterID string `json:"printer_id"`
}

func NewPrinterHandler(printerService *service.PrinterService, logger *zap.Logger) *PrinterHandler {
	return &PrinterHandler{
		printerService: printerService,
		logger:         utils.NewServiceLogger(logger, "printer-handler"),
	}
}

// RegisterRoutes registers the public printer routes
func (h *PrinterHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/printers", h.ListPrinters)
	router.GET("/printer/:id", h.GetPrinter)
}

// RegisterPrivilegedRoutes registers routes behind the client gate
func (h *PrinterHandler) RegisterPrivilegedRoutes(router *gin.RouterGroup) {
	printer := router.Group("/printer")
	{
		printer.POST("/save", h.SavePrinter)
		printer.POST("/delete", h.DeletePrinter)
		printer.POST("/test", h.TestPrinter)
	}
}

// ListPrinters lists every printer with its current reachability
// @Summary List printers
// @Description Get all registered printers in stored order, each probed for reachability
// @Tags Printers
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]model.PrinterStatus} "Printers retrieved successfully"
// @Router /api/printers [get]
func (h *PrinterHandler) ListPrinters(c *gin.Context) {
	printers := h.printerService.ListWithStatus(c.Request.Context())
	utils.SuccessResponse(c, http.StatusOK, "Printers retrieved successfully", printers)
}

// GetPrinter returns one printer
// @Summary Get printer
// @Tags Printers
// @Produce json
// @Param id path string true "Printer ID"
// @Success 200 {object} utils.APIResponse{data=model.PrinterStatus} "Printer retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Printer not found"
// @Router /api/printer/{id} [get]
func (h *PrinterHandler) GetPrinter(c *gin.Context) {
	printer, err := h.printerService.GetPrinter(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Printer retrieved successfully", printer)
}

// SavePrinter creates or replaces a printer
// @Summary Save printer
// @Description Upsert a printer. New enabled printers count against the per-role quota.
// @Tags Printers
// @Accept json
// @Produce json
// @Param x-client-id header string false "Client ID"
// @Param x-print-key header string false "Client PIN"
// @Param request body service.SavePrinterRequest true "Printer"
// @Success 200 {object} utils.APIResponse{data=model.PrinterRecord} "Printer saved"
// @Failure 400 {object} utils.APIResponse "Invalid request or quota exceeded"
// @Failure 401 {object} utils.APIResponse "Missing credentials"
// @Failure 403 {object} utils.APIResponse "Invalid credentials"
// @Router /api/printer/save [post]
func (h *PrinterHandler) SavePrinter(c *gin.Context) {
	var req service.SavePrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, apperror.PayloadInvalid("Invalid request body", err))
		return
	}

	printer, err := h.printerService.SavePrinter(c.Request.Context(), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Printer saved", printer)
}

// DeletePrinter removes a printer
// @Summary Delete printer
// @Description Remove a printer by id. Unknown ids succeed.
// @Tags Printers
// @Accept json
// @Produce json
// @Param request body PrinterIDRequest true "Printer id"
// @Success 200 {object} utils.APIResponse "Printer deleted"
// @Router /api/printer/delete [post]
func (h *PrinterHandler) DeletePrinter(c *gin.Context) {
	var req PrinterIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, apperror.PayloadInvalid("Invalid request body", err))
		return
	}

	if err := h.printerService.DeletePrinter(c.Request.Context(), service.PrinterRef("", req.ID, req.PrinterID)); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Printer deleted", nil)
}

// TestPrinter prints the test message
// @Summary Test printer
// @Description Probe the printer, then print a fixed test message
// @Tags Printers
// @Accept json
// @Produce json
// @Param request body PrinterIDRequest true "Printer id or name"
// @Success 200 {object} utils.APIResponse{data=model.DispatchReceipt} "Test page printed"
// @Failure 404 {object} utils.APIResponse "Printer not found"
// @Failure 500 {object} utils.APIResponse "Printer offline or transport failure"
// @Router /api/printer/test [post]
func (h *PrinterHandler) TestPrinter(c *gin.Context) {
	var req PrinterIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, apperror.PayloadInvalid("Invalid request body", err))
		return
	}

	receipt, err := h.printerService.TestPrinter(c.Request.Context(), service.PrinterRef("", req.ID, req.PrinterID), middleware.CurrentClient(c))
	if err != nil {
		h.logger.Warn("Printer test failed", zap.Error(err))
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Test page printed", receipt)
}
