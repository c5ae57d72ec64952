// internal/handler/print_handler.go
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printer-service/internal/apperror"
	"printer-service/internal/middleware"
	"printer-service/internal/model"
	"printer-service/internal/service"
	"printer-service/internal/utils"
)

// PrintHandler handles print job submission
type PrintHandler struct {
	dispatchService *service.DispatchService
	logger          *utils.ServiceLogger
}

// ImageRequest is the body of POST /img
type ImageRequest struct {
	PrinterID string `json:"printer_id"`
	ImagePath string `json:"image_path" binding:"required"`
}

// DocumentRequest is the body of POST /pdftoimg. Convert defaults to true.
type DocumentRequest struct {
	PrinterID    string `json:"printer_id"`
	DocumentPath string `json:"document_path" binding:"required"`
	Convert      *bool  `json:"convert"`
}

func NewPrintHandler(dispatchService *service.DispatchService, logger *zap.Logger) *PrintHandler {
	return &PrintHandler{
		dispatchService: dispatchService,
		logger:          utils.NewServiceLogger(logger, "print-handler"),
	}
}

// RegisterRoutes registers print routes; callers mount them behind the client gate
func (h *PrintHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/print", h.Print)
	router.POST("/img", h.PrintImage)
	router.POST("/pdftoimg", h.PrintDocument)
}

// Print prints a text or invoice payload
// @Summary Print text or invoice
// @Description A body with "master" prints an invoice; otherwise "text" prints plain text
// @Tags Print
// @Accept json
// @Produce json
// @Param x-printer-id header string false "Printer id or name, overrides body printer_id"
// @Param request body service.PrintRequest true "Print payload"
// @Success 200 {object} utils.APIResponse{data=model.DispatchReceipt} "Printed"
// @Failure 400 {object} utils.APIResponse "Invalid payload"
// @Failure 404 {object} utils.APIResponse "Printer not found"
// @Failure 500 {object} utils.APIResponse "Printer offline or transport failure"
// @Router /print [post]
func (h *PrintHandler) Print(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.AppErrorResponse(c, apperror.PayloadInvalid("Request body could not be read", err))
		return
	}

	bodyRef, job, err := service.ClassifyPrintBody(body)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	h.dispatch(c, service.PrinterRef(c.GetHeader(middleware.HeaderPrinterID), bodyRef, h.dispatchService.DefaultPrinter()), job)
}

// PrintImage prints an uploaded image
// @Summary Print image
// @Tags Print
// @Accept json
// @Produce json
// @Param request body ImageRequest true "Image reference inside the upload directory"
// @Success 200 {object} utils.APIResponse{data=model.DispatchReceipt} "Printed"
// @Failure 400 {object} utils.APIResponse "Invalid payload"
// @Router /img [post]
func (h *PrintHandler) PrintImage(c *gin.Context) {
	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, apperror.PayloadInvalid("image_path is required", err))
		return
	}

	ref := service.PrinterRef(c.GetHeader(middleware.HeaderPrinterID), req.PrinterID, h.dispatchService.DefaultPrinter())
	h.dispatch(c, ref, model.ImageJob{ImagePath: req.ImagePath})
}

// PrintDocument rasterizes and prints an uploaded document
// @Summary Print document
// @Description PDF pages go through pdftoppm, HTML and SVG through headless Chrome
// @Tags Print
// @Accept json
// @Produce json
// @Param request body DocumentRequest true "Document reference inside the upload directory"
// @Success 200 {object} utils.APIResponse{data=model.DispatchReceipt} "Printed"
// @Failure 400 {object} utils.APIResponse "Invalid payload"
// @Router /pdftoimg [post]
func (h *PrintHandler) PrintDocument(c *gin.Context) {
	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, apperror.PayloadInvalid("document_path is required", err))
		return
	}

	ref := service.PrinterRef(c.GetHeader(middleware.HeaderPrinterID), req.PrinterID, h.dispatchService.DefaultPrinter())
	h.dispatch(c, ref, model.DocumentJob{
		DocumentPath: req.DocumentPath,
		Convert:      req.Convert == nil || *req.Convert,
	})
}

func (h *PrintHandler) dispatch(c *gin.Context, ref string, job model.PrintJob) {
	opts := service.DispatchOptions{Probe: h.dispatchService.DefaultProbe()}
	receipt, err := h.dispatchService.Dispatch(c.Request.Context(), ref, job, middleware.CurrentClient(c), opts)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Printed", receipt)
}
