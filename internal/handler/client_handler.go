// internal/handler/client_handler.go
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printer-service/internal/apperror"
	"printer-service/internal/model"
	"printer-service/internal/service"
	"printer-service/internal/utils"
)

// ClientHandler handles POS client registration
type ClientHandler struct {
	clientService *service.ClientService
	logger        *utils.ServiceLogger
}

// RegisterClientRequest is the body of POST /api/client/create
type RegisterClientRequest struct {
	Role model.Role `json:"role"`
}

func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        utils.NewServiceLogger(logger, "client-handler"),
	}
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/clients", h.ListClients)
	router.POST("/client/create", h.RegisterClient)
}

// ListClients lists clients without their pins
// @Summary List clients
// @Tags Clients
// @Produce json
// @Param Authorization header string false "Bearer admin token"
// @Success 200 {object} utils.APIResponse{data=[]model.ClientView} "Clients retrieved successfully"
// @Router /api/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Clients retrieved successfully", h.clientService.List(c.Request.Context()))
}

// RegisterClient mints a client id and pin
// @Summary Register client
// @Description The returned pin is shown once and never listed again
// @Tags Clients
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer admin token"
// @Param request body RegisterClientRequest true "Client role"
// @Success 201 {object} utils.APIResponse{data=model.ClientCredentials} "Client registered"
// @Failure 400 {object} utils.APIResponse "Role is required"
// @Router /api/client/create [post]
func (h *ClientHandler) RegisterClient(c *gin.Context) {
	var req RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, apperror.PayloadInvalid("Invalid request body", err))
		return
	}

	creds, err := h.clientService.Register(c.Request.Context(), req.Role)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	h.logger.Info("Client registered", zap.String("client_id", creds.ID))
	utils.SuccessResponse(c, http.StatusCreated, "Client registered", creds)
}
