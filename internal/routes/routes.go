// internal/routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"printer-service/internal/auth"
	"printer-service/internal/config"
	"printer-service/internal/events"
	"printer-service/internal/handler"
	"printer-service/internal/identity"
	"printer-service/internal/middleware"
	"printer-service/internal/service"
	"printer-service/internal/storage"
	"printer-service/internal/utils"
)

// Router holds all dependencies for routing
type Router struct {
	config           *config.Config
	logger           *zap.Logger
	store            storage.DocumentStore
	identity         identity.ServerIdentity
	gate             *auth.Gate
	eventBus         *events.EventBus
	printerService   *service.PrinterService
	dispatchService  *service.DispatchService
	clientService    *service.ClientService
	discoveryService *service.DiscoveryService
}

// Dependencies groups what the router wires into handlers
type Dependencies struct {
	Store            storage.DocumentStore
	Identity         identity.ServerIdentity
	Gate             *auth.Gate
	EventBus         *events.EventBus
	PrinterService   *service.PrinterService
	DispatchService  *service.DispatchService
	ClientService    *service.ClientService
	DiscoveryService *service.DiscoveryService
}

// NewRouter creates a new router instance
func NewRouter(config *config.Config, logger *zap.Logger, deps Dependencies) *Router {
	return &Router{
		config:           config,
		logger:           logger,
		store:            deps.Store,
		identity:         deps.Identity,
		gate:             deps.Gate,
		eventBus:         deps.EventBus,
		printerService:   deps.PrinterService,
		dispatchService:  deps.DispatchService,
		clientService:    deps.ClientService,
		discoveryService: deps.DiscoveryService,
	}
}

// SetupRouter creates and configures the Gin router
func (r *Router) SetupRouter() *gin.Engine {
	if r.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	r.addMiddleware(router)
	r.addRoutes(router)

	return router
}

// addMiddleware adds middleware to the router
func (r *Router) addMiddleware(router *gin.Engine) {
	router.Use(middleware.RecoveryMiddleware(r.logger))
	router.Use(middleware.RequestIDMiddleware())

	serviceLogger := utils.NewServiceLogger(r.logger, "http-server")
	router.Use(middleware.LoggingMiddleware(serviceLogger))

	router.Use(middleware.CORSMiddleware(&r.config.Security))

	r.logger.Info("Middleware configured")
}

// addRoutes sets up all application routes
func (r *Router) addRoutes(router *gin.Engine) {
	securityLogger := utils.NewSecurityLogger(r.logger)

	healthHandler := handler.NewHealthHandler(r.store, r.identity, r.config, r.logger)
	printerHandler := handler.NewPrinterHandler(r.printerService, r.logger)
	printHandler := handler.NewPrintHandler(r.dispatchService, r.logger)
	clientHandler := handler.NewClientHandler(r.clientService, r.logger)

	healthHandler.RegisterRoutes(&router.RouterGroup)

	api := router.Group("/api")
	healthHandler.RegisterInfoRoutes(api)
	printerHandler.RegisterRoutes(api)

	privileged := api.Group("")
	privileged.Use(middleware.ClientAuthMiddleware(r.gate, securityLogger))
	printerHandler.RegisterPrivilegedRoutes(privileged)
	if r.discoveryService != nil {
		handler.NewDiscoveryHandler(r.discoveryService, r.logger).RegisterRoutes(privileged)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminTokenMiddleware(r.config.Auth.AdminToken, securityLogger))
	clientHandler.RegisterRoutes(admin)

	// Print endpoints sit at the root for existing POS clients.
	printing := router.Group("")
	printing.Use(middleware.ClientAuthMiddleware(r.gate, securityLogger))
	printHandler.RegisterRoutes(printing)

	if r.eventBus != nil {
		wsHandler := handler.NewWebSocketHandler(r.eventBus, r.config.Security.AllowedOrigins, r.logger)
		wsHandler.RegisterRoutes(router.Group("/ws"))
	}

	r.addDocumentationRoutes(router)

	r.logger.Info("All routes configured successfully")
}

// addDocumentationRoutes sets up documentation routes
func (r *Router) addDocumentationRoutes(router *gin.Engine) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	router.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
}
