// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "printer-service/docs"
	"printer-service/internal/auth"
	"printer-service/internal/config"
	"printer-service/internal/discovery"
	"printer-service/internal/escpos"
	"printer-service/internal/events"
	"printer-service/internal/identity"
	"printer-service/internal/probe"
	"printer-service/internal/raster"
	"printer-service/internal/repository"
	"printer-service/internal/routes"
	"printer-service/internal/service"
	"printer-service/internal/storage"
	"printer-service/internal/transport"
	"printer-service/internal/utils"
)

// Application represents the main application
type Application struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	store    storage.DocumentStore
	identity identity.ServerIdentity
	eventBus *events.EventBus

	// Repositories
	printerRepo repository.PrinterRepository
	clientRepo  repository.ClientRepository

	// Services
	printerService   *service.PrinterService
	dispatchService  *service.DispatchService
	clientService    *service.ClientService
	discoveryService *service.DiscoveryService
}

// @title Printer Service API
// @version 1.0.0
// @description Receipt printer registry and print dispatch for POS clients
// @BasePath /
func main() {
	app, err := NewApplication(os.Args[1:])
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := app.Start(); err != nil {
		app.logger.Fatal("Failed to start application", zap.Error(err))
	}
}

// NewApplication creates a new application instance
func NewApplication(args []string) (*Application, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &Application{
		config: cfg,
		logger: logger,
	}

	if err := app.initializeStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.initializeRepositories()

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initializeServer()

	return app, nil
}

// initializeStorage opens the document store and loads the server identity
func (app *Application) initializeStorage() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := storage.Open(ctx, &app.config.Storage, app.logger)
	if err != nil {
		return err
	}
	app.store = store

	id, err := identity.LoadOrCreate(ctx, store, app.logger)
	if err != nil {
		return fmt.Errorf("failed to load server identity: %w", err)
	}
	app.identity = id

	if err := os.MkdirAll(app.config.Storage.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	app.logger.Info("Storage initialized successfully",
		zap.String("driver", app.config.Storage.Driver),
		zap.String("server_id", id.ServerID),
	)
	return nil
}

// initializeRepositories creates repository instances
func (app *Application) initializeRepositories() {
	app.printerRepo = repository.NewPrinterRepository(app.store, app.logger, app.config.Printer.MaxPerRole, app.config.Printer.DefaultPort)
	app.clientRepo = repository.NewClientRepository(app.store, app.logger)

	app.logger.Info("Repositories initialized successfully")
}

// initializeServices creates service instances
func (app *Application) initializeServices() error {
	pc := app.config.Printer

	prober := probe.NewTCPProber(pc.ProbeTimeout, app.logger)

	tr, err := transport.New(transport.Style(pc.Transport), transport.Options{
		Encoder:        escpos.NewEncoder(pc.PaperWidthChars, pc.PaperWidthDots),
		DialTimeout:    pc.ProbeTimeout,
		ExecuteTimeout: pc.ExecuteTimeout,
	}, app.logger)
	if err != nil {
		return err
	}

	rasterizer := raster.New(&app.config.Rasterizer, pc.PaperWidthDots, app.logger)

	app.eventBus = events.NewEventBus(app.logger)
	go app.eventBus.Start()

	app.dispatchService = service.NewDispatchService(app.printerRepo, prober, tr, rasterizer, app.eventBus, app.config, app.logger)
	app.printerService = service.NewPrinterService(app.printerRepo, prober, app.dispatchService, app.eventBus, app.config, app.logger)
	app.clientService = service.NewClientService(app.clientRepo, app.logger)

	dc := app.config.Discovery
	scanner := discovery.NewScanner(discovery.Config{
		Networks: dc.Networks,
		Ports:    dc.Ports,
		Workers:  dc.Workers,
		Timeout:  dc.Timeout,
	}, nil, app.logger)
	app.discoveryService = service.NewDiscoveryService(scanner, app.printerRepo, app.logger)

	app.logger.Info("Services initialized successfully",
		zap.String("transport", string(tr.Style())),
		zap.Bool("auth_enabled", app.config.Auth.Enabled),
		zap.Bool("probe_before_print", pc.ProbeBeforePrint),
	)
	return nil
}

// initializeServer sets up HTTP server and routes
func (app *Application) initializeServer() {
	routerManager := routes.NewRouter(app.config, app.logger, routes.Dependencies{
		Store:            app.store,
		Identity:         app.identity,
		Gate:             auth.NewGate(app.clientRepo, app.config.Auth.Enabled),
		EventBus:         app.eventBus,
		PrinterService:   app.printerService,
		DispatchService:  app.dispatchService,
		ClientService:    app.clientService,
		DiscoveryService: app.discoveryService,
	})

	app.server = &http.Server{
		Addr:         app.config.GetServerAddr(),
		Handler:      routerManager.SetupRouter(),
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  app.config.Server.IdleTimeout,
	}

	app.logger.Info("HTTP server initialized",
		zap.String("address", app.config.GetServerAddr()),
		zap.Bool("tls_enabled", app.config.Server.TLS.Enabled),
	)
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	app.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	app.shutdown()
}

// shutdown performs graceful shutdown
func (app *Application) shutdown() {
	serviceLogger := utils.NewServiceLogger(app.logger, "printer-service")
	serviceLogger.LogServiceStop("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		app.logger.Info("HTTP server stopped")
	}

	if app.eventBus != nil {
		app.eventBus.Stop()
	}

	if app.store != nil {
		if err := app.store.Close(); err != nil {
			app.logger.Error("Storage close error", zap.Error(err))
		} else {
			app.logger.Info("Storage closed")
		}
	}

	app.logger.Info("Application shutdown completed")

	if err := utils.CloseLogger(app.logger); err != nil {
		fmt.Printf("Logger close error: %v\n", err)
	}
}

func (app *Application) Start() error {
	serviceLogger := utils.NewServiceLogger(app.logger, "printer-service")
	serviceLogger.LogServiceStart(app.config.App.Version, app.identity.ServerID, app.config)

	go func() {
		app.logger.Info("Starting HTTP server",
			zap.String("address", app.server.Addr),
		)

		var err error
		if app.config.Server.TLS.Enabled {
			err = app.server.ListenAndServeTLS(
				app.config.Server.TLS.CertFile,
				app.config.Server.TLS.KeyFile,
			)
		} else {
			err = app.server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	app.waitForShutdown()

	return nil
}
