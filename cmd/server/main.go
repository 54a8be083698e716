package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	applicationfulfillment "github.com/storefront/backend/internal/application/fulfillment"
	applicationnotification "github.com/storefront/backend/internal/application/notification"
	"github.com/storefront/backend/internal/infrastructure/config"
	infrafulfillment "github.com/storefront/backend/internal/infrastructure/fulfillment"
	"github.com/storefront/backend/internal/infrastructure/logger"
	infranotification "github.com/storefront/backend/internal/infrastructure/notification"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize stores
	orderStore := persistence.NewGormOrderStore(db.DB)
	productStore := persistence.NewGormProductStore(db.DB)

	// Build the router and always-on system routes
	r := router.NewRouter(log)
	handler.NewSystemHandler(db).RegisterRoutes(r.Engine())

	// Fulfillment platform client. The admin surface is only mounted when the
	// platform is configured; the rest of the backend runs without it.
	if cfg.Fulfillment.Configured() {
		client, err := infrafulfillment.NewClient(fulfillmentClientConfig(&cfg.Fulfillment))
		if err != nil {
			log.Fatal("Failed to initialize fulfillment client", zap.Error(err))
		}
		fulfillmentService := applicationfulfillment.NewFulfillmentService(client, orderStore, productStore, log)
		productSyncService := applicationfulfillment.NewProductSyncService(client, productStore, cfg.Fulfillment.ProductSyncPace, log)
		r.Register(handler.NewFulfillmentHandler(fulfillmentService, productSyncService, orderStore))
		log.Info("Fulfillment platform enabled", zap.String("base_url", cfg.Fulfillment.BaseURL))
	} else {
		log.Warn("Fulfillment platform not configured, sync routes disabled")
	}

	// Notification transport, queue and dispatcher
	queueCtx, stopQueue := context.WithCancel(context.Background())
	defer stopQueue()

	mailer, err := infranotification.NewMailer(&infranotification.Config{
		APIKey:        cfg.Mail.APIKey,
		BaseURL:       cfg.Mail.BaseURL,
		SenderAddress: cfg.Mail.SenderAddress,
		FromName:      cfg.Mail.FromName,
		AppURL:        cfg.App.URL,
		Timeout:       cfg.Mail.Timeout,
	})
	var queue *infranotification.Queue
	if err != nil {
		log.Warn("Mail transport not configured, notification routes disabled", zap.Error(err))
	} else {
		queue = infranotification.NewQueue(cfg.Notification.QueueSize, log)
		queue.Start(queueCtx)

		dispatcher := applicationnotification.NewDispatcher(mailer, queue, applicationnotification.Config{
			MaxRetries: cfg.Notification.MaxRetries,
			BaseDelay:  cfg.Notification.BaseDelay,
			From:       cfg.Mail.SenderAddress,
			AppURL:     cfg.App.URL,
		}, log)
		r.Register(handler.NewNotificationHandler(dispatcher, orderStore))
		log.Info("Notification dispatch enabled", zap.String("sender", cfg.Mail.SenderAddress))
	}

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        r.Engine(),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Drain queued notifications before exiting
	if queue != nil {
		queue.Stop()
	}

	log.Info("Server exited gracefully")
}

func fulfillmentClientConfig(cfg *config.FulfillmentConfig) *infrafulfillment.Config {
	return &infrafulfillment.Config{
		APIKey:                cfg.APIKey,
		BaseURL:               cfg.BaseURL,
		MarketplaceID:         cfg.MarketplaceID,
		DefaultShippingMethod: cfg.DefaultShippingMethod,
		CarrierID:             cfg.CarrierID,
		AuthEmail:             cfg.AuthEmail,
		AuthPassword:          cfg.AuthPassword,
		LocationKey:           cfg.LocationKey,
		StaticToken:           cfg.StaticToken,
		TokenTTL:              cfg.TokenTTL,
		Timeout:               cfg.Timeout,
		ExpressLeadDays:       cfg.ExpressLeadDays,
		StandardLeadDays:      cfg.StandardLeadDays,
		Brand:                 cfg.Brand,
		TaxRate:               cfg.TaxRate,
		TaxRuleName:           cfg.TaxRuleName,
	}
}
