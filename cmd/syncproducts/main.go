package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	applicationfulfillment "github.com/storefront/backend/internal/application/fulfillment"
	"github.com/storefront/backend/internal/infrastructure/config"
	infrafulfillment "github.com/storefront/backend/internal/infrastructure/fulfillment"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
)

// syncproducts pushes the entire catalog to the fulfillment platform once and
// exits. Intended for the initial platform onboarding and for re-syncs after
// bulk catalog edits.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	if !cfg.Fulfillment.Configured() {
		log.Fatal("Fulfillment platform not configured")
	}

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	client, err := infrafulfillment.NewClient(&infrafulfillment.Config{
		APIKey:                cfg.Fulfillment.APIKey,
		BaseURL:               cfg.Fulfillment.BaseURL,
		MarketplaceID:         cfg.Fulfillment.MarketplaceID,
		DefaultShippingMethod: cfg.Fulfillment.DefaultShippingMethod,
		CarrierID:             cfg.Fulfillment.CarrierID,
		AuthEmail:             cfg.Fulfillment.AuthEmail,
		AuthPassword:          cfg.Fulfillment.AuthPassword,
		LocationKey:           cfg.Fulfillment.LocationKey,
		StaticToken:           cfg.Fulfillment.StaticToken,
		TokenTTL:              cfg.Fulfillment.TokenTTL,
		Timeout:               cfg.Fulfillment.Timeout,
		ExpressLeadDays:       cfg.Fulfillment.ExpressLeadDays,
		StandardLeadDays:      cfg.Fulfillment.StandardLeadDays,
		Brand:                 cfg.Fulfillment.Brand,
		TaxRate:               cfg.Fulfillment.TaxRate,
		TaxRuleName:           cfg.Fulfillment.TaxRuleName,
	})
	if err != nil {
		log.Fatal("Failed to initialize fulfillment client", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	productStore := persistence.NewGormProductStore(db.DB)
	service := applicationfulfillment.NewProductSyncService(client, productStore, cfg.Fulfillment.ProductSyncPace, log)

	result, err := service.SyncAll(ctx)
	if result != nil {
		fmt.Printf("Synced: %d  Failed: %d  Skipped: %d\n",
			result.SuccessCount, result.FailedCount, result.SkippedCount)
		for _, item := range result.Errors {
			if item.Duplicate {
				fmt.Printf("  %s: already exists on platform (%s)\n", item.SKU, item.Error)
			} else {
				fmt.Printf("  %s: %s\n", item.SKU, item.Error)
			}
		}
	}
	if err != nil {
		log.Error("Catalog sync aborted", zap.Error(err))
		os.Exit(1)
	}
}
