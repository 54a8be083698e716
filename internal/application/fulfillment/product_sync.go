package fulfillment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	fulfillmentdomain "github.com/storefront/backend/internal/domain/fulfillment"
)

// defaultPace is the wait between consecutive platform requests during a
// bulk sync, keeping the batch under the platform's rate limits.
const defaultPace = 500 * time.Millisecond

// ProductSyncService pushes the whole catalog to the platform in one paced
// batch
type ProductSyncService struct {
	platform fulfillmentdomain.Platform
	products catalog.Repository
	pace     time.Duration
	logger   *zap.Logger

	// sleep is replaceable in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewProductSyncService creates a bulk product sync service. pace <= 0 uses
// the default inter-request wait.
func NewProductSyncService(
	platform fulfillmentdomain.Platform,
	products catalog.Repository,
	pace time.Duration,
	logger *zap.Logger,
) *ProductSyncService {
	if pace <= 0 {
		pace = defaultPace
	}
	return &ProductSyncService{
		platform: platform,
		products: products,
		pace:     pace,
		logger:   logger,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SyncAll registers every catalog product on the platform. Products without
// a SKU are skipped with a warning. Individual rejections, including
// likely-duplicate SKUs, are tallied and never abort the batch; only
// configuration, auth and context failures do.
func (s *ProductSyncService) SyncAll(ctx context.Context) (*fulfillmentdomain.BulkSyncResult, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &fulfillmentdomain.BulkSyncResult{}
	sent := false
	for i := range products {
		product := &products[i]
		if product.SKU == "" {
			s.logger.Warn("product skipped, no sku",
				zap.String("product_id", product.ID.String()),
				zap.String("name", product.Name))
			result.SkippedCount++
			continue
		}

		if sent {
			if err := s.sleep(ctx, s.pace); err != nil {
				return result, err
			}
		}
		sent = true

		syncResult, err := s.platform.CreateProduct(ctx, product)
		if err != nil {
			return result, err
		}

		if syncResult.Success {
			result.SuccessCount++
			continue
		}

		result.FailedCount++
		result.Errors = append(result.Errors, fulfillmentdomain.BulkSyncError{
			SKU:       product.SKU,
			Error:     syncResult.Error,
			Duplicate: syncResult.DuplicateSKU,
		})
		s.logger.Warn("product sync rejected",
			zap.String("sku", product.SKU),
			zap.String("platform_error", syncResult.Error),
			zap.Bool("likely_duplicate", syncResult.DuplicateSKU))
	}

	s.logger.Info("product sync finished",
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", result.FailedCount),
		zap.Int("skipped", result.SkippedCount))
	return result, nil
}
