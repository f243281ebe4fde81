package sync

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/webshop/backend/internal/domain/catalog"
	"github.com/webshop/backend/internal/domain/integration"
	"github.com/webshop/backend/internal/domain/shared"
)

// Operation keys guarded by the operation gate
const (
	OpProductSync            = "product_sync"
	OpProductSyncIncremental = "product_sync_incremental"
)

// ProductSyncConfig contains configuration for the product sync service
type ProductSyncConfig struct {
	PageSize          int
	CategoryAllowList []int64       // empty accepts all remote categories
	PagePause         time.Duration // pause between successful pages
	ErrorPause        time.Duration // pause after a failed page
}

// DefaultProductSyncConfig returns default configuration
func DefaultProductSyncConfig() ProductSyncConfig {
	return ProductSyncConfig{
		PageSize:   100,
		PagePause:  500 * time.Millisecond,
		ErrorPause: 5 * time.Second,
	}
}

// ProductSyncService crawls the remote POS catalog page by page and
// reconciles it into local storage. Each page's writes commit
// independently; a failing page is paused over and skipped rather than
// aborting the run.
type ProductSyncService struct {
	client       integration.POSClient
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	gate         shared.OperationGate
	config       ProductSyncConfig
	logger       *zap.Logger
}

// NewProductSyncService creates a new ProductSyncService
func NewProductSyncService(
	client integration.POSClient,
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	gate shared.OperationGate,
	config ProductSyncConfig,
	logger *zap.Logger,
) *ProductSyncService {
	if config.PageSize <= 0 {
		config.PageSize = 100
	}
	return &ProductSyncService{
		client:       client,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		gate:         gate,
		config:       config,
		logger:       logger,
	}
}

// SyncAll crawls the entire remote catalog
func (s *ProductSyncService) SyncAll(ctx context.Context) (*SyncSummary, error) {
	if err := s.gate.Allow(ctx, OpProductSync); err != nil {
		return nil, err
	}
	return s.run(ctx, nil)
}

// SyncIncremental crawls only products modified after the given instant
func (s *ProductSyncService) SyncIncremental(ctx context.Context, since time.Time) (*SyncSummary, error) {
	if err := s.gate.Allow(ctx, OpProductSyncIncremental); err != nil {
		return nil, err
	}
	return s.run(ctx, &since)
}

func (s *ProductSyncService) run(ctx context.Context, modifiedSince *time.Time) (*SyncSummary, error) {
	summary := &SyncSummary{}
	total := -1 // unknown until the first successful page

	for pageIndex := 0; ; pageIndex++ {
		if total >= 0 && s.config.PageSize*pageIndex >= total {
			break
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		page, err := s.client.ListProducts(ctx, pageIndex, s.config.PageSize, modifiedSince)
		if err != nil {
			s.logger.Warn("product page fetch failed, skipping page",
				zap.Int("page", pageIndex),
				zap.Error(err))
			if total < 0 {
				// The first page never succeeded, so the crawl cannot be bounded.
				return summary, err
			}
			if err := sleep(ctx, s.config.ErrorPause); err != nil {
				return summary, err
			}
			continue
		}

		total = page.Total
		if len(page.Items) == 0 {
			break
		}

		s.syncPage(ctx, page.Items, summary)

		s.logger.Info("product page synced",
			zap.Int("page", pageIndex),
			zap.Int("total", total),
			zap.Int("synced", summary.Synced),
			zap.Int("filtered", summary.Filtered))

		if err := sleep(ctx, s.config.PagePause); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// syncPage applies one page of remote products. Item-level failures are
// logged and skipped; the page never fails as a whole.
func (s *ProductSyncService) syncPage(ctx context.Context, items []integration.RemoteProduct, summary *SyncSummary) {
	for i := range items {
		remote := &items[i]
		summary.Processed++

		if !s.categoryAllowed(remote.CategoryID) {
			summary.Filtered++
			continue
		}

		if strings.TrimSpace(remote.Name) == "" || remote.BasePrice.Sign() <= 0 {
			s.logger.Debug("skipping remote product with missing name or price",
				zap.Int64("remote_id", remote.RemoteID))
			continue
		}

		if err := s.upsertProduct(ctx, remote); err != nil {
			s.logger.Warn("failed to sync remote product",
				zap.Int64("remote_id", remote.RemoteID),
				zap.Error(err))
			continue
		}
		summary.Synced++
	}
}

func (s *ProductSyncService) upsertProduct(ctx context.Context, remote *integration.RemoteProduct) error {
	quantity := s.fetchInventory(ctx, remote.RemoteID)
	price := remote.BasePrice.Round(0).IntPart()

	product, err := s.productRepo.FindByRemoteID(ctx, remote.RemoteID)
	switch {
	case err == nil:
		if err := product.Update(remote.Name, price, quantity, remote.Description); err != nil {
			return err
		}
	case errors.Is(err, shared.ErrNotFound):
		product, err = catalog.NewProduct(remote.Name, price)
		if err != nil {
			return err
		}
		remoteID := remote.RemoteID
		product.RemoteID = &remoteID
		product.Quantity = quantity
		product.Description = remote.Description

		category, err := s.resolveCategory(ctx, remote)
		if err != nil {
			return err
		}
		if category != nil {
			product.Categories = []catalog.Category{*category}
		}
	default:
		return err
	}

	product.Code = remote.Code
	product.Active = remote.Active
	product.SetImages(remote.Images)

	return s.productRepo.Save(ctx, product)
}

// resolveCategory finds the local mirror of the remote category, creating
// it lazily on first sighting
func (s *ProductSyncService) resolveCategory(ctx context.Context, remote *integration.RemoteProduct) (*catalog.Category, error) {
	if remote.CategoryID == 0 {
		return nil, nil
	}

	category, err := s.categoryRepo.FindByRemoteID(ctx, remote.CategoryID)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	name := remote.CategoryName
	if strings.TrimSpace(name) == "" {
		name = "Uncategorized"
	}
	category, err = catalog.NewRemoteCategory(remote.CategoryID, name)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// fetchInventory is best-effort: a failed lookup defaults to zero
func (s *ProductSyncService) fetchInventory(ctx context.Context, remoteID int64) int {
	quantity, err := s.client.GetProductInventory(ctx, remoteID)
	if err != nil {
		s.logger.Warn("inventory fetch failed, defaulting to zero",
			zap.Int64("remote_id", remoteID),
			zap.Error(err))
		return 0
	}
	return quantity
}

func (s *ProductSyncService) categoryAllowed(categoryID int64) bool {
	if len(s.config.CategoryAllowList) == 0 {
		return true
	}
	for _, id := range s.config.CategoryAllowList {
		if id == categoryID {
			return true
		}
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
