package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

// CatalogUseCase отдаёт каталог товаров. Чтение никогда не ломается:
// при любой ошибке хранилища клиент получает базовый каталог.
type CatalogUseCase struct {
	store  DocumentStore
	cache  CatalogCache
	logger logger.Logger
}

// NewCatalogUC создаёт use case каталога. store может быть nil, если хранилище не инициализировано.
func NewCatalogUC(store DocumentStore, cache CatalogCache, logger logger.Logger) *CatalogUseCase {
	if cache == nil {
		cache = NopCatalogCache{}
	}

	return &CatalogUseCase{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// ListProducts возвращает товары каталога, при необходимости заполняя пустую коллекцию.
func (c *CatalogUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "CatalogUseCase.ListProducts"

	if req.Limit != nil && *req.Limit < 0 {
		return nil, e.Wrap(op, e.ErrInvalidLimit)
	}

	if items, ok := c.getCached(ctx, req.Limit); ok {
		return NewListProductsRes(items), nil
	}

	docs, err := c.loadProducts(ctx, req.Limit)
	if err != nil {
		c.logger.Warnf("Catalog store unavailable, serving default products: %v", e.Wrap(op, err))
		return NewListProductsRes(FallbackProducts()), nil
	}

	items := toExternalDocuments(docs)
	if len(items) > 0 {
		if err := c.cache.Set(ctx, req.Limit, items); err != nil {
			c.logger.Warnf("Failed to cache catalog: %v", e.Wrap(op, err))
		}
	}

	return NewListProductsRes(items), nil
}

// loadProducts читает коллекцию товаров; пустую коллекцию заполняет и перечитывает с тем же limit.
func (c *CatalogUseCase) loadProducts(ctx context.Context, limit *int64) ([]domain.Document, error) {
	if c.store == nil {
		return nil, e.ErrStoreNotInitialized
	}

	filter := domain.Filter{}
	docs, err := c.store.GetDocuments(ctx, domain.ProductCollection, filter, limit)
	if err != nil {
		return nil, err
	}

	// limit=0 ничего не говорит о пустоте коллекции
	if len(docs) > 0 || (limit != nil && *limit == 0) {
		return docs, nil
	}

	report := c.seedDefaults(ctx)
	if len(report.Failed) > 0 {
		c.logger.Warnf("Catalog seeding finished with %d/%d failures: %v",
			len(report.Failed), report.Inserted+len(report.Failed), errors.Join(report.Failed...))
	} else {
		c.logger.Infof("Catalog seeded with %d default products", report.Inserted)
	}

	if report.Inserted > 0 {
		if err := c.cache.Invalidate(ctx); err != nil {
			c.logger.Warnf("Failed to invalidate catalog cache: %v", err)
		}
	}

	return c.store.GetDocuments(ctx, domain.ProductCollection, filter, limit)
}

// seedDefaults вставляет каждый товар по умолчанию отдельно. Ошибки собираются, но не прерывают цикл.
func (c *CatalogUseCase) seedDefaults(ctx context.Context) *SeedReport {
	report := &SeedReport{}
	for _, product := range DefaultProducts() {
		if _, err := c.store.CreateDocument(ctx, domain.ProductCollection, product.ToDocument()); err != nil {
			report.Failed = append(report.Failed, e.Wrap(product.Title, err))
			continue
		}
		report.Inserted++
	}

	return report
}

func (c *CatalogUseCase) getCached(ctx context.Context, limit *int64) ([]domain.Document, bool) {
	items, ok, err := c.cache.Get(ctx, limit)
	if err != nil {
		c.logger.Warnf("Catalog cache read failed: %v", err)
		return nil, false
	}

	return items, ok && len(items) > 0
}

// toExternalDocuments переносит собственный идентификатор хранилища в поле id.
// Записи без _id отдаются как есть.
func toExternalDocuments(docs []domain.Document) []domain.Document {
	items := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		item := doc.Clone()
		if native, ok := item[domain.NativeIDField]; ok {
			item[domain.ExternalIDField] = nativeIDString(native)
			delete(item, domain.NativeIDField)
		}
		items = append(items, item)
	}

	return items
}

// nativeIDString приводит идентификатор хранилища к строке, не зная его конкретного типа.
func nativeIDString(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case interface{ Hex() string }:
		return v.Hex()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
