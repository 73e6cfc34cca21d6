package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/clients"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const (
	catalogKeyPrefix = "catalog:products:"
	catalogKeyAll    = catalogKeyPrefix + "all"
	scanBatch        = 100
)

// CatalogCache хранит готовые ответы каталога в Redis, по одному ключу на значение limit.
type CatalogCache struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCatalogCache(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CatalogCache {
	return &CatalogCache{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Get возвращает закэшированный ответ. Повреждённая запись удаляется и считается промахом.
func (c *CatalogCache) Get(ctx context.Context, limit *int64) ([]domain.Document, bool, error) {
	key := catalogKey(limit)

	data, err := c.client.Client.Get(ctx, key).Bytes()
	if err == r.Nil {
		return nil, false, nil // cache miss
	}
	if err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := unmarshalCatalog(data)
	if err != nil {
		c.logger.Warnf("Redis unmarshal failed for key %s: %v", key, e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(ctx, key).Err(); err != nil {
			c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false, nil
	}

	return items, true, nil
}

// Set кэширует ответ каталога на cfg.CatalogTTL.
func (c *CatalogCache) Set(ctx context.Context, limit *int64, items []domain.Document) error {
	data, err := json.Marshal(items)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, catalogKey(limit), data, c.cfg.CatalogTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Invalidate удаляет все ключи каталога. Используется SCAN, чтобы не блокировать Redis на KEYS.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	var (
		cursor uint64
		keys   []string
	)

	for {
		batch, next, err := c.client.Client.Scan(ctx, cursor, catalogKeyPrefix+"*", scanBatch).Result()
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		keys = append(keys, batch...)

		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Client.Del(ctx, keys...).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// catalogKey возвращает Redis-ключ для значения limit
func catalogKey(limit *int64) string {
	if limit == nil {
		return catalogKeyAll
	}

	return catalogKeyPrefix + "limit:" + strconv.FormatInt(*limit, 10)
}

func unmarshalCatalog(data []byte) ([]domain.Document, error) {
	var items []domain.Document
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, fmt.Errorf("empty catalog payload")
	}

	return items, nil
}
