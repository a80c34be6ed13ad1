package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DRSN-tech/product-ordering/internal/cfg"
	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/DRSN-tech/product-ordering/internal/repository/redis/converter"
	"github.com/DRSN-tech/product-ordering/pkg/clients"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"github.com/jimlawless/whereami"
)

// CatalogCacheRepo кэширует страницы каталога в Redis с TTL.
type CatalogCacheRepo struct {
	client   *clients.RedisClient
	conv     converter.CatalogPageConverter
	cfg      *cfg.RedisCfg
	pageSize int
	logger   logger.Logger
}

func NewCatalogCacheRepo(client *clients.RedisClient, conv converter.CatalogPageConverter,
	cfg *cfg.RedisCfg, pageSize int, logger logger.Logger) *CatalogCacheRepo {
	return &CatalogCacheRepo{
		client:   client,
		conv:     conv,
		cfg:      cfg,
		pageSize: pageSize,
		logger:   logger,
	}
}

// GetCatalogPage возвращает страницу из кэша. Промах и испорченная запись дают nil без ошибки.
func (r *CatalogCacheRepo) GetCatalogPage(ctx context.Context, page int) (*domain.CatalogPage, error) {
	key := r.pageKey(page)

	val, err := r.client.Client.Get(ctx, key).Result()
	if err != nil {
		if isNil(err) {
			return nil, nil // cache miss
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := redisValueToBytes(val, key)
	if err != nil || data == nil {
		return nil, err
	}

	var model converter.CatalogPageRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		r.drop(key)
		return nil, nil
	}

	if model.Page != page {
		r.logger.Warnf("Cache page mismatch: key_page: %d, model_page: %d", page, model.Page)
		r.drop(key)
		return nil, nil
	}

	result, err := r.conv.ToEntity(&model)
	if err != nil {
		r.logger.Warnf("Corrupted catalog page in cache: %v", e.Wrap(whereami.WhereAmI(), err))
		r.drop(key)
		return nil, nil
	}

	return result, nil
}

// SetCatalogPage кладёт страницу в кэш на CatalogTTL.
func (r *CatalogCacheRepo) SetCatalogPage(ctx context.Context, page int, catalogPage *domain.CatalogPage) error {
	data, err := json.Marshal(r.conv.ToRedisModel(page, catalogPage))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := r.client.Client.Set(ctx, r.pageKey(page), data, r.cfg.CatalogTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *CatalogCacheRepo) drop(key string) {
	if err := r.client.Client.Del(context.Background(), key).Err(); err != nil {
		r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// pageKey учитывает размер страницы: после его смены старые записи не используются.
func (r *CatalogCacheRepo) pageKey(page int) string {
	return fmt.Sprintf("catalog:%d:page:%d", r.pageSize, page)
}
