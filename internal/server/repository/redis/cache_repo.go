package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/internal/server/repository/redis/converter"
	"github.com/DRSN-tech/go-storefront/internal/server/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/clients"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

// Ключ, под которым хранится сериализованный каталог целиком.
// Каталог кэшируется одним значением: порядок товаров значим,
// и отдавать его нужно ровно в том виде, в каком он лежит в БД.
const catalogKey = "catalog:products"

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductInfoConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductInfoConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCatalog возвращает закэшированный каталог; (nil, nil) при промахе.
func (r *CacheRepo) GetCatalog(ctx context.Context) ([]usecase.ProductInfo, error) {
	data, err := r.client.Client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil // cache miss
		}

		r.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.ProductInfoRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := r.client.Client.Del(context.Background(), catalogKey).Err(); err != nil {
			r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil // повреждённое значение трактуем как промах
	}

	return r.conv.ToArrUseCase(models), nil
}

// SetCatalog кэширует каталог с TTL из конфигурации.
// Ошибки сериализации/записи не фатальны и только логируются.
func (r *CacheRepo) SetCatalog(ctx context.Context, products []usecase.ProductInfo) error {
	models := r.conv.ToArrRedisModel(products)

	data, err := json.Marshal(models)
	if err != nil {
		r.logger.Warnf("Failed to marshal catalog for caching: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil
	}

	if err := r.client.Client.Set(ctx, catalogKey, data, r.cfg.ProductTTL).Err(); err != nil {
		r.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteCatalog инвалидирует закэшированный каталог.
func (r *CacheRepo) DeleteCatalog(ctx context.Context) error {
	if err := r.client.Client.Del(ctx, catalogKey).Err(); err != nil {
		r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}
