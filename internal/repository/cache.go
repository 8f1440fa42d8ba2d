package repository

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	"github.com/redis/go-redis/v9"
	"strings"
	"time"
)

// cachedProductRepository keeps search results in Redis. Cache failures are
// logged and never fail a search.
type cachedProductRepository struct {
	next   ProductRepository
	client *redis.Client
	ttl    time.Duration
	logger hclog.Logger
}

func NewCachedProductRepository(next ProductRepository, client *redis.Client, ttl time.Duration, logger hclog.Logger) ProductRepository {
	return &cachedProductRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *cachedProductRepository) Search(ctx context.Context, keywords []string, limit int) ([]*domain.RetrievedProduct, error) {
	if len(keywords) == 0 {
		return []*domain.RetrievedProduct{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := searchKey(keywords, limit)

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var products []*domain.RetrievedProduct
		if err := json.Unmarshal(data, &products); err == nil {
			r.logger.Debug("Search cache hit", "key", key)
			return products, nil
		}
		r.logger.Warn("Unable to decode cached search", "key", key, "error", err)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("Redis GET failed", "key", key, "error", err)
	}

	products, err := r.next.Search(ctx, keywords, limit)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(products)
	if err != nil {
		r.logger.Warn("Unable to encode search for caching", "key", key, "error", err)
		return products, nil
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("Redis SET failed", "key", key, "error", err)
	}

	return products, nil
}

// Sample is not cached
func (r *cachedProductRepository) Sample(ctx context.Context, limit int) ([]*domain.ProductSummary, error) {
	return r.next.Sample(ctx, limit)
}

func searchKey(keywords []string, limit int) string {
	sum := sha1.Sum([]byte(strings.Join(keywords, "\x1f")))
	return fmt.Sprintf("search:%d:%s", limit, hex.EncodeToString(sum[:]))
}
