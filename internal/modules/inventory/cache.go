package inventory

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheTTL = 5 * time.Minute

// cacheStore is the slice of Redis the repository cache uses. Failures
// degrade to cache misses; the production implementation logs them and
// never surfaces an error.
type cacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Version(ctx context.Context, key string) int64
	Bump(ctx context.Context, keys ...string)
}

// cachedRepository is a read-through cache around a Repository. Cached
// entries are keyed by a version counter read before the database read, and
// every mutation bumps the item's version plus the list versions for the
// affected warehouse before returning. A fill racing a mutation therefore
// lands under a retired key and can never mask the committed state: a read
// after a write always misses into the database.
type cachedRepository struct {
	inner Repository
	store cacheStore
}

// NewCachedRepository wraps repo with a Redis read-through cache.
func NewCachedRepository(inner Repository, rdb *redis.Client, logger *zap.Logger) Repository {
	return &cachedRepository{inner: inner, store: &redisStore{rdb: rdb, logger: logger}}
}

func itemKey(id uuid.UUID, version int64) string {
	return fmt.Sprintf("inventory:item:%s:v%d", id, version)
}

func itemVersionKey(id uuid.UUID) string {
	return fmt.Sprintf("inventory:ver:item:%s", id)
}

func versionKey(warehouseID *uuid.UUID) string {
	if warehouseID == nil {
		return "inventory:ver:all"
	}
	return fmt.Sprintf("inventory:ver:%s", *warehouseID)
}

func listKey(f Filters, p PageRequest, version int64) string {
	raw, _ := json.Marshal(struct {
		Filters
		PageRequest
	}{f, p})
	return fmt.Sprintf("inventory:list:%x:v%d", md5.Sum(raw), version)
}

// invalidate bumps the item version and both the warehouse-scoped and the
// cross-warehouse list versions. Runs synchronously on the mutation path.
func (r *cachedRepository) invalidate(ctx context.Context, warehouseID uuid.UUID, itemID uuid.UUID) {
	r.store.Bump(ctx, itemVersionKey(itemID), versionKey(&warehouseID), versionKey(nil))
}

func (r *cachedRepository) List(ctx context.Context, f Filters, p PageRequest) (*Page, error) {
	key := listKey(f, p, r.store.Version(ctx, versionKey(f.WarehouseID)))

	if raw, ok := r.store.Get(ctx, key); ok {
		page := &Page{}
		if err := json.Unmarshal(raw, page); err == nil {
			return page, nil
		}
	}

	page, err := r.inner.List(ctx, f, p)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(page); err == nil {
		r.store.Set(ctx, key, raw)
	}
	return page, nil
}

func (r *cachedRepository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	// The version must be read before the database: a mutation committing
	// between the two bumps it, so the fill below targets a retired key.
	key := itemKey(id, r.store.Version(ctx, itemVersionKey(id)))

	if raw, ok := r.store.Get(ctx, key); ok {
		item := &Item{}
		if err := json.Unmarshal(raw, item); err == nil {
			return item, nil
		}
	}

	item, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(item); err == nil {
		r.store.Set(ctx, key, raw)
	}
	return item, nil
}

func (r *cachedRepository) Create(ctx context.Context, item *Item) error {
	if err := r.inner.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.WarehouseID, item.ID)
	return nil
}

func (r *cachedRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Item, *Item, error) {
	old, updated, err := r.inner.Update(ctx, id, fields)
	if err != nil {
		return nil, nil, err
	}
	r.invalidate(ctx, updated.WarehouseID, id)
	return old, updated, nil
}

func (r *cachedRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*Item, error) {
	old, err := r.inner.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, old.WarehouseID, id)
	return old, nil
}

// redisStore backs cacheStore with a Redis client.
type redisStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return raw, true
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) {
	if err := s.rdb.Set(ctx, key, value, cacheTTL).Err(); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *redisStore) Version(ctx context.Context, key string) int64 {
	v, err := s.rdb.Get(ctx, key).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn("cache version lookup failed", zap.String("key", key), zap.Error(err))
	}
	return v
}

func (s *redisStore) Bump(ctx context.Context, keys ...string) {
	pipe := s.rdb.Pipeline()
	for _, k := range keys {
		pipe.Incr(ctx, k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}
