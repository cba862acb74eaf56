// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"teamflow_backend/internal/feature/sector/domain/entity"
	"teamflow_backend/internal/feature/sector/usecase"
)

// CachingSectorRepository decorates a SectorRepository with Redis caching.
// Reads by ID and listings are cached; every write drops the whole namespace.
type CachingSectorRepository struct {
	inner     usecase.SectorRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.SectorRepository = (*CachingSectorRepository)(nil)

// NewCachingSectorRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "sectors".
// A nil rdb disables caching.
func NewCachingSectorRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SectorRepository, namespace string) *CachingSectorRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "sectors"
	}
	return &CachingSectorRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingSectorRepository) Create(ctx context.Context, s *entity.Sector) error {
	if err := c.inner.Create(ctx, s); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingSectorRepository) Update(ctx context.Context, id string, changes entity.Update) (*entity.Sector, error) {
	s, err := c.inner.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return s, nil
}

func (c *CachingSectorRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByName is used for uniqueness checks and always goes to the database.
func (c *CachingSectorRepository) FindByName(ctx context.Context, name string) (*entity.Sector, error) {
	return c.inner.FindByName(ctx, name)
}

func (c *CachingSectorRepository) FindByID(ctx context.Context, id string) (*entity.Sector, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := fmt.Sprintf("%s:id:%s", c.namespace, safe(id))
	var cached entity.Sector
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	s, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, s)
	return s, nil
}

func (c *CachingSectorRepository) ListOrFilter(ctx context.Context, filter entity.Filter) ([]entity.Sector, error) {
	if c.rdb == nil {
		return c.inner.ListOrFilter(ctx, filter)
	}

	key := c.listKey(filter)
	var cached []entity.Sector
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	out, err := c.inner.ListOrFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// get loads key into dst. Corrupted entries are deleted and reported as a miss.
func (c *CachingSectorRepository) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores v under key. Failures are ignored.
func (c *CachingSectorRepository) set(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate drops every cached sector entry.
func (c *CachingSectorRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.Warn("sector cache invalidation failed", "error", err)
	}
}

// listKey encodes every filter predicate, using "-" for an unset one.
func (c *CachingSectorRepository) listKey(f entity.Filter) string {
	name, desc, active := "-", "-", "-"
	if f.Name != nil {
		name = "=" + safe(*f.Name)
	}
	if f.Description != nil {
		desc = "=" + safe(*f.Description)
	}
	if f.IsActive != nil {
		active = strconv.FormatBool(*f.IsActive)
	}
	return fmt.Sprintf("%s:list:%s:%s:%s", c.namespace, name, desc, active)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingSectorRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes a value so it cannot contain the ':' separator or glob characters.
func safe(s string) string {
	return url.QueryEscape(s)
}
