// Package cache publishes export run statuses to Redis so pollers do not
// hit the database.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/deepscene/det3d/pkg/datamodel"
)

// ErrNotFound is returned when no status is cached for a run.
var ErrNotFound = errors.New("cache: run status not found")

const runStatusKeyFormat = "det3d:export:%s"

// Cache wraps the Redis client used for export statuses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache initiates a cache instance
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// SetRunStatus stores the status of an export run under its UID.
func (c *Cache) SetRunStatus(ctx context.Context, runUID string, status datamodel.ExportStatus) error {
	key := fmt.Sprintf(runStatusKeyFormat, runUID)
	return c.client.Set(ctx, key, string(status), c.ttl).Err()
}

// GetRunStatus fetches the cached status of an export run.
func (c *Cache) GetRunStatus(ctx context.Context, runUID string) (datamodel.ExportStatus, error) {
	key := fmt.Sprintf(runStatusKeyFormat, runUID)
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return datamodel.ExportStatus(val), nil
}
