// Package cache là cache read-through trên Redis cho các bản ghi bất biến (sơ đồ cửa hàng).
// Giá trị được mã hóa bằng BSON để giữ nguyên kiểu dữ liệu của model (ObjectID, int, ...).
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickart/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

// NewClient tạo Redis client và ping kiểm tra kết nối
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", addr, err)
	}
	return client, nil
}

// Cache lưu document theo key. Một *Cache nil luôn miss và bỏ qua Set.
type Cache struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	metrics *metrics.Metrics
}

// New tạo cache với key prefix và TTL (0 = không hết hạn)
func New(client *redis.Client, prefix string, ttl time.Duration, m *metrics.Metrics) *Cache {
	return &Cache{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		metrics: m,
	}
}

func (c *Cache) key(id string) string {
	return c.prefix + id
}

// Get đọc document vào dest. found=false khi key không tồn tại.
func (c *Cache) Get(ctx context.Context, id string, dest interface{}) (found bool, err error) {
	if c == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.ObserveCache(metrics.CacheMiss)
		return false, nil
	}
	if err != nil {
		c.metrics.ObserveCache(metrics.CacheError)
		return false, fmt.Errorf("cache get %s: %w", id, err)
	}

	if err := bson.Unmarshal(data, dest); err != nil {
		c.metrics.ObserveCache(metrics.CacheError)
		return false, fmt.Errorf("cache decode %s: %w", id, err)
	}
	c.metrics.ObserveCache(metrics.CacheHit)
	return true, nil
}

// Set ghi document với TTL của cache
func (c *Cache) Set(ctx context.Context, id string, value interface{}) error {
	if c == nil {
		return nil
	}

	data, err := bson.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", id, err)
	}
	if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", id, err)
	}
	return nil
}
