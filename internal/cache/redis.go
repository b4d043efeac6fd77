package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options Redis 缓存配置
type Options struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// Cache Redis JSON 缓存句柄。禁用时所有操作为空操作，读取视为未命中。
type Cache struct {
	client *redis.Client
	prefix string
}

// New 创建缓存句柄；cfg 为空或禁用时返回空操作句柄
func New(opts Options) *Cache {
	if !opts.Enabled {
		return &Cache{}
	}
	addr := strings.TrimSpace(opts.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := opts.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.TrimSpace(opts.Prefix)
	if prefix == "" {
		prefix = "catalog"
	}
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", addr, port),
			Password: opts.Password,
			DB:       opts.DB,
		}),
		prefix: prefix,
	}
}

// Enabled 判断缓存是否启用
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Client 获取底层 Redis 客户端（限流等中间件使用）
func (c *Cache) Client() *redis.Client {
	if !c.Enabled() {
		return nil
	}
	return c.client
}

// GetJSON 读取 JSON 缓存，返回是否命中
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	val, err := c.client.Get(ctx, c.buildKey(key)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.buildKey(key), payload, ttl).Err()
}

// Del 删除缓存
func (c *Cache) Del(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Del(ctx, c.buildKey(key)).Err()
}

func (c *Cache) buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return c.prefix
	}
	return fmt.Sprintf("%s:%s", c.prefix, trimmed)
}
