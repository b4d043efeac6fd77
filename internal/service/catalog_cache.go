package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// cacheStore 缓存读写窄接口，便于测试替身
type cacheStore interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CacheTTL 各读路径的缓存生存期
type CacheTTL struct {
	Listing     time.Duration
	Search      time.Duration
	Detail      time.Duration
	Category    time.Duration
	CategoryTop time.Duration
}

// DefaultCacheTTL 默认生存期
func DefaultCacheTTL() CacheTTL {
	return CacheTTL{
		Listing:     5 * time.Minute,
		Search:      10 * time.Minute,
		Detail:      time.Hour,
		Category:    30 * time.Minute,
		CategoryTop: 30 * time.Minute,
	}
}

func (t CacheTTL) withDefaults() CacheTTL {
	defaults := DefaultCacheTTL()
	if t.Listing <= 0 {
		t.Listing = defaults.Listing
	}
	if t.Search <= 0 {
		t.Search = defaults.Search
	}
	if t.Detail <= 0 {
		t.Detail = defaults.Detail
	}
	if t.Category <= 0 {
		t.Category = defaults.Category
	}
	if t.CategoryTop <= 0 {
		t.CategoryTop = defaults.CategoryTop
	}
	return t
}

// CachedCatalog 目录读路径的 cache-aside 编排：读失败视为未命中，
// 写失败仅记录日志，均不影响响应。
type CachedCatalog struct {
	service *CatalogService
	store   cacheStore
	ttl     CacheTTL
	logger  *zap.Logger
}

// NewCachedCatalog 创建缓存编排器
func NewCachedCatalog(service *CatalogService, store cacheStore, ttl CacheTTL, logger *zap.Logger) *CachedCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedCatalog{
		service: service,
		store:   store,
		ttl:     ttl.withDefaults(),
		logger:  logger,
	}
}

// listingKey 列表缓存键
func listingKey(page, pageSize int) string {
	return fmt.Sprintf("products:p%d:s%d", page, pageSize)
}

// searchKey 检索缓存键，检索词归一化后取 sha1 前 8 位十六进制
func searchKey(query string, page, pageSize int) string {
	return fmt.Sprintf("search:%s:p%d:s%d", searchDigest(query), page, pageSize)
}

func searchDigest(query string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(query))))
	return hex.EncodeToString(sum[:])[:8]
}

func detailKey(slug string) string {
	return "detail:" + slug
}

func categoryKey(slug string) string {
	return "category:" + slug
}

func categoryTopKey(slug string) string {
	return "category-top:" + slug
}

func categoryProductsKey(slug string, page, pageSize int) string {
	return fmt.Sprintf("category-products:%s:p%d:s%d", slug, page, pageSize)
}

// List 商品列表（经缓存）
func (c *CachedCatalog) List(ctx context.Context, page, pageSize int) (*ProductListResult, error) {
	key := listingKey(page, pageSize)

	var cached ProductListResult
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := c.service.List(page, pageSize)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, result, c.ttl.Listing)
	return result, nil
}

// Search 商品检索（经缓存）
func (c *CachedCatalog) Search(ctx context.Context, query string, page, pageSize int) (*ProductPageResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrValidation
	}
	key := searchKey(query, page, pageSize)

	var cached ProductPageResult
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := c.service.Search(query, page, pageSize)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, result, c.ttl.Search)
	return result, nil
}

// GetDetail 商品详情（经缓存）
func (c *CachedCatalog) GetDetail(ctx context.Context, slug string) (*ProductDetailView, error) {
	key := detailKey(slug)

	var cached ProductDetailView
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := c.service.GetDetail(slug)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, result, c.ttl.Detail)
	return result, nil
}

// GetCategory 分类详情（经缓存）
func (c *CachedCatalog) GetCategory(ctx context.Context, slug string) (*CategoryView, error) {
	key := categoryKey(slug)

	var cached CategoryView
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := c.service.GetCategory(slug)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, result, c.ttl.Category)
	return result, nil
}

// ListByCategory 分类商品列表（经缓存）
func (c *CachedCatalog) ListByCategory(ctx context.Context, slug string, page, pageSize int) (*ProductPageResult, error) {
	key := categoryProductsKey(slug, page, pageSize)

	var cached ProductPageResult
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := c.service.ListByCategory(slug, page, pageSize)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, result, c.ttl.Category)
	return result, nil
}

// GetCategoryTopProducts 分类榜单（经缓存）
func (c *CachedCatalog) GetCategoryTopProducts(ctx context.Context, slug string) (*CategoryTopProducts, error) {
	key := categoryTopKey(slug)

	var cached CategoryTopProducts
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := c.service.GetCategoryTopProducts(slug)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, result, c.ttl.CategoryTop)
	return result, nil
}

// lookup 读缓存，出错记录日志并按未命中处理
func (c *CachedCatalog) lookup(ctx context.Context, key string, dest interface{}) bool {
	hit, err := c.store.GetJSON(ctx, key, dest)
	if err != nil {
		c.logger.Warn("缓存读取失败", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

// save 写缓存，出错仅记录日志
func (c *CachedCatalog) save(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := c.store.SetJSON(ctx, key, value, ttl); err != nil {
		c.logger.Warn("缓存写入失败", zap.String("key", key), zap.Error(err))
	}
}
