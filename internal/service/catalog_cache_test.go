package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/catalog-next/internal/models"
	"github.com/catalog-next/internal/repository"
	"github.com/shopspring/decimal"
)

type fakeCacheStore struct {
	data     map[string][]byte
	getErr   error
	setErr   error
	getCalls int
	setCalls int
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{data: map[string][]byte{}}
}

func (f *fakeCacheStore) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	f.getCalls++
	if f.getErr != nil {
		return false, f.getErr
	}
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCacheStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

type fakeCatalogSource struct {
	repository.CatalogRepository

	listCalls   int
	searchCalls int
	detailCalls int
	products    []models.Product
	detail      *models.Product
}

func (f *fakeCatalogSource) List(filter repository.CatalogListFilter) ([]models.Product, int64, error) {
	f.listCalls++
	return f.products, int64(len(f.products)), nil
}

func (f *fakeCatalogSource) Summary() (repository.ProductSummary, error) {
	return repository.ProductSummary{Total: int64(len(f.products))}, nil
}

func (f *fakeCatalogSource) StatsByProductIDs(ids []uint) (map[uint]repository.VariantStats, error) {
	return map[uint]repository.VariantStats{}, nil
}

func (f *fakeCatalogSource) Search(pattern string, page, pageSize int) ([]repository.ProductWithStats, int64, error) {
	f.searchCalls++
	rows := make([]repository.ProductWithStats, 0, len(f.products))
	for i := range f.products {
		rows = append(rows, repository.ProductWithStats{Product: f.products[i]})
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeCatalogSource) GetDetailBySlug(slug string) (*models.Product, error) {
	f.detailCalls++
	return f.detail, nil
}

type fakeAttributeRepo struct{}

func (fakeAttributeRepo) ListActiveByIDs(ids []uint) ([]models.Attribute, error) {
	return []models.Attribute{}, nil
}

func newCachedCatalogForTest(source *fakeCatalogSource, store *fakeCacheStore) *CachedCatalog {
	categoryRepo := &fakeCategoryRepo{}
	tree := NewCategoryTreeResolver(categoryRepo, 0)
	svc := NewCatalogService(source, categoryRepo, fakeAttributeRepo{}, tree, 0)
	return NewCachedCatalog(svc, store, CacheTTL{}, nil)
}

func sampleProduct(id uint, slug string) models.Product {
	return models.Product{
		ID:        id,
		PublicID:  models.NewPublicID(),
		Name:      "测试商品",
		Slug:      slug,
		Rating:    decimal.NewFromFloat(4.5),
		TotalSold: 10,
	}
}

func TestCachedListMissComputesAndStores(t *testing.T) {
	source := &fakeCatalogSource{products: []models.Product{sampleProduct(1, "p-1")}}
	store := newFakeCacheStore()
	catalog := newCachedCatalogForTest(source, store)

	result, err := catalog.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if source.listCalls != 1 {
		t.Fatalf("service should compute on miss, calls=%d", source.listCalls)
	}
	if result.Total != 1 || len(result.Items) != 1 {
		t.Fatalf("unexpected result: total=%d items=%d", result.Total, len(result.Items))
	}
	raw, ok := store.data["products:p1:s10"]
	if !ok {
		t.Fatalf("miss should populate cache, keys=%v", store.data)
	}
	var entry map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entry); err != nil {
		t.Fatalf("decode cache entry failed: %v", err)
	}
	if _, ok := entry["data"]; !ok {
		t.Fatalf("cache entry should carry data field, got %s", raw)
	}
	if _, ok := entry["total"]; !ok {
		t.Fatalf("cache entry should carry total field, got %s", raw)
	}
}

func TestCachedListHitSkipsService(t *testing.T) {
	source := &fakeCatalogSource{}
	store := newFakeCacheStore()
	cached := ProductListResult{Total: 42, Items: []ProductSummaryView{}}
	raw, _ := json.Marshal(cached)
	store.data["products:p2:s20"] = raw
	catalog := newCachedCatalogForTest(source, store)

	result, err := catalog.List(context.Background(), 2, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if source.listCalls != 0 {
		t.Fatalf("hit should skip service, calls=%d", source.listCalls)
	}
	if result.Total != 42 {
		t.Fatalf("want cached total 42 got %d", result.Total)
	}
}

func TestCachedListReadErrorFallsThrough(t *testing.T) {
	source := &fakeCatalogSource{products: []models.Product{sampleProduct(2, "p-2")}}
	store := newFakeCacheStore()
	store.getErr = errors.New("redis: connection refused")
	catalog := newCachedCatalogForTest(source, store)

	result, err := catalog.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("read error must not fail the request: %v", err)
	}
	if source.listCalls != 1 {
		t.Fatalf("read error should behave as miss, calls=%d", source.listCalls)
	}
	if result.Total != 1 {
		t.Fatalf("want total 1 got %d", result.Total)
	}
}

func TestCachedListWriteErrorIgnored(t *testing.T) {
	source := &fakeCatalogSource{products: []models.Product{sampleProduct(3, "p-3")}}
	store := newFakeCacheStore()
	store.setErr = errors.New("redis: connection refused")
	catalog := newCachedCatalogForTest(source, store)

	if _, err := catalog.List(context.Background(), 1, 10); err != nil {
		t.Fatalf("write error must not fail the request: %v", err)
	}
	if store.setCalls != 1 {
		t.Fatalf("write should be attempted, calls=%d", store.setCalls)
	}
}

func TestCachedSearchEmptyQuerySkipsCache(t *testing.T) {
	source := &fakeCatalogSource{}
	store := newFakeCacheStore()
	catalog := newCachedCatalogForTest(source, store)

	if _, err := catalog.Search(context.Background(), "   ", 1, 10); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation got %v", err)
	}
	if store.getCalls != 0 || source.searchCalls != 0 {
		t.Fatalf("blank query must not reach cache or service")
	}
}

func TestCachedDetailNotFoundNotCached(t *testing.T) {
	source := &fakeCatalogSource{detail: nil}
	store := newFakeCacheStore()
	catalog := newCachedCatalogForTest(source, store)

	if _, err := catalog.GetDetail(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
	if store.setCalls != 0 {
		t.Fatalf("not-found must not be cached, setCalls=%d", store.setCalls)
	}
}

func TestCachedDetailRoundTripPreservesPrices(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	detail := &models.Product{
		PublicID:    models.NewPublicID(),
		Name:        "缓存往返商品",
		Slug:        "cache-roundtrip",
		Status:      "published",
		StockStatus: "in_stock",
		Rating:      decimal.NewFromFloat(4.7),
		Variants: []models.ProductVariant{
			{
				PublicID:        models.NewPublicID(),
				SKU:             "RT-1",
				RegularPrice:    models.NewMoneyFromDecimal(decimal.RequireFromString("99.90")),
				DiscountPrice:   models.MoneyPtr(decimal.RequireFromString("79.90")),
				DiscountStartAt: &start,
				DiscountEndAt:   &end,
				StockStatus:     "in_stock",
			},
		},
	}
	source := &fakeCatalogSource{detail: detail}
	store := newFakeCacheStore()
	catalog := newCachedCatalogForTest(source, store)

	first, err := catalog.GetDetail(context.Background(), "cache-roundtrip")
	if err != nil {
		t.Fatalf("first detail failed: %v", err)
	}
	second, err := catalog.GetDetail(context.Background(), "cache-roundtrip")
	if err != nil {
		t.Fatalf("second detail failed: %v", err)
	}
	if source.detailCalls != 1 {
		t.Fatalf("second call should come from cache, calls=%d", source.detailCalls)
	}

	// 金额、折扣与评分必须在 JSON 往返后保持一致
	if !second.Variants[0].RegularPrice.Equal(first.Variants[0].RegularPrice.Decimal) {
		t.Fatalf("regular price drifted: %s vs %s", first.Variants[0].RegularPrice, second.Variants[0].RegularPrice)
	}
	if second.Variants[0].DiscountPercentage == nil || *second.Variants[0].DiscountPercentage != *first.Variants[0].DiscountPercentage {
		t.Fatalf("discount percentage drifted")
	}
	if !second.Rating.Equal(first.Rating) {
		t.Fatalf("rating drifted: %s vs %s", first.Rating, second.Rating)
	}
}

func TestSearchDigestNormalization(t *testing.T) {
	if searchDigest("  iPhone 15 ") != searchDigest("iphone 15") {
		t.Fatalf("digest should ignore case and surrounding spaces")
	}
	if searchDigest("iphone") == searchDigest("ipad") {
		t.Fatalf("distinct terms should produce distinct digests")
	}
	if len(searchDigest("anything")) != 8 {
		t.Fatalf("digest should be 8 hex chars, got %q", searchDigest("anything"))
	}
}

func TestCacheKeyFormats(t *testing.T) {
	if got := listingKey(3, 20); got != "products:p3:s20" {
		t.Fatalf("listing key: %s", got)
	}
	if got := detailKey("wireless-earbuds"); got != "detail:wireless-earbuds" {
		t.Fatalf("detail key: %s", got)
	}
	if got := categoryKey("audio"); got != "category:audio" {
		t.Fatalf("category key: %s", got)
	}
	if got := categoryTopKey("audio"); got != "category-top:audio" {
		t.Fatalf("category top key: %s", got)
	}
	if got := categoryProductsKey("audio", 2, 10); got != "category-products:audio:p2:s10" {
		t.Fatalf("category products key: %s", got)
	}
}

func TestCacheTTLDefaults(t *testing.T) {
	ttl := CacheTTL{Listing: time.Minute}.withDefaults()
	if ttl.Listing != time.Minute {
		t.Fatalf("explicit ttl should be kept, got %v", ttl.Listing)
	}
	if ttl.Detail != time.Hour {
		t.Fatalf("zero ttl should fall back to default, got %v", ttl.Detail)
	}
}
