package repository

import (
	"fmt"
	"testing"

	"github.com/catalog-next/internal/constants"
	"github.com/catalog-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCatalogRepositoryTest(t *testing.T) (*GormCatalogRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Media{},
		&models.Category{},
		&models.Brand{},
		&models.Tag{},
		&models.Attribute{},
		&models.AttributeVariant{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCatalogRepository(db), db
}

func createCatalogProduct(t *testing.T, db *gorm.DB, slug, status, stockStatus string, categoryID uint) *models.Product {
	t.Helper()
	product := &models.Product{
		PublicID:       models.NewPublicID(),
		Name:           "商品 " + slug,
		Slug:           slug,
		ProductNo:      "NO-" + slug,
		Type:           constants.ProductTypeSimple,
		Status:         status,
		StockStatus:    stockStatus,
		ReturnPolicy:   constants.ReturnPolicy7Days,
		ExchangePolicy: constants.ExchangePolicy7Days,
		Rating:         decimal.NewFromInt(4),
		CategoryID:     categoryID,
		SellerID:       1,
		IsActive:       true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product %s failed: %v", slug, err)
	}
	return product
}

func createVariant(t *testing.T, db *gorm.DB, productID uint, sku string, regular string, discount *string, stock int, isActive bool) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		PublicID:     models.NewPublicID(),
		ProductID:    productID,
		SKU:          sku,
		RegularPrice: models.NewMoneyFromDecimal(decimal.RequireFromString(regular)),
		Stock:        &stock,
		StockStatus:  constants.StockStatusInStock,
		IsActive:     true,
	}
	if discount != nil {
		variant.DiscountPrice = models.MoneyPtr(decimal.RequireFromString(*discount))
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("create variant %s failed: %v", sku, err)
	}
	if !isActive {
		if err := db.Model(variant).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate variant %s failed: %v", sku, err)
		}
	}
	return variant
}

func strRef(s string) *string {
	return &s
}

func TestSummaryIndependentOfPagination(t *testing.T) {
	repo, db := setupCatalogRepositoryTest(t)
	createCatalogProduct(t, db, "sum-a", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	createCatalogProduct(t, db, "sum-b", constants.ProductStatusPublished, constants.StockStatusOutOfStock, 1)
	createCatalogProduct(t, db, "sum-c", constants.ProductStatusDraft, constants.StockStatusInStock, 1)
	inactive := createCatalogProduct(t, db, "sum-d", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	products, total, err := repo.List(CatalogListFilter{Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("page size 1 should return one row, got %d", len(products))
	}
	if total != 3 {
		t.Fatalf("inactive product must not count, total=%d", total)
	}

	summary, err := repo.Summary()
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Total != 3 {
		t.Fatalf("summary total want 3 got %d", summary.Total)
	}
	if summary.Published != 2 || summary.Draft != 1 {
		t.Fatalf("status buckets want published=2 draft=1 got %+v", summary)
	}
	if summary.InStock != 2 || summary.OutOfStock != 1 {
		t.Fatalf("stock buckets want in=2 out=1 got %+v", summary)
	}
}

func TestSearchMatchesTagNameOnly(t *testing.T) {
	repo, db := setupCatalogRepositoryTest(t)
	product := createCatalogProduct(t, db, "search-tagged", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	other := createCatalogProduct(t, db, "search-plain", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	_ = other

	tag := &models.Tag{PublicID: models.NewPublicID(), Name: "Wireless", Slug: "wireless", IsActive: true}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	if err := db.Table("product_tags").Create(map[string]interface{}{
		"product_id": product.ID,
		"tag_id":     tag.ID,
	}).Error; err != nil {
		t.Fatalf("link tag failed: %v", err)
	}

	// 检索词只出现在标签名里，大小写不敏感
	rows, total, err := repo.Search("wIrElEsS", 1, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("want single tag match got total=%d rows=%d", total, len(rows))
	}
	if rows[0].Product.Slug != "search-tagged" {
		t.Fatalf("wrong product matched: %s", rows[0].Product.Slug)
	}
}

func TestSearchExcludesUnpublished(t *testing.T) {
	repo, db := setupCatalogRepositoryTest(t)
	createCatalogProduct(t, db, "vis-published", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	createCatalogProduct(t, db, "vis-draft", constants.ProductStatusDraft, constants.StockStatusInStock, 1)
	hidden := createCatalogProduct(t, db, "vis-hidden", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	if err := db.Model(hidden).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	rows, total, err := repo.Search("vis-", 1, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Product.Slug != "vis-published" {
		t.Fatalf("only published active products should match, got total=%d rows=%v", total, rows)
	}
}

func TestStatsExcludesInactiveVariants(t *testing.T) {
	repo, db := setupCatalogRepositoryTest(t)
	product := createCatalogProduct(t, db, "stats-active", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	createVariant(t, db, product.ID, "SA-1", "100", strRef("80"), 5, true)
	createVariant(t, db, product.ID, "SA-2", "10", strRef("1"), 5, false)

	stats, err := repo.StatsByProductIDs([]uint{product.ID})
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	row, ok := stats[product.ID]
	if !ok {
		t.Fatalf("missing stats row")
	}
	if !row.RegularPriceMin.Valid || !row.RegularPriceMin.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("inactive variant leaked into stats: %+v", row)
	}
	if !row.MaxDiscountPercentage.Valid || row.MaxDiscountPercentage.Decimal.IntPart() != 20 {
		t.Fatalf("max discount pct want 20 got %+v", row.MaxDiscountPercentage)
	}
}

func TestStatsWithoutDiscountsYieldsNullColumns(t *testing.T) {
	repo, db := setupCatalogRepositoryTest(t)
	product := createCatalogProduct(t, db, "stats-plain", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	createVariant(t, db, product.ID, "SP-1", "60", nil, 5, true)
	createVariant(t, db, product.ID, "SP-2", "90", nil, 5, true)

	stats, err := repo.StatsByProductIDs([]uint{product.ID})
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	row := stats[product.ID]
	if !row.RegularPriceMin.Decimal.Equal(decimal.NewFromInt(60)) || !row.RegularPriceMax.Decimal.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("regular range wrong: %+v", row)
	}
	if row.DiscountPriceMin.Valid || row.DiscountPriceMax.Valid || row.MaxDiscountPercentage.Valid {
		t.Fatalf("discount columns should stay null: %+v", row)
	}
}

func TestStatsZeroRegularPriceExcludedFromPercentage(t *testing.T) {
	repo, db := setupCatalogRepositoryTest(t)
	product := createCatalogProduct(t, db, "stats-zero", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	createVariant(t, db, product.ID, "SZ-1", "0", strRef("1"), 5, true)
	createVariant(t, db, product.ID, "SZ-2", "100", strRef("75"), 5, true)

	stats, err := repo.StatsByProductIDs([]uint{product.ID})
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	row := stats[product.ID]
	if !row.MaxDiscountPercentage.Valid || row.MaxDiscountPercentage.Decimal.IntPart() != 25 {
		t.Fatalf("zero regular must not distort percentage: %+v", row.MaxDiscountPercentage)
	}
}

func TestStatsEmptyInput(t *testing.T) {
	repo, _ := setupCatalogRepositoryTest(t)
	stats, err := repo.StatsByProductIDs(nil)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("empty input should yield empty map, got %v", stats)
	}
}

func TestListByCategoriesFiltersAndEmptyInput(t *testing.T) {
	repo, db := setupCatalogRepositoryTest(t)
	createCatalogProduct(t, db, "cat-audio", constants.ProductStatusPublished, constants.StockStatusInStock, 10)
	createCatalogProduct(t, db, "cat-wear", constants.ProductStatusPublished, constants.StockStatusInStock, 20)

	rows, total, err := repo.ListByCategories([]uint{10}, 1, 10)
	if err != nil {
		t.Fatalf("list by categories failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Product.Slug != "cat-audio" {
		t.Fatalf("category filter wrong: total=%d rows=%v", total, rows)
	}

	rows, total, err = repo.ListByCategories(nil, 1, 10)
	if err != nil {
		t.Fatalf("empty ids failed: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("empty ids should short-circuit, got total=%d", total)
	}
}

func TestTopByCategoriesOrderingAndLimit(t *testing.T) {
	repo, db := setupCatalogRepositoryTest(t)
	low := createCatalogProduct(t, db, "top-low", constants.ProductStatusPublished, constants.StockStatusInStock, 5)
	high := createCatalogProduct(t, db, "top-high", constants.ProductStatusPublished, constants.StockStatusInStock, 5)
	mid := createCatalogProduct(t, db, "top-mid", constants.ProductStatusPublished, constants.StockStatusInStock, 5)
	if err := db.Model(low).Updates(map[string]interface{}{"rating": "3.1", "total_sold": 500}).Error; err != nil {
		t.Fatalf("update low failed: %v", err)
	}
	if err := db.Model(high).Updates(map[string]interface{}{"rating": "4.9", "total_sold": 10}).Error; err != nil {
		t.Fatalf("update high failed: %v", err)
	}
	if err := db.Model(mid).Updates(map[string]interface{}{"rating": "4.0", "total_sold": 100}).Error; err != nil {
		t.Fatalf("update mid failed: %v", err)
	}

	rated, err := repo.TopRatedByCategories([]uint{5}, 2)
	if err != nil {
		t.Fatalf("top rated failed: %v", err)
	}
	if len(rated) != 2 || rated[0].Product.Slug != "top-high" || rated[1].Product.Slug != "top-mid" {
		t.Fatalf("top rated order wrong: %v", rated)
	}

	sold, err := repo.TopSoldByCategories([]uint{5}, 2)
	if err != nil {
		t.Fatalf("top sold failed: %v", err)
	}
	if len(sold) != 2 || sold[0].Product.Slug != "top-low" || sold[1].Product.Slug != "top-mid" {
		t.Fatalf("top sold order wrong: %v", sold)
	}
}

func TestGetDetailBySlugVisibility(t *testing.T) {
	repo, db := setupCatalogRepositoryTest(t)
	product := createCatalogProduct(t, db, "detail-ok", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	createVariant(t, db, product.ID, "D-1", "100", strRef("80"), 5, true)
	createVariant(t, db, product.ID, "D-2", "50", nil, 5, false)
	createCatalogProduct(t, db, "detail-draft", constants.ProductStatusDraft, constants.StockStatusInStock, 1)

	got, err := repo.GetDetailBySlug("detail-ok")
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if got == nil {
		t.Fatalf("published product should be found")
	}
	if len(got.Variants) != 1 || got.Variants[0].SKU != "D-1" {
		t.Fatalf("inactive variant should not preload: %v", got.Variants)
	}

	if got, err := repo.GetDetailBySlug("detail-draft"); err != nil || got != nil {
		t.Fatalf("draft product should be invisible, got=%v err=%v", got, err)
	}
	if got, err := repo.GetDetailBySlug("detail-missing"); err != nil || got != nil {
		t.Fatalf("missing slug should return nil without error, got=%v err=%v", got, err)
	}
}

func TestRollupStockStatusTransitions(t *testing.T) {
	repo, db := setupCatalogRepositoryTest(t)
	drained := createCatalogProduct(t, db, "rollup-drained", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	createVariant(t, db, drained.ID, "RD-1", "10", nil, 0, true)

	restocked := createCatalogProduct(t, db, "rollup-restocked", constants.ProductStatusPublished, constants.StockStatusOutOfStock, 1)
	createVariant(t, db, restocked.ID, "RR-1", "10", nil, 7, true)

	// 只有非启用变体有库存的商品视同无货
	ghost := createCatalogProduct(t, db, "rollup-ghost", constants.ProductStatusPublished, constants.StockStatusInStock, 1)
	createVariant(t, db, ghost.ID, "RG-1", "10", nil, 9, false)

	affected, err := repo.RollupStockStatus()
	if err != nil {
		t.Fatalf("rollup failed: %v", err)
	}
	if affected != 3 {
		t.Fatalf("affected want 3 got %d", affected)
	}

	assertStockStatus := func(id uint, want string) {
		t.Helper()
		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			t.Fatalf("reload product failed: %v", err)
		}
		if product.StockStatus != want {
			t.Fatalf("product %d stock status want %s got %s", id, want, product.StockStatus)
		}
	}
	assertStockStatus(drained.ID, constants.StockStatusOutOfStock)
	assertStockStatus(restocked.ID, constants.StockStatusInStock)
	assertStockStatus(ghost.ID, constants.StockStatusOutOfStock)

	// 幂等：再次回填无变化
	affected, err = repo.RollupStockStatus()
	if err != nil {
		t.Fatalf("second rollup failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("second rollup should be a no-op, affected=%d", affected)
	}
}
