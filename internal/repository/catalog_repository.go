package repository

import (
	"errors"
	"strings"

	"github.com/catalog-next/internal/constants"
	"github.com/catalog-next/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository 商品目录读取接口
type CatalogRepository interface {
	List(filter CatalogListFilter) ([]models.Product, int64, error)
	Summary() (ProductSummary, error)
	Search(pattern string, page, pageSize int) ([]ProductWithStats, int64, error)
	ListByCategories(categoryIDs []uint, page, pageSize int) ([]ProductWithStats, int64, error)
	TopRatedByCategories(categoryIDs []uint, limit int) ([]ProductWithStats, error)
	TopSoldByCategories(categoryIDs []uint, limit int) ([]ProductWithStats, error)
	GetDetailBySlug(slug string) (*models.Product, error)
	StatsByProductIDs(ids []uint) (map[uint]VariantStats, error)
	RollupStockStatus() (int64, error)
}

// GormCatalogRepository GORM 实现
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建商品目录仓库
func NewCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// withActivePreloads 商品嵌套关联，全部仅保留启用行。
func withActivePreloads(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Category", "is_active = ?", true).
		Preload("Brand", "is_active = ?", true).
		Preload("Variants", "is_active = ?", true).
		Preload("Variants.AttributeVariants", "is_active = ?", true).
		Preload("Variants.AttributeVariants.Attribute", "is_active = ?", true).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("priority ASC")
		}).
		Preload("Images.Media", "is_active = ?", true).
		Preload("Tags", "is_active = ?", true)
}

// List 启用商品列表，按最近更新排序；汇总由 Summary 单独计算。
func (r *GormCatalogRepository) List(filter CatalogListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	query = withActivePreloads(query).Order("updated_at DESC")
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Summary 启用商品状态汇总，单行聚合，不受分页影响。
func (r *GormCatalogRepository) Summary() (ProductSummary, error) {
	var summary ProductSummary
	err := r.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Select(`COUNT(id) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS published,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS draft,
			COALESCE(SUM(CASE WHEN stock_status = ? THEN 1 ELSE 0 END), 0) AS in_stock,
			COALESCE(SUM(CASE WHEN stock_status = ? THEN 1 ELSE 0 END), 0) AS stock_out`,
			constants.ProductStatusPublished,
			constants.ProductStatusPending,
			constants.ProductStatusDraft,
			constants.StockStatusInStock,
			constants.StockStatusOutOfStock,
		).
		Scan(&summary).Error
	return summary, err
}

// publishedQuery 已发布且启用的商品基础查询
func (r *GormCatalogRepository) publishedQuery() *gorm.DB {
	return r.db.Model(&models.Product{}).
		Where("products.is_active = ?", true).
		Where("products.status = ?", constants.ProductStatusPublished)
}

// Search 全文检索：名称/slug/编号/品牌名/分类名/标签名的大小写不敏感子串匹配（OR 语义）。
func (r *GormCatalogRepository) Search(pattern string, page, pageSize int) ([]ProductWithStats, int64, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(pattern)) + "%"

	tagSub := r.db.Table("product_tags").
		Select("product_tags.product_id").
		Joins("JOIN tags ON tags.id = product_tags.tag_id").
		Where("tags.is_active = ?", true).
		Where("LOWER(tags.name) LIKE ?", like)

	query := r.publishedQuery().
		Joins("LEFT JOIN brands ON brands.id = products.brand_id AND brands.is_active = ?", true).
		Joins("LEFT JOIN categories ON categories.id = products.category_id AND categories.is_active = ?", true).
		Where(`LOWER(products.name) LIKE ?
			OR LOWER(products.slug) LIKE ?
			OR LOWER(products.product_no) LIKE ?
			OR LOWER(brands.name) LIKE ?
			OR LOWER(categories.name) LIKE ?
			OR products.id IN (?)`,
			like, like, like, like, like, tagSub)

	return r.listWithStats(query, page, pageSize)
}

// ListByCategories 按分类闭包过滤的已发布商品列表
func (r *GormCatalogRepository) ListByCategories(categoryIDs []uint, page, pageSize int) ([]ProductWithStats, int64, error) {
	if len(categoryIDs) == 0 {
		return []ProductWithStats{}, 0, nil
	}
	query := r.publishedQuery().Where("products.category_id IN ?", categoryIDs)
	return r.listWithStats(query, page, pageSize)
}

// TopRatedByCategories 分类闭包内评分最高的商品
func (r *GormCatalogRepository) TopRatedByCategories(categoryIDs []uint, limit int) ([]ProductWithStats, error) {
	return r.topByCategories(categoryIDs, "rating DESC", limit)
}

// TopSoldByCategories 分类闭包内销量最高的商品
func (r *GormCatalogRepository) TopSoldByCategories(categoryIDs []uint, limit int) ([]ProductWithStats, error) {
	return r.topByCategories(categoryIDs, "total_sold DESC", limit)
}

func (r *GormCatalogRepository) topByCategories(categoryIDs []uint, order string, limit int) ([]ProductWithStats, error) {
	if len(categoryIDs) == 0 || limit <= 0 {
		return []ProductWithStats{}, nil
	}
	var products []models.Product
	query := r.publishedQuery().
		Where("products.category_id IN ?", categoryIDs).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("priority ASC")
		}).
		Preload("Images.Media", "is_active = ?", true).
		Order(order).
		Limit(limit)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return r.attachStats(products)
}

// listWithStats 对过滤后的商品查询执行计数、分页并拼接变体聚合。
func (r *GormCatalogRepository) listWithStats(query *gorm.DB, page, pageSize int) ([]ProductWithStats, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Distinct("products.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	query = query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("priority ASC")
		}).
		Preload("Images.Media", "is_active = ?", true).
		Order("products.name ASC")
	query = applyPagination(query, page, pageSize)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}

	rows, err := r.attachStats(products)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormCatalogRepository) attachStats(products []models.Product) ([]ProductWithStats, error) {
	ids := make([]uint, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
	}
	stats, err := r.StatsByProductIDs(ids)
	if err != nil {
		return nil, err
	}

	rows := make([]ProductWithStats, 0, len(products))
	for i := range products {
		row := ProductWithStats{Product: products[i]}
		if s, ok := stats[products[i].ID]; ok {
			row.Stats = &s
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// StatsByProductIDs 变体价格聚合：按商品分组统计启用变体的最低/最高原价、
// 最低/最高折扣价与最大折扣百分比。原价为 0 的变体不参与百分比聚合。
func (r *GormCatalogRepository) StatsByProductIDs(ids []uint) (map[uint]VariantStats, error) {
	result := make(map[uint]VariantStats, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []VariantStats
	err := r.db.Model(&models.ProductVariant{}).
		Select(`product_id,
			MIN(regular_price) AS regular_price_min,
			MAX(regular_price) AS regular_price_max,
			MIN(discount_price) AS discount_price_min,
			MAX(discount_price) AS discount_price_max,
			MAX(CASE WHEN regular_price > 0 AND discount_price IS NOT NULL
				THEN (regular_price - discount_price) * 100.0 / regular_price
				ELSE NULL END) AS max_discount_percentage`).
		Where("is_active = ?", true).
		Where("product_id IN ?", ids).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ProductID] = row
	}
	return result, nil
}

// GetDetailBySlug 商品详情：已发布且启用，携带全部启用关联。
// 未找到时返回 nil 而非错误，由业务层判定 NotFound。
func (r *GormCatalogRepository) GetDetailBySlug(slug string) (*models.Product, error) {
	var product models.Product
	query := withActivePreloads(
		r.db.Where("slug = ?", slug).
			Where("is_active = ?", true).
			Where("status = ?", constants.ProductStatusPublished),
	)
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// RollupStockStatus 依据启用变体库存回填商品库存状态，返回受影响行数。
func (r *GormCatalogRepository) RollupStockStatus() (int64, error) {
	stocked := r.db.Model(&models.ProductVariant{}).
		Select("product_id").
		Where("is_active = ?", true).
		Where("stock > 0")

	inStock := r.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Where("stock_status <> ?", constants.StockStatusInStock).
		Where("id IN (?)", stocked).
		Update("stock_status", constants.StockStatusInStock)
	if inStock.Error != nil {
		return 0, inStock.Error
	}

	stockedAgain := r.db.Model(&models.ProductVariant{}).
		Select("product_id").
		Where("is_active = ?", true).
		Where("stock > 0")
	outOfStock := r.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Where("stock_status <> ?", constants.StockStatusOutOfStock).
		Where("id NOT IN (?)", stockedAgain).
		Update("stock_status", constants.StockStatusOutOfStock)
	if outOfStock.Error != nil {
		return 0, outOfStock.Error
	}

	return inStock.RowsAffected + outOfStock.RowsAffected, nil
}
