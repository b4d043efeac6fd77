package repository

import (
	"github.com/shopspring/decimal"

	"github.com/catalog-next/internal/models"
)

// CatalogListFilter 查询商品列表的过滤条件
type CatalogListFilter struct {
	Page     int
	PageSize int
}

// ProductSummary 商品状态汇总（与分页无关，覆盖全部启用商品）
type ProductSummary struct {
	Total      int64 `gorm:"column:total" json:"total"`
	Published  int64 `gorm:"column:published" json:"published"`
	Pending    int64 `gorm:"column:pending" json:"pending"`
	Draft      int64 `gorm:"column:draft" json:"draft"`
	InStock    int64 `gorm:"column:in_stock" json:"in_stock"`
	OutOfStock int64 `gorm:"column:stock_out" json:"stock_out"`
}

// VariantStats 变体价格聚合行，按商品分组、仅统计启用变体。
// 所有字段均可能为空：没有任何变体的商品不会产生聚合行。
type VariantStats struct {
	ProductID             uint                `gorm:"column:product_id"`
	RegularPriceMin       decimal.NullDecimal `gorm:"column:regular_price_min"`
	RegularPriceMax       decimal.NullDecimal `gorm:"column:regular_price_max"`
	DiscountPriceMin      decimal.NullDecimal `gorm:"column:discount_price_min"`
	DiscountPriceMax      decimal.NullDecimal `gorm:"column:discount_price_max"`
	MaxDiscountPercentage decimal.NullDecimal `gorm:"column:max_discount_percentage"`
}

// ProductWithStats 商品与其变体价格聚合
type ProductWithStats struct {
	Product models.Product
	Stats   *VariantStats
}
