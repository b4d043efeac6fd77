package models

import "time"

// ProductVariant 商品变体表（价格与库存维度）
type ProductVariant struct {
	ID                uint       `gorm:"primarykey" json:"-"`                                              // 主键
	PublicID          string     `gorm:"type:varchar(16);uniqueIndex;not null" json:"public_id"`           // 对外标识
	ProductID         uint       `gorm:"not null;index" json:"-"`                                          // 商品ID
	SKU               string     `gorm:"type:varchar(64)" json:"sku"`                                      // SKU 编码
	RegularPrice      Money      `gorm:"type:decimal(10,2);not null" json:"regular_price"`                 // 原价
	DiscountPrice     *Money     `gorm:"type:decimal(10,2)" json:"discount_price"`                         // 折扣价（可空）
	DiscountStartAt   *time.Time `json:"discount_start_at"`                                                // 折扣开始时间
	DiscountEndAt     *time.Time `json:"discount_end_at"`                                                  // 折扣结束时间
	Stock             *int       `json:"stock"`                                                            // 库存数量
	LowStockThreshold *int       `json:"low_stock_threshold"`                                              // 低库存阈值
	StockStatus       string     `gorm:"type:varchar(20);not null;default:'in_stock'" json:"stock_status"` // 库存状态
	IsActive          bool       `gorm:"default:true;index" json:"is_active"`                              // 是否启用
	CreatedAt         time.Time  `json:"created_at"`                                                       // 创建时间
	UpdatedAt         time.Time  `json:"updated_at"`                                                       // 更新时间

	// 关联
	AttributeVariants []AttributeVariant `gorm:"many2many:product_variant_attribute_variants" json:"attribute_variants,omitempty"` // 规格值
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}
