package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品表
type Product struct {
	ID               uint            `gorm:"primarykey" json:"-"`                                              // 主键（不对外暴露）
	PublicID         string          `gorm:"type:varchar(16);uniqueIndex;not null" json:"public_id"`           // 对外标识
	Name             string          `gorm:"not null" json:"name"`                                             // 商品名称
	Slug             string          `gorm:"uniqueIndex;not null" json:"slug"`                                 // 唯一标识
	ProductNo        string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"product_no"`          // 商品编号
	Description      string          `gorm:"type:text" json:"description"`                                     // 详情描述
	ShortDescription string          `gorm:"type:text" json:"short_description"`                               // 摘要描述
	Type             string          `gorm:"type:varchar(20);not null;default:'simple'" json:"type"`           // 商品类型（simple/variable）
	Status           string          `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`    // 生命周期状态
	StockStatus      string          `gorm:"type:varchar(20);not null;default:'in_stock'" json:"stock_status"` // 库存状态
	ReturnPolicy     string          `gorm:"type:varchar(20);not null" json:"return_policy"`                   // 退货政策
	ExchangePolicy   string          `gorm:"type:varchar(20);not null" json:"exchange_policy"`                 // 换货政策
	DeliveryTime     *int            `json:"delivery_time"`                                                    // 发货时间（天）
	Rating           decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`               // 平均评分（1-5）
	TotalSold        int             `gorm:"not null;default:0" json:"total_sold"`                             // 累计销量
	IsActive         bool            `gorm:"default:true;index" json:"is_active"`                              // 是否启用
	BrandID          *uint           `gorm:"index" json:"-"`                                                   // 品牌ID（可空）
	CategoryID       uint            `gorm:"not null;index" json:"-"`                                          // 分类ID
	SellerID         uint            `gorm:"not null;index" json:"-"`                                          // 卖家ID
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`                                          // 创建时间
	UpdatedAt        time.Time       `gorm:"index" json:"updated_at"`                                          // 更新时间

	// 关联
	Brand    *Brand           `gorm:"foreignKey:BrandID" json:"brand,omitempty"`       // 品牌
	Category Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`  // 变体列表
	Images   []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`    // 图片（按优先级）
	Tags     []Tag            `gorm:"many2many:product_tags" json:"tags,omitempty"`    // 标签
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductImage 商品图片关联表（携带展示优先级）
type ProductImage struct {
	ID        uint `gorm:"primarykey" json:"-"`
	ProductID uint `gorm:"not null;index" json:"-"`
	MediaID   uint `gorm:"not null;index" json:"-"`
	Priority  int  `gorm:"not null;default:0;index" json:"priority"`
	IsActive  bool `gorm:"default:true" json:"is_active"`

	Media Media `gorm:"foreignKey:MediaID" json:"media"`
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}
