package models

import "time"

// Category 分类表（parent_id 自引用构成树）
type Category struct {
	ID        uint      `gorm:"primarykey" json:"-"`                                    // 主键
	PublicID  string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"public_id"` // 对外标识
	Name      string    `gorm:"not null" json:"name"`                                   // 分类名称
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`                       // 唯一标识
	ParentID  *uint     `gorm:"index" json:"-"`                                         // 父分类ID（根为空）
	ImageID   uint      `gorm:"not null" json:"-"`                                      // 分类图ID
	BannerID  uint      `gorm:"not null" json:"-"`                                      // 横幅图ID
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`                    // 是否启用
	CreatedAt time.Time `json:"created_at"`                                             // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                             // 更新时间

	// 关联
	Image  Media `gorm:"foreignKey:ImageID" json:"image,omitempty"`   // 分类图
	Banner Media `gorm:"foreignKey:BannerID" json:"banner,omitempty"` // 横幅图
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
