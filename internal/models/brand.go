package models

import "time"

// Brand 品牌表
type Brand struct {
	ID          uint      `gorm:"primarykey" json:"-"`                                    // 主键
	PublicID    string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"public_id"` // 对外标识
	Name        string    `gorm:"not null" json:"name"`                                   // 品牌名称
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`                       // 唯一标识
	Description string    `gorm:"type:text" json:"description"`                           // 品牌描述
	ImageID     uint      `gorm:"not null" json:"-"`                                      // 品牌图ID
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`                    // 是否启用
	CreatedAt   time.Time `json:"created_at"`                                             // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                             // 更新时间

	Image Media `gorm:"foreignKey:ImageID" json:"image,omitempty"` // 品牌图
}

// TableName 指定表名
func (Brand) TableName() string {
	return "brands"
}
