package models

import "time"

// Tag 标签表
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"-"`                                    // 主键
	PublicID  string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"public_id"` // 对外标识
	Name      string    `gorm:"not null" json:"name"`                                   // 标签名称
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`                       // 唯一标识
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`                    // 是否启用
	CreatedAt time.Time `json:"created_at"`                                             // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                             // 更新时间
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
