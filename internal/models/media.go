package models

import "time"

// Media 媒体表（对象存储引用）
type Media struct {
	ID         uint      `gorm:"primarykey" json:"-"`                                    // 主键
	PublicID   string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"public_id"` // 对外标识
	Name       string    `gorm:"not null" json:"name"`                                   // 文件名
	AltText    string    `gorm:"not null" json:"alt_text"`                               // 替代文本
	StorageKey string    `gorm:"not null" json:"url"`                                    // 对象存储 key
	IsActive   bool      `gorm:"default:true;index" json:"is_active"`                    // 是否启用
	CreatedAt  time.Time `json:"created_at"`                                             // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                             // 更新时间
}

// TableName 指定表名
func (Media) TableName() string {
	return "media"
}
