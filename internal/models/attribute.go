package models

import "time"

// Attribute 属性表（如颜色、尺码）
type Attribute struct {
	ID        uint      `gorm:"primarykey" json:"-"`                                    // 主键
	PublicID  string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"public_id"` // 对外标识
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`                       // 属性名称
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`                       // 唯一标识
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`                    // 是否启用
	CreatedAt time.Time `json:"created_at"`                                             // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                             // 更新时间

	// 关联
	Variants []AttributeVariant `gorm:"foreignKey:AttributeID" json:"variants,omitempty"` // 属性值列表
}

// TableName 指定表名
func (Attribute) TableName() string {
	return "attributes"
}

// AttributeVariant 属性值表（如红色、XL）
type AttributeVariant struct {
	ID          uint      `gorm:"primarykey" json:"-"`                                    // 主键
	PublicID    string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"public_id"` // 对外标识
	Name        string    `gorm:"not null" json:"name"`                                   // 属性值名称
	AttributeID uint      `gorm:"not null;index" json:"-"`                                // 所属属性ID
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`                    // 是否启用
	CreatedAt   time.Time `json:"created_at"`                                             // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                             // 更新时间

	Attribute *Attribute `gorm:"foreignKey:AttributeID" json:"attribute,omitempty"` // 所属属性
}

// TableName 指定表名
func (AttributeVariant) TableName() string {
	return "attribute_variants"
}
