package repository

import (
	"github.com/catalog-next/internal/models"

	"gorm.io/gorm"
)

// AttributeRepository 属性数据访问接口
type AttributeRepository interface {
	ListActiveByIDs(ids []uint) ([]models.Attribute, error)
}

// GormAttributeRepository GORM 实现
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewAttributeRepository 创建属性仓库
func NewAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// ListActiveByIDs 批量获取启用属性（含启用属性值），按名称排序
func (r *GormAttributeRepository) ListActiveByIDs(ids []uint) ([]models.Attribute, error) {
	if len(ids) == 0 {
		return []models.Attribute{}, nil
	}
	var attributes []models.Attribute
	err := r.db.
		Preload("Variants", "is_active = ?", true).
		Where("id IN ?", ids).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&attributes).Error
	if err != nil {
		return nil, err
	}
	return attributes, nil
}
