package repository

import (
	"errors"

	"github.com/catalog-next/internal/models"

	"gorm.io/gorm"
)

// CategoryPair 分类邻接对（id -> parent_id）
type CategoryPair struct {
	ID       uint  `gorm:"column:id"`
	ParentID *uint `gorm:"column:parent_id"`
}

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	ListActivePairs() ([]CategoryPair, error)
	GetActiveBySlug(slug string) (*models.Category, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// ListActivePairs 全量启用分类的邻接对，供后代闭包计算
func (r *GormCategoryRepository) ListActivePairs() ([]CategoryPair, error) {
	var pairs []CategoryPair
	err := r.db.Model(&models.Category{}).
		Select("id", "parent_id").
		Where("is_active = ?", true).
		Scan(&pairs).Error
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// GetActiveBySlug 根据 slug 获取启用分类（带图与横幅），未找到返回 nil
func (r *GormCategoryRepository) GetActiveBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.
		Preload("Image", "is_active = ?", true).
		Preload("Banner", "is_active = ?", true).
		Where("slug = ?", slug).
		Where("is_active = ?", true).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}
