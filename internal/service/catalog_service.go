package service

import (
	"strings"
	"time"

	"github.com/catalog-next/internal/models"
	"github.com/catalog-next/internal/repository"
)

const defaultTopLimit = 5

// ProductListResult 商品列表结果（含状态汇总，汇总不受分页影响）
type ProductListResult struct {
	Items   []ProductSummaryView      `json:"data"`
	Summary repository.ProductSummary `json:"summary"`
	Total   int64                     `json:"total"`
}

// ProductPageResult 分页商品结果
type ProductPageResult struct {
	Items []ProductSummaryView `json:"data"`
	Total int64                `json:"total"`
}

// CatalogService 商品目录业务层
type CatalogService struct {
	catalogRepo   repository.CatalogRepository
	categoryRepo  repository.CategoryRepository
	attributeRepo repository.AttributeRepository
	tree          *CategoryTreeResolver
	topLimit      int
	now           func() time.Time
}

// NewCatalogService 创建目录服务，topLimit <= 0 时取默认值
func NewCatalogService(
	catalogRepo repository.CatalogRepository,
	categoryRepo repository.CategoryRepository,
	attributeRepo repository.AttributeRepository,
	tree *CategoryTreeResolver,
	topLimit int,
) *CatalogService {
	if topLimit <= 0 {
		topLimit = defaultTopLimit
	}
	return &CatalogService{
		catalogRepo:   catalogRepo,
		categoryRepo:  categoryRepo,
		attributeRepo: attributeRepo,
		tree:          tree,
		topLimit:      topLimit,
		now:           time.Now,
	}
}

// List 启用商品列表与状态汇总
func (s *CatalogService) List(page, pageSize int) (*ProductListResult, error) {
	products, total, err := s.catalogRepo.List(repository.CatalogListFilter{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
	}
	stats, err := s.catalogRepo.StatsByProductIDs(ids)
	if err != nil {
		return nil, err
	}

	summary, err := s.catalogRepo.Summary()
	if err != nil {
		return nil, err
	}

	items := make([]ProductSummaryView, 0, len(products))
	for i := range products {
		var row *repository.VariantStats
		if st, ok := stats[products[i].ID]; ok {
			row = &st
		}
		items = append(items, NewProductSummaryView(products[i], row))
	}

	return &ProductListResult{Items: items, Summary: summary, Total: total}, nil
}

// Search 已发布商品全文检索，检索词为空返回参数错误
func (s *CatalogService) Search(query string, page, pageSize int) (*ProductPageResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrValidation
	}

	rows, total, err := s.catalogRepo.Search(query, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ProductPageResult{Items: summaryViews(rows), Total: total}, nil
}

// GetDetail 根据 slug 获取已发布商品详情
func (s *CatalogService) GetDetail(slug string) (*ProductDetailView, error) {
	product, err := s.catalogRepo.GetDetailBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	attributes, err := s.attributeRepo.ListActiveByIDs(usedAttributeIDs(product.Variants))
	if err != nil {
		return nil, err
	}
	return NewProductDetailView(product, attributes, s.now()), nil
}

// GetCategory 根据 slug 获取启用分类
func (s *CatalogService) GetCategory(slug string) (*CategoryView, error) {
	category, err := s.activeCategory(slug)
	if err != nil {
		return nil, err
	}

	return &CategoryView{
		Name:   category.Name,
		Image:  newMediaView(category.Image),
		Banner: newMediaView(category.Banner),
	}, nil
}

// ListByCategory 分类及其启用后代下的已发布商品
func (s *CatalogService) ListByCategory(slug string, page, pageSize int) (*ProductPageResult, error) {
	categoryIDs, err := s.categoryClosure(slug)
	if err != nil {
		return nil, err
	}

	rows, total, err := s.catalogRepo.ListByCategories(categoryIDs, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ProductPageResult{Items: summaryViews(rows), Total: total}, nil
}

// GetCategoryTopProducts 分类闭包内评分榜与销量榜
func (s *CatalogService) GetCategoryTopProducts(slug string) (*CategoryTopProducts, error) {
	categoryIDs, err := s.categoryClosure(slug)
	if err != nil {
		return nil, err
	}

	topRated, err := s.catalogRepo.TopRatedByCategories(categoryIDs, s.topLimit)
	if err != nil {
		return nil, err
	}
	topSold, err := s.catalogRepo.TopSoldByCategories(categoryIDs, s.topLimit)
	if err != nil {
		return nil, err
	}

	return &CategoryTopProducts{
		TopRated: summaryViews(topRated),
		TopSold:  summaryViews(topSold),
	}, nil
}

func (s *CatalogService) activeCategory(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetActiveBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// categoryClosure slug 对应分类及其全部启用后代的 ID 集合
func (s *CatalogService) categoryClosure(slug string) ([]uint, error) {
	category, err := s.activeCategory(slug)
	if err != nil {
		return nil, err
	}
	return s.tree.Descendants([]uint{category.ID})
}

func summaryViews(rows []repository.ProductWithStats) []ProductSummaryView {
	items := make([]ProductSummaryView, 0, len(rows))
	for _, row := range rows {
		items = append(items, NewProductSummaryView(row.Product, row.Stats))
	}
	return items
}

// usedAttributeIDs 商品变体实际引用的属性 ID 去重集合
func usedAttributeIDs(variants []models.ProductVariant) []uint {
	seen := make(map[uint]struct{})
	ids := make([]uint, 0)
	for i := range variants {
		for _, av := range variants[i].AttributeVariants {
			if _, ok := seen[av.AttributeID]; ok {
				continue
			}
			seen[av.AttributeID] = struct{}{}
			ids = append(ids, av.AttributeID)
		}
	}
	return ids
}
