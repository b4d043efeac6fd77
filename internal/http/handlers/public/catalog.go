package public

import (
	"github.com/catalog-next/internal/http/handlers/shared"
	"github.com/catalog-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表（含状态汇总）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize, err := shared.ParsePagination(c)
	if err != nil {
		respondWithMappedError(c, err, "获取商品列表失败")
		return
	}

	result, err := h.Catalog.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, "获取商品列表失败")
		return
	}

	response.SuccessWithPage(c, gin.H{
		"products": result.Items,
		"summary":  result.Summary,
	}, response.NewPagination(page, pageSize, result.Total))
}

// SearchProducts 商品检索
func (h *Handler) SearchProducts(c *gin.Context) {
	page, pageSize, err := shared.ParsePagination(c)
	if err != nil {
		respondWithMappedError(c, err, "商品检索失败")
		return
	}
	query := c.Query("q")

	result, err := h.Catalog.Search(c.Request.Context(), query, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, "商品检索失败")
		return
	}

	response.SuccessWithPage(c, result.Items, response.NewPagination(page, pageSize, result.Total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	detail, err := h.Catalog.GetDetail(c.Request.Context(), slug)
	if err != nil {
		respondWithMappedError(c, err, "获取商品详情失败")
		return
	}
	response.Success(c, detail)
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	slug := c.Param("slug")

	category, err := h.Catalog.GetCategory(c.Request.Context(), slug)
	if err != nil {
		respondWithMappedError(c, err, "获取分类失败")
		return
	}
	response.Success(c, category)
}

// ListCategoryProducts 分类及其后代下的商品列表
func (h *Handler) ListCategoryProducts(c *gin.Context) {
	page, pageSize, err := shared.ParsePagination(c)
	if err != nil {
		respondWithMappedError(c, err, "获取分类商品失败")
		return
	}
	slug := c.Param("slug")

	result, err := h.Catalog.ListByCategory(c.Request.Context(), slug, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, "获取分类商品失败")
		return
	}

	response.SuccessWithPage(c, result.Items, response.NewPagination(page, pageSize, result.Total))
}

// GetCategoryTopProducts 分类榜单（评分榜 + 销量榜）
func (h *Handler) GetCategoryTopProducts(c *gin.Context) {
	slug := c.Param("slug")

	top, err := h.Catalog.GetCategoryTopProducts(c.Request.Context(), slug)
	if err != nil {
		respondWithMappedError(c, err, "获取分类榜单失败")
		return
	}
	response.Success(c, top)
}
