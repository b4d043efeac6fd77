package shared

import (
	"strconv"
	"strings"

	"github.com/catalog-next/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// ParsePagination 从查询参数解析 page/size。缺省参数取默认值；
// 显式给出的非法值（非数字、page < 1、size 超出 [1,100]）在进入
// 查询层之前即判定为参数错误。
func ParsePagination(c *gin.Context) (int, int, error) {
	page, err := paginationParam(c, "page", defaultPage, 1, 0)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := paginationParam(c, "size", defaultPageSize, 1, maxPageSize)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

// paginationParam max <= 0 时不设上限
func paginationParam(c *gin.Context, name string, fallback, min, max int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.ErrValidation
	}
	if value < min || (max > 0 && value > max) {
		return 0, service.ErrValidation
	}
	return value, nil
}
