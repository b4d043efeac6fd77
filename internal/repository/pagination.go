package repository

import "gorm.io/gorm"

// applyPagination 按 page/pageSize 追加 LIMIT/OFFSET；
// pageSize 非正时不做分页，page 小于 1 归一为第一页。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
