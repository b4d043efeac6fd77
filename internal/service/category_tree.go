package service

import (
	"github.com/catalog-next/internal/repository"
)

// defaultMaxTreeDepth 分类树遍历深度上限，防御异常深的层级
const defaultMaxTreeDepth = 32

// CategoryTreeResolver 分类后代闭包计算器
type CategoryTreeResolver struct {
	repo     repository.CategoryRepository
	maxDepth int
}

// NewCategoryTreeResolver 创建分类树解析器；maxDepth <= 0 时使用默认上限
func NewCategoryTreeResolver(repo repository.CategoryRepository, maxDepth int) *CategoryTreeResolver {
	if maxDepth <= 0 {
		maxDepth = defaultMaxTreeDepth
	}
	return &CategoryTreeResolver{repo: repo, maxDepth: maxDepth}
}

type stackEntry struct {
	id    uint
	depth int
}

// Descendants 计算各根分类及其全部后代的并集（含根自身，去重）。
// 不在启用分类中的根不产生任何结果；空输入返回空切片。
func (r *CategoryTreeResolver) Descendants(rootIDs []uint) ([]uint, error) {
	if len(rootIDs) == 0 {
		return []uint{}, nil
	}

	pairs, err := r.repo.ListActivePairs()
	if err != nil {
		return nil, err
	}

	exists := make(map[uint]bool, len(pairs))
	children := make(map[uint][]uint, len(pairs))
	for _, pair := range pairs {
		exists[pair.ID] = true
		if pair.ParentID != nil {
			children[*pair.ParentID] = append(children[*pair.ParentID], pair.ID)
		}
	}

	seen := make(map[uint]bool)
	result := make([]uint, 0, len(rootIDs))

	// 显式栈的迭代遍历，避免深层级造成调用栈增长
	stack := make([]stackEntry, 0, len(rootIDs))
	for _, rootID := range rootIDs {
		if !exists[rootID] {
			continue
		}
		stack = append(stack, stackEntry{id: rootID, depth: 0})
	}

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[entry.id] {
			continue
		}
		seen[entry.id] = true
		result = append(result, entry.id)

		if entry.depth >= r.maxDepth {
			continue
		}
		for _, childID := range children[entry.id] {
			if !seen[childID] {
				stack = append(stack, stackEntry{id: childID, depth: entry.depth + 1})
			}
		}
	}

	return result, nil
}
