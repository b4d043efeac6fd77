package service

import (
	"errors"
	"sort"
	"testing"

	"github.com/catalog-next/internal/models"
	"github.com/catalog-next/internal/repository"
)

type fakeCategoryRepo struct {
	pairs    []repository.CategoryPair
	pairsErr error
	bySlug   map[string]*models.Category
}

func (f *fakeCategoryRepo) ListActivePairs() ([]repository.CategoryPair, error) {
	return f.pairs, f.pairsErr
}

func (f *fakeCategoryRepo) GetActiveBySlug(slug string) (*models.Category, error) {
	return f.bySlug[slug], nil
}

func pair(id uint, parentID *uint) repository.CategoryPair {
	return repository.CategoryPair{ID: id, ParentID: parentID}
}

func uintRef(v uint) *uint {
	return &v
}

func sortedIDs(ids []uint) []uint {
	out := append([]uint(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestDescendantsIncludesRootAndChildren(t *testing.T) {
	repo := &fakeCategoryRepo{pairs: []repository.CategoryPair{
		pair(1, nil),
		pair(2, uintRef(1)),
		pair(3, uintRef(1)),
		pair(4, uintRef(2)),
		pair(5, nil), // 无关的另一棵树
	}}
	resolver := NewCategoryTreeResolver(repo, 0)

	got, err := resolver.Descendants([]uint{1})
	if err != nil {
		t.Fatalf("descendants failed: %v", err)
	}
	want := []uint{1, 2, 3, 4}
	gotSorted := sortedIDs(got)
	if len(gotSorted) != len(want) {
		t.Fatalf("want %v got %v", want, gotSorted)
	}
	for i := range want {
		if gotSorted[i] != want[i] {
			t.Fatalf("want %v got %v", want, gotSorted)
		}
	}
}

func TestDescendantsLeafReturnsSelf(t *testing.T) {
	repo := &fakeCategoryRepo{pairs: []repository.CategoryPair{
		pair(1, nil),
		pair(2, uintRef(1)),
	}}
	resolver := NewCategoryTreeResolver(repo, 0)

	got, err := resolver.Descendants([]uint{2})
	if err != nil {
		t.Fatalf("descendants failed: %v", err)
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("want [2] got %v", got)
	}
}

func TestDescendantsSkipsUnknownRoot(t *testing.T) {
	repo := &fakeCategoryRepo{pairs: []repository.CategoryPair{
		pair(1, nil),
	}}
	resolver := NewCategoryTreeResolver(repo, 0)

	got, err := resolver.Descendants([]uint{99})
	if err != nil {
		t.Fatalf("descendants failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unknown root should be skipped, got %v", got)
	}
}

func TestDescendantsEmptyInput(t *testing.T) {
	resolver := NewCategoryTreeResolver(&fakeCategoryRepo{}, 0)
	got, err := resolver.Descendants(nil)
	if err != nil {
		t.Fatalf("descendants failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty input should yield empty result, got %v", got)
	}
}

func TestDescendantsDeduplicatesOverlappingRoots(t *testing.T) {
	repo := &fakeCategoryRepo{pairs: []repository.CategoryPair{
		pair(1, nil),
		pair(2, uintRef(1)),
	}}
	resolver := NewCategoryTreeResolver(repo, 0)

	got, err := resolver.Descendants([]uint{1, 2, 1})
	if err != nil {
		t.Fatalf("descendants failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("overlapping roots should deduplicate, got %v", got)
	}
}

func TestDescendantsRespectsMaxDepth(t *testing.T) {
	repo := &fakeCategoryRepo{pairs: []repository.CategoryPair{
		pair(1, nil),
		pair(2, uintRef(1)),
		pair(3, uintRef(2)),
		pair(4, uintRef(3)),
	}}
	resolver := NewCategoryTreeResolver(repo, 2)

	got, err := resolver.Descendants([]uint{1})
	if err != nil {
		t.Fatalf("descendants failed: %v", err)
	}
	// 深度上限 2：包含 1(0)、2(1)、3(2)，4 被截断
	if len(got) != 3 {
		t.Fatalf("depth bound should truncate, got %v", got)
	}
	for _, id := range got {
		if id == 4 {
			t.Fatalf("node beyond depth bound leaked: %v", got)
		}
	}
}

func TestDescendantsPropagatesRepoError(t *testing.T) {
	repoErr := errors.New("db unavailable")
	resolver := NewCategoryTreeResolver(&fakeCategoryRepo{pairsErr: repoErr}, 0)

	if _, err := resolver.Descendants([]uint{1}); !errors.Is(err, repoErr) {
		t.Fatalf("want repo error, got %v", err)
	}
}
