package repository

import (
	"fmt"
	"testing"

	"github.com/catalog-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCategoryRepositoryTest(t *testing.T) (*GormCategoryRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Media{}, &models.Category{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCategoryRepository(db), db
}

func createCategory(t *testing.T, db *gorm.DB, slug string, parentID *uint, isActive bool) *models.Category {
	t.Helper()
	category := &models.Category{
		PublicID: models.NewPublicID(),
		Name:     "分类 " + slug,
		Slug:     slug,
		ParentID: parentID,
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category %s failed: %v", slug, err)
	}
	if !isActive {
		if err := db.Model(category).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate category %s failed: %v", slug, err)
		}
	}
	return category
}

func TestListActivePairsExcludesInactive(t *testing.T) {
	repo, db := setupCategoryRepositoryTest(t)
	root := createCategory(t, db, "pairs-root", nil, true)
	child := createCategory(t, db, "pairs-child", &root.ID, true)
	createCategory(t, db, "pairs-hidden", &root.ID, false)

	pairs, err := repo.ListActivePairs()
	if err != nil {
		t.Fatalf("list pairs failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("inactive category leaked, pairs=%v", pairs)
	}
	byID := map[uint]*uint{}
	for _, p := range pairs {
		byID[p.ID] = p.ParentID
	}
	if byID[root.ID] != nil {
		t.Fatalf("root should have nil parent")
	}
	if parent := byID[child.ID]; parent == nil || *parent != root.ID {
		t.Fatalf("child parent wrong: %v", parent)
	}
}

func TestGetActiveBySlug(t *testing.T) {
	repo, db := setupCategoryRepositoryTest(t)
	createCategory(t, db, "slug-live", nil, true)
	createCategory(t, db, "slug-hidden", nil, false)

	got, err := repo.GetActiveBySlug("slug-live")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.Slug != "slug-live" {
		t.Fatalf("active category should be found, got %v", got)
	}

	if got, err := repo.GetActiveBySlug("slug-hidden"); err != nil || got != nil {
		t.Fatalf("inactive category should be invisible, got=%v err=%v", got, err)
	}
	if got, err := repo.GetActiveBySlug("slug-none"); err != nil || got != nil {
		t.Fatalf("missing slug should return nil without error, got=%v err=%v", got, err)
	}
}
