package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements catalog.CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category of the organization
func (r *GormCategoryRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*catalog.ProductCategory, error) {
	var m models.CategoryModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// List returns a flat page of categories
func (r *GormCategoryRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]catalog.ProductCategory, int64, error) {
	if f.OrderBy == "" {
		f.OrderBy, f.OrderDir = "sort_order", "asc"
	}
	rows, total, err := listPage[models.CategoryModel](r.db.WithContext(ctx), "product_categories", orgID, q, f, nil, CategorySortFields, "sort_order")
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.ProductCategory, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// FindAll loads every category of the organization for tree building
func (r *GormCategoryRepository) FindAll(ctx context.Context, orgID uuid.UUID, includeArchived bool) ([]*catalog.ProductCategory, error) {
	var rows []models.CategoryModel
	q := r.db.WithContext(ctx).Where("organization_id = ?", orgID)
	if !includeArchived {
		q = q.Where("archived_at IS NULL")
	}
	if err := q.Order("sort_order").Order("name").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]*catalog.ProductCategory, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByName reports whether a sibling under parentID already uses the name, ignoring case
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, orgID uuid.UUID, parentID *uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Where("organization_id = ? AND LOWER(name) = ?", orgID, strings.ToLower(strings.TrimSpace(name)))
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	return exists[models.CategoryModel](q, excluding(excludeID))
}

// CountChildren counts the direct children of a category
func (r *GormCategoryRepository) CountChildren(ctx context.Context, orgID, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("organization_id = ? AND parent_id = ?", orgID, id).
		Count(&count).Error
	return count, translate(err)
}

// Count counts the categories of the organization
func (r *GormCategoryRepository) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error
	return count, translate(err)
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.ProductCategory) error {
	return translate(saveWithLock(r.db.WithContext(ctx), models.CategoryFromDomain(category), category))
}

// Delete removes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return translate(deleteOne[models.CategoryModel](r.db.WithContext(ctx), orgID, id))
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
