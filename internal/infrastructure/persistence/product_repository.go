package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product of the organization
func (r *GormProductRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// List returns a page of products matching the built query
func (r *GormProductRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]catalog.Product, int64, error) {
	rows, total, err := listPage[models.ProductModel](r.db.WithContext(ctx), "products", orgID, q, f, nil, ProductSortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.Product, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsByReference reports whether another product of the organization uses ref
func (r *GormProductRepository) ExistsByReference(ctx context.Context, orgID uuid.UUID, ref string, excludeID *uuid.UUID) (bool, error) {
	return exists[models.ProductModel](r.db.WithContext(ctx),
		eq("organization_id", orgID), eq("reference", ref), excluding(excludeID))
}

// CountByStatus counts products per status
func (r *GormProductRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[string]int64, error) {
	return countByStatus[models.ProductModel](r.db.WithContext(ctx), orgID)
}

// CountByCategory counts the products attached to a category
func (r *GormProductRepository) CountByCategory(ctx context.Context, orgID, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("organization_id = ? AND category_id = ?", orgID, categoryID).
		Count(&count).Error
	return count, translate(err)
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return translate(saveWithLock(r.db.WithContext(ctx), models.ProductFromDomain(product), product))
}

// Delete removes a product
func (r *GormProductRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return translate(deleteOne[models.ProductModel](r.db.WithContext(ctx), orgID, id))
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
