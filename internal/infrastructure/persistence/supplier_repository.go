package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository
type GormSupplierRepository struct {
	db        *gorm.DB
	resolvers map[string]SearchResolver
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{
		db: db,
		resolvers: map[string]SearchResolver{
			partner.SearchAddressCity: addressCityResolver("suppliers", string(partner.OwnerSupplier)),
		},
	}
}

// FindByID finds a supplier of the organization
func (r *GormSupplierRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*partner.Supplier, error) {
	var m models.SupplierModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// List returns a page of suppliers matching the built query
func (r *GormSupplierRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]partner.Supplier, int64, error) {
	rows, total, err := listPage[models.SupplierModel](r.db.WithContext(ctx), "suppliers", orgID, q, f, r.resolvers, PartySortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	out := make([]partner.Supplier, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsBy reports whether another supplier of the organization uses value
func (r *GormSupplierRepository) ExistsBy(ctx context.Context, orgID uuid.UUID, field partner.UniqueField, value string, excludeID *uuid.UUID) (bool, error) {
	return exists[models.SupplierModel](r.db.WithContext(ctx),
		eq("organization_id", orgID), eq(string(field), value), excluding(excludeID))
}

// CountByStatus counts suppliers per status
func (r *GormSupplierRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[string]int64, error) {
	return countByStatus[models.SupplierModel](r.db.WithContext(ctx), orgID)
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return translate(saveWithLock(r.db.WithContext(ctx), models.SupplierFromDomain(supplier), supplier))
}

// Delete removes the supplier with its addresses and contacts and unlinks its products
func (r *GormSupplierRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteOwned(tx, orgID, partner.Owner{Type: partner.OwnerSupplier, ID: id}); err != nil {
			return err
		}
		if err := tx.Model(&models.ProductModel{}).
			Where("organization_id = ? AND supplier_id = ?", orgID, id).
			Update("supplier_id", nil).Error; err != nil {
			return err
		}
		return deleteOne[models.SupplierModel](tx, orgID, id)
	}))
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
