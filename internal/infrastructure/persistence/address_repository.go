package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAddressRepository implements partner.AddressRepository
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address of the organization
func (r *GormAddressRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*partner.Address, error) {
	var m models.AddressModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// ListByOwner returns the owner's addresses grouped by type, defaults first
func (r *GormAddressRepository) ListByOwner(ctx context.Context, orgID uuid.UUID, owner partner.Owner) ([]partner.Address, error) {
	var rows []models.AddressModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND owner_type = ? AND owner_id = ?", orgID, owner.Type, owner.ID).
		Order("type").
		Order("is_default DESC").
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]partner.Address, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *partner.Address) error {
	return translate(saveWithLock(r.db.WithContext(ctx), models.AddressFromDomain(address), address))
}

// SaveAsDefault clears the previous default of the same owner and type, then saves
// this address as default. Both writes share one transaction and the partial unique
// index rejects a concurrent second default.
func (r *GormAddressRepository) SaveAsDefault(ctx context.Context, address *partner.Address) error {
	address.IsDefault = true
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AddressModel{}).
			Where("organization_id = ? AND owner_type = ? AND owner_id = ? AND type = ? AND id <> ? AND is_default = ?",
				address.OrganizationID, address.Owner.Type, address.Owner.ID, address.Type, address.ID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return saveWithLock(tx, models.AddressFromDomain(address), address)
	}))
}

// Delete removes an address
func (r *GormAddressRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return translate(deleteOne[models.AddressModel](r.db.WithContext(ctx), orgID, id))
}

var _ partner.AddressRepository = (*GormAddressRepository)(nil)
