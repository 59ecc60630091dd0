package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormContactRepository implements partner.ContactRepository
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact of the organization
func (r *GormContactRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*partner.Contact, error) {
	var m models.ContactModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// ListByOwner returns the owner's contacts, primary first
func (r *GormContactRepository) ListByOwner(ctx context.Context, orgID uuid.UUID, owner partner.Owner) ([]partner.Contact, error) {
	var rows []models.ContactModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND owner_type = ? AND owner_id = ?", orgID, owner.Type, owner.ID).
		Order("is_primary DESC").
		Order("last_name").
		Order("first_name").
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]partner.Contact, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *partner.Contact) error {
	return translate(saveWithLock(r.db.WithContext(ctx), models.ContactFromDomain(contact), contact))
}

// SaveAsPrimary demotes the owner's current primary contact and saves this one in one transaction
func (r *GormContactRepository) SaveAsPrimary(ctx context.Context, contact *partner.Contact) error {
	contact.IsPrimary = true
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ContactModel{}).
			Where("organization_id = ? AND owner_type = ? AND owner_id = ? AND id <> ? AND is_primary = ?",
				contact.OrganizationID, contact.Owner.Type, contact.Owner.ID, contact.ID, true).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return saveWithLock(tx, models.ContactFromDomain(contact), contact)
	}))
}

// Delete removes a contact
func (r *GormContactRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return translate(deleteOne[models.ContactModel](r.db.WithContext(ctx), orgID, id))
}

var _ partner.ContactRepository = (*GormContactRepository)(nil)
