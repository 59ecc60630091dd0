package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormClientRepository implements partner.ClientRepository
type GormClientRepository struct {
	db        *gorm.DB
	resolvers map[string]SearchResolver
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{
		db: db,
		resolvers: map[string]SearchResolver{
			partner.SearchAddressCity: addressCityResolver("clients", string(partner.OwnerClient)),
		},
	}
}

// FindByID finds a client of the organization
func (r *GormClientRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*partner.Client, error) {
	var m models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// List returns a page of clients matching the built query
func (r *GormClientRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]partner.Client, int64, error) {
	rows, total, err := listPage[models.ClientModel](r.db.WithContext(ctx), "clients", orgID, q, f, r.resolvers, PartySortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	out := make([]partner.Client, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsBy reports whether another client of the organization uses value
func (r *GormClientRepository) ExistsBy(ctx context.Context, orgID uuid.UUID, field partner.UniqueField, value string, excludeID *uuid.UUID) (bool, error) {
	return exists[models.ClientModel](r.db.WithContext(ctx),
		eq("organization_id", orgID), eq(string(field), value), excluding(excludeID))
}

// CountByStatus counts clients per status
func (r *GormClientRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[string]int64, error) {
	return countByStatus[models.ClientModel](r.db.WithContext(ctx), orgID)
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return translate(saveWithLock(r.db.WithContext(ctx), models.ClientFromDomain(client), client))
}

// Delete removes the client with its addresses and contacts
func (r *GormClientRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteOwned(tx, orgID, partner.Owner{Type: partner.OwnerClient, ID: id}); err != nil {
			return err
		}
		return deleteOne[models.ClientModel](tx, orgID, id)
	}))
}

// deleteOwned removes the addresses and contacts hanging off an owner
func deleteOwned(tx *gorm.DB, orgID uuid.UUID, owner partner.Owner) error {
	cond := "organization_id = ? AND owner_type = ? AND owner_id = ?"
	if err := tx.Where(cond, orgID, owner.Type, owner.ID).Delete(&models.AddressModel{}).Error; err != nil {
		return err
	}
	return tx.Where(cond, orgID, owner.Type, owner.ID).Delete(&models.ContactModel{}).Error
}

// deleteOne deletes a row of model M by organization and id, reporting NOT_FOUND when nothing matched
func deleteOne[M any](tx *gorm.DB, orgID, id uuid.UUID) error {
	res := tx.Where("organization_id = ? AND id = ?", orgID, id).Delete(new(M))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ partner.ClientRepository = (*GormClientRepository)(nil)
