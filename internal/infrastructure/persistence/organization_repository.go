package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository implements organization.OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GormOrganizationRepository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FindByID finds an organization by id
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	var m models.OrganizationModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindForUser lists the organizations the user belongs to. Archived ones are
// hidden unless the "archived" filter asks for them.
func (r *GormOrganizationRepository) FindForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]organization.Organization, int64, error) {
	filter.Normalize()
	base := r.db.WithContext(ctx).Model(&models.OrganizationModel{}).
		Joins("JOIN memberships ON memberships.organization_id = organizations.id").
		Where("memberships.user_id = ?", userID)

	switch v := filter.Filters["archived"].(type) {
	case bool:
		if v {
			base = base.Where("organizations.archived_at IS NOT NULL")
		} else {
			base = base.Where("organizations.archived_at IS NULL")
		}
	default:
		base = base.Where("organizations.archived_at IS NULL")
	}
	if filter.Search != "" {
		base = base.Where(`LOWER(organizations.name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(filter.Search))+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.OrganizationModel
	if err := orderAndPage(base.Session(&gorm.Session{}), "organizations", filter, OrganizationSortFields, "name").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]organization.Organization, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsBySlug reports whether the slug is taken
func (r *GormOrganizationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return exists[models.OrganizationModel](r.db.WithContext(ctx), eq("slug", slug))
}

// ExistsBySIREN reports whether another organization uses the SIREN
func (r *GormOrganizationRepository) ExistsBySIREN(ctx context.Context, siren string, excludeID *uuid.UUID) (bool, error) {
	return exists[models.OrganizationModel](r.db.WithContext(ctx), eq("siren", siren), excluding(excludeID))
}

// ExistsBySIRET reports whether another organization uses the SIRET
func (r *GormOrganizationRepository) ExistsBySIRET(ctx context.Context, siret string, excludeID *uuid.UUID) (bool, error) {
	return exists[models.OrganizationModel](r.db.WithContext(ctx), eq("siret", siret), excluding(excludeID))
}

// Create stores the organization and its owner membership in one transaction
func (r *GormOrganizationRepository) Create(ctx context.Context, org *organization.Organization, owner *organization.Membership) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveWithLock(tx, models.OrganizationFromDomain(org), org); err != nil {
			return err
		}
		return tx.Create(models.MembershipFromDomain(owner)).Error
	}))
}

// Save updates an organization
func (r *GormOrganizationRepository) Save(ctx context.Context, org *organization.Organization) error {
	return translate(saveWithLock(r.db.WithContext(ctx), models.OrganizationFromDomain(org), org))
}

// orgOwnedTables are purged, children first, when an organization is deleted
var orgOwnedTables = []string{
	"activity_log", "addresses", "contacts", "products", "product_categories",
	"clients", "suppliers", "companies", "memberships",
}

// Delete removes the organization and everything it owns
func (r *GormOrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range orgOwnedTables {
			if err := tx.Exec("DELETE FROM "+table+" WHERE organization_id = ?", id).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.OrganizationModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

// GormMembershipRepository implements organization.MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GormMembershipRepository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Find returns the membership of a user in an organization
func (r *GormMembershipRepository) Find(ctx context.Context, orgID, userID uuid.UUID) (*organization.Membership, error) {
	var m models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindByOrganization lists the members of an organization
func (r *GormMembershipRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]organization.Membership, error) {
	var rows []models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]organization.Membership, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// CountOwners counts the owners of an organization
func (r *GormMembershipRepository) CountOwners(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MembershipModel{}).
		Where("organization_id = ? AND role = ?", orgID, organization.RoleOwner).
		Count(&count).Error
	return count, err
}

// Save creates or updates a membership
func (r *GormMembershipRepository) Save(ctx context.Context, m *organization.Membership) error {
	return translate(r.db.WithContext(ctx).Save(models.MembershipFromDomain(m)).Error)
}

// Delete removes a membership
func (r *GormMembershipRepository) Delete(ctx context.Context, orgID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&models.MembershipModel{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ organization.OrganizationRepository = (*GormOrganizationRepository)(nil)
	_ organization.MembershipRepository   = (*GormMembershipRepository)(nil)
)
