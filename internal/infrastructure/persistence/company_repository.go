package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/company"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCompanyRepository implements company.Repository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company of the organization
func (r *GormCompanyRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*company.Company, error) {
	var m models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindMain returns the organization's main company
func (r *GormCompanyRepository) FindMain(ctx context.Context, orgID uuid.UUID) (*company.Company, error) {
	var m models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_main = ?", orgID, true).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// List returns a page of companies matching the built query
func (r *GormCompanyRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]company.Company, int64, error) {
	rows, total, err := listPage[models.CompanyModel](r.db.WithContext(ctx), "companies", orgID, q, f, nil, CompanySortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	out := make([]company.Company, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

var companyUniqueColumns = map[string]bool{"siren": true, "siret": true}

// ExistsBy reports whether another company of the organization uses value in column
func (r *GormCompanyRepository) ExistsBy(ctx context.Context, orgID uuid.UUID, column, value string, excludeID *uuid.UUID) (bool, error) {
	if !companyUniqueColumns[column] {
		return false, fmt.Errorf("company uniqueness not tracked for column %q", column)
	}
	return exists[models.CompanyModel](r.db.WithContext(ctx),
		eq("organization_id", orgID), eq(column, value), excluding(excludeID))
}

// Count counts the companies of the organization
func (r *GormCompanyRepository) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CompanyModel{}).
		Where("organization_id = ?", orgID).
		Count(&count).Error
	return count, translate(err)
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	return translate(saveWithLock(r.db.WithContext(ctx), models.CompanyFromDomain(c), c))
}

// SaveAsMain clears the previous main company and saves this one in one transaction
func (r *GormCompanyRepository) SaveAsMain(ctx context.Context, c *company.Company) error {
	c.IsMain = true
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CompanyModel{}).
			Where("organization_id = ? AND id <> ? AND is_main = ?", c.OrganizationID, c.ID, true).
			Update("is_main", false).Error; err != nil {
			return err
		}
		return saveWithLock(tx, models.CompanyFromDomain(c), c)
	}))
}

// Delete removes the company with its addresses and contacts
func (r *GormCompanyRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteOwned(tx, orgID, partner.Owner{Type: partner.OwnerCompany, ID: id}); err != nil {
			return err
		}
		return deleteOne[models.CompanyModel](tx, orgID, id)
	}))
}

var _ company.Repository = (*GormCompanyRepository)(nil)
