package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/organization"
)

// OrganizationModel is the persistence model for organizations
type OrganizationModel struct {
	AggregateModel
	ContactColumns
	Name       string     `gorm:"type:varchar(200);not null"`
	Slug       string     `gorm:"type:varchar(80);not null;uniqueIndex"`
	LegalName  string     `gorm:"type:varchar(200)"`
	SIREN      string     `gorm:"column:siren;type:varchar(9);uniqueIndex:idx_organizations_siren,where:siren <> ''"`
	SIRET      string     `gorm:"column:siret;type:varchar(14);uniqueIndex:idx_organizations_siret,where:siret <> ''"`
	VATNumber  string     `gorm:"column:vat_number;type:varchar(20)"`
	Currency   string     `gorm:"type:char(3);not null;default:'EUR'"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ArchivedAt *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (OrganizationModel) TableName() string {
	return "organizations"
}

// ToDomain converts the model to a domain organization
func (m *OrganizationModel) ToDomain() *organization.Organization {
	return &organization.Organization{
		BaseAggregateRoot: m.AggregateRoot(),
		Archivable:        archivable(m.ArchivedAt),
		Name:              m.Name,
		Slug:              m.Slug,
		LegalName:         m.LegalName,
		Fiscal:            fiscalIDs(m.SIREN, m.SIRET, m.VATNumber),
		Contact:           m.ContactColumns.domain(),
		Currency:          m.Currency,
		CreatedBy:         m.CreatedBy,
	}
}

// OrganizationFromDomain converts a domain organization to its model
func OrganizationFromDomain(o *organization.Organization) *OrganizationModel {
	m := &OrganizationModel{
		ContactColumns: contactColumns(o.Contact),
		Name:           o.Name,
		Slug:           o.Slug,
		LegalName:      o.LegalName,
		SIREN:          o.Fiscal.SIREN,
		SIRET:          o.Fiscal.SIRET,
		VATNumber:      o.Fiscal.VATNumber,
		Currency:       o.Currency,
		CreatedBy:      o.CreatedBy,
		ArchivedAt:     o.ArchivedAt,
	}
	m.FromAggregateRoot(o.BaseAggregateRoot)
	return m
}

// MembershipModel links users to organizations
type MembershipModel struct {
	OrganizationID uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID         `gorm:"type:uuid;primaryKey;index"`
	Role           organization.Role `gorm:"type:varchar(10);not null"`
	CreatedAt      time.Time         `gorm:"not null"`
	UpdatedAt      time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MembershipModel) TableName() string {
	return "memberships"
}

// ToDomain converts the model to a domain membership
func (m *MembershipModel) ToDomain() *organization.Membership {
	return &organization.Membership{
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           m.Role,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// MembershipFromDomain converts a domain membership to its model
func MembershipFromDomain(ms *organization.Membership) *MembershipModel {
	return &MembershipModel{
		OrganizationID: ms.OrganizationID,
		UserID:         ms.UserID,
		Role:           ms.Role,
		CreatedAt:      ms.CreatedAt,
		UpdatedAt:      ms.UpdatedAt,
	}
}
