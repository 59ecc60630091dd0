package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// BaseModel provides identity and timestamps
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// AggregateModel adds the optimistic locking version
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromAggregateRoot copies identity, timestamps and version
func (m *AggregateModel) FromAggregateRoot(a shared.BaseAggregateRoot) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
}

// AggregateRoot rebuilds the domain base aggregate as stored at m.Version
func (m *AggregateModel) AggregateRoot() shared.BaseAggregateRoot {
	return shared.RestoreBaseAggregateRoot(shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, m.Version)
}

// OrgAggregateModel is the base of every organization-owned table
type OrgAggregateModel struct {
	AggregateModel
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`
}

// FromOrgAggregateRoot copies the organization-scoped base fields
func (m *OrgAggregateModel) FromOrgAggregateRoot(a shared.OrgAggregateRoot) {
	m.FromAggregateRoot(a.BaseAggregateRoot)
	m.OrganizationID = a.OrganizationID
	m.CreatedBy = a.CreatedBy
}

// OrgAggregateRoot rebuilds the domain organization-scoped base
func (m *OrgAggregateModel) OrgAggregateRoot() shared.OrgAggregateRoot {
	return shared.OrgAggregateRoot{
		BaseAggregateRoot: m.AggregateRoot(),
		OrganizationID:    m.OrganizationID,
		CreatedBy:         m.CreatedBy,
	}
}

// ContactColumns stores shared.ContactInfo
type ContactColumns struct {
	Email   string `gorm:"type:varchar(200)"`
	Phone   string `gorm:"type:varchar(50)"`
	Website string `gorm:"type:varchar(255)"`
}

func contactColumns(c shared.ContactInfo) ContactColumns {
	return ContactColumns{Email: c.Email, Phone: c.Phone, Website: c.Website}
}

func (c ContactColumns) domain() shared.ContactInfo {
	return shared.ContactInfo{Email: c.Email, Phone: c.Phone, Website: c.Website}
}

func fiscalIDs(siren, siret, vat string) shared.FiscalIDs {
	return shared.FiscalIDs{SIREN: siren, SIRET: siret, VATNumber: vat}
}

func archivable(at *time.Time) shared.Archivable {
	return shared.Archivable{ArchivedAt: at}
}

// AllModels lists every model, in dependency order, for AutoMigrate
func AllModels() []any {
	return []any{
		&UserModel{},
		&OrganizationModel{},
		&MembershipModel{},
		&ClientModel{},
		&SupplierModel{},
		&ContactModel{},
		&AddressModel{},
		&CategoryModel{},
		&ProductModel{},
		&CompanyModel{},
		&ActivityModel{},
	}
}
