package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/partner"
)

// PartyColumns are the columns clients and suppliers share
type PartyColumns struct {
	ContactColumns
	Reference  string     `gorm:"type:varchar(50);not null"`
	Name       string     `gorm:"type:varchar(200);not null"`
	SIREN      string     `gorm:"column:siren;type:varchar(9)"`
	SIRET      string     `gorm:"column:siret;type:varchar(14)"`
	VATNumber  string     `gorm:"column:vat_number;type:varchar(20)"`
	Notes      string     `gorm:"type:text"`
	ArchivedAt *time.Time `gorm:"index"`
}

func partyColumns(ref, name string, d partner.PartyDetails, archivedAt *time.Time) PartyColumns {
	return PartyColumns{
		ContactColumns: contactColumns(d.Contact),
		Reference:      ref,
		Name:           name,
		SIREN:          d.Fiscal.SIREN,
		SIRET:          d.Fiscal.SIRET,
		VATNumber:      d.Fiscal.VATNumber,
		Notes:          d.Notes,
		ArchivedAt:     archivedAt,
	}
}

// ClientModel is the persistence model for clients.
// Reference is unique per organization; SIREN and SIRET are unique when set.
type ClientModel struct {
	OrgAggregateModel
	PartyColumns
	Type   partner.ClientType   `gorm:"type:varchar(20);not null"`
	Status partner.ClientStatus `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the model to a domain client
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		OrgAggregateRoot: m.OrgAggregateRoot(),
		Archivable:       archivable(m.ArchivedAt),
		Reference:        m.Reference,
		Name:             m.Name,
		Type:             m.Type,
		Status:           m.Status,
		Contact:          m.ContactColumns.domain(),
		Fiscal:           fiscalIDs(m.SIREN, m.SIRET, m.VATNumber),
		Notes:            m.Notes,
	}
}

// ClientFromDomain converts a domain client to its model
func ClientFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{
		PartyColumns: partyColumns(c.Reference, c.Name,
			partner.PartyDetails{Contact: c.Contact, Fiscal: c.Fiscal, Notes: c.Notes}, c.ArchivedAt),
		Type:   c.Type,
		Status: c.Status,
	}
	m.FromOrgAggregateRoot(c.OrgAggregateRoot)
	return m
}

// SupplierModel is the persistence model for suppliers
type SupplierModel struct {
	OrgAggregateModel
	PartyColumns
	Type             partner.SupplierType   `gorm:"type:varchar(20);not null"`
	Status           partner.SupplierStatus `gorm:"type:varchar(20);not null;index"`
	PaymentTermsDays int                    `gorm:"not null;default:30"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the model to a domain supplier
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		OrgAggregateRoot: m.OrgAggregateRoot(),
		Archivable:       archivable(m.ArchivedAt),
		Reference:        m.Reference,
		Name:             m.Name,
		Type:             m.Type,
		Status:           m.Status,
		Contact:          m.ContactColumns.domain(),
		Fiscal:           fiscalIDs(m.SIREN, m.SIRET, m.VATNumber),
		PaymentTermsDays: m.PaymentTermsDays,
		Notes:            m.Notes,
	}
}

// SupplierFromDomain converts a domain supplier to its model
func SupplierFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{
		PartyColumns: partyColumns(s.Reference, s.Name,
			partner.PartyDetails{Contact: s.Contact, Fiscal: s.Fiscal, Notes: s.Notes}, s.ArchivedAt),
		Type:             s.Type,
		Status:           s.Status,
		PaymentTermsDays: s.PaymentTermsDays,
	}
	m.FromOrgAggregateRoot(s.OrgAggregateRoot)
	return m
}

// ContactModel is the persistence model for contacts.
// The partial unique index keeps one primary contact per owner.
type ContactModel struct {
	OrgAggregateModel
	OwnerType partner.OwnerType `gorm:"type:varchar(20);not null;index:idx_contacts_owner;uniqueIndex:idx_contacts_one_primary,where:is_primary = true"`
	OwnerID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_contacts_owner;uniqueIndex:idx_contacts_one_primary,where:is_primary = true"`
	FirstName string            `gorm:"type:varchar(100)"`
	LastName  string            `gorm:"type:varchar(100)"`
	Email     string            `gorm:"type:varchar(200)"`
	Phone     string            `gorm:"type:varchar(50)"`
	Position  string            `gorm:"type:varchar(100)"`
	IsPrimary bool              `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the model to a domain contact
func (m *ContactModel) ToDomain() *partner.Contact {
	return &partner.Contact{
		OrgAggregateRoot: m.OrgAggregateRoot(),
		Owner:            partner.Owner{Type: m.OwnerType, ID: m.OwnerID},
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Phone:            m.Phone,
		Position:         m.Position,
		IsPrimary:        m.IsPrimary,
	}
}

// ContactFromDomain converts a domain contact to its model
func ContactFromDomain(c *partner.Contact) *ContactModel {
	m := &ContactModel{
		OwnerType: c.Owner.Type,
		OwnerID:   c.Owner.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Position:  c.Position,
		IsPrimary: c.IsPrimary,
	}
	m.FromOrgAggregateRoot(c.OrgAggregateRoot)
	return m
}

// AddressModel is the persistence model for addresses.
// The partial unique index keeps one default address per owner and type.
type AddressModel struct {
	OrgAggregateModel
	OwnerType  partner.OwnerType   `gorm:"type:varchar(20);not null;index:idx_addresses_owner;uniqueIndex:idx_addresses_one_default,where:is_default = true"`
	OwnerID    uuid.UUID           `gorm:"type:uuid;not null;index:idx_addresses_owner;uniqueIndex:idx_addresses_one_default,where:is_default = true"`
	Type       partner.AddressType `gorm:"type:varchar(20);not null;uniqueIndex:idx_addresses_one_default,where:is_default = true"`
	Label      string              `gorm:"type:varchar(100)"`
	Line1      string              `gorm:"type:varchar(255);not null"`
	Line2      string              `gorm:"type:varchar(255)"`
	PostalCode string              `gorm:"type:varchar(20)"`
	City       string              `gorm:"type:varchar(100);not null"`
	Region     string              `gorm:"type:varchar(100)"`
	Country    string              `gorm:"type:char(2);not null"`
	IsDefault  bool                `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the model to a domain address
func (m *AddressModel) ToDomain() *partner.Address {
	return &partner.Address{
		OrgAggregateRoot: m.OrgAggregateRoot(),
		Owner:            partner.Owner{Type: m.OwnerType, ID: m.OwnerID},
		Type:             m.Type,
		Label:            m.Label,
		Line1:            m.Line1,
		Line2:            m.Line2,
		PostalCode:       m.PostalCode,
		City:             m.City,
		Region:           m.Region,
		Country:          m.Country,
		IsDefault:        m.IsDefault,
	}
}

// AddressFromDomain converts a domain address to its model
func AddressFromDomain(a *partner.Address) *AddressModel {
	m := &AddressModel{
		OwnerType:  a.Owner.Type,
		OwnerID:    a.Owner.ID,
		Type:       a.Type,
		Label:      a.Label,
		Line1:      a.Line1,
		Line2:      a.Line2,
		PostalCode: a.PostalCode,
		City:       a.City,
		Region:     a.Region,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
	}
	m.FromOrgAggregateRoot(a.OrgAggregateRoot)
	return m
}
