package models

import (
	"time"

	"github.com/orgdesk/backend/internal/domain/company"
	"github.com/shopspring/decimal"
)

// CompanyModel is the persistence model for companies
type CompanyModel struct {
	OrgAggregateModel
	ContactColumns
	LegalName    string          `gorm:"type:varchar(200);not null"`
	TradeName    string          `gorm:"type:varchar(200)"`
	LegalForm    string          `gorm:"type:varchar(50)"`
	SIREN        string          `gorm:"column:siren;type:varchar(9)"`
	SIRET        string          `gorm:"column:siret;type:varchar(14)"`
	VATNumber    string          `gorm:"column:vat_number;type:varchar(20)"`
	ShareCapital decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	LogoKey      string          `gorm:"type:varchar(255)"`
	IsMain       bool            `gorm:"not null;default:false"`
	ArchivedAt   *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the model to a domain company
func (m *CompanyModel) ToDomain() *company.Company {
	return &company.Company{
		OrgAggregateRoot: m.OrgAggregateRoot(),
		Archivable:       archivable(m.ArchivedAt),
		LegalName:        m.LegalName,
		TradeName:        m.TradeName,
		LegalForm:        m.LegalForm,
		Fiscal:           fiscalIDs(m.SIREN, m.SIRET, m.VATNumber),
		ShareCapital:     m.ShareCapital,
		Contact:          m.ContactColumns.domain(),
		LogoKey:          m.LogoKey,
		IsMain:           m.IsMain,
	}
}

// CompanyFromDomain converts a domain company to its model
func CompanyFromDomain(c *company.Company) *CompanyModel {
	m := &CompanyModel{
		ContactColumns: contactColumns(c.Contact),
		LegalName:      c.LegalName,
		TradeName:      c.TradeName,
		LegalForm:      c.LegalForm,
		SIREN:          c.Fiscal.SIREN,
		SIRET:          c.Fiscal.SIRET,
		VATNumber:      c.Fiscal.VATNumber,
		ShareCapital:   c.ShareCapital,
		LogoKey:        c.LogoKey,
		IsMain:         c.IsMain,
		ArchivedAt:     c.ArchivedAt,
	}
	m.FromOrgAggregateRoot(c.OrgAggregateRoot)
	return m
}
