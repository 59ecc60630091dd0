package company

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeCompany is the aggregate type for companies
const AggregateTypeCompany = "company"

// Company is a legal entity an organization operates through.
// An organization has at most one main company.
type Company struct {
	shared.OrgAggregateRoot
	shared.Archivable
	LegalName    string
	TradeName    string
	LegalForm    string
	Fiscal       shared.FiscalIDs
	ShareCapital decimal.Decimal
	Contact      shared.ContactInfo
	LogoKey      string
	IsMain       bool
}

// Details holds the editable fields of a company
type Details struct {
	LegalName    string
	TradeName    string
	LegalForm    string
	Fiscal       shared.FiscalIDs
	ShareCapital decimal.Decimal
	Contact      shared.ContactInfo
}

// NewCompany creates a company
func NewCompany(orgID uuid.UUID, d Details) (*Company, error) {
	c := &Company{OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID)}
	if err := c.apply(d); err != nil {
		return nil, err
	}
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeCompany, "created", c.ID, orgID))
	return c, nil
}

// Update replaces the editable fields
func (c *Company) Update(d Details) error {
	if err := c.apply(d); err != nil {
		return err
	}
	c.IncrementVersion()
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeCompany, "updated", c.ID, c.OrganizationID))
	return nil
}

func (c *Company) apply(d Details) error {
	legalName := strings.TrimSpace(d.LegalName)
	if err := shared.ValidateRequiredName("legal_name", legalName, 200); err != nil {
		return err
	}
	tradeName := strings.TrimSpace(d.TradeName)
	if len(tradeName) > 200 {
		return shared.NewFieldError("INVALID_TRADE_NAME", "trade_name", "Trade name cannot exceed 200 characters")
	}
	legalForm := strings.TrimSpace(d.LegalForm)
	if len(legalForm) > 50 {
		return shared.NewFieldError("INVALID_LEGAL_FORM", "legal_form", "Legal form cannot exceed 50 characters")
	}
	if d.ShareCapital.IsNegative() {
		return shared.NewFieldError("INVALID_SHARE_CAPITAL", "share_capital", "Share capital cannot be negative")
	}
	fiscal := d.Fiscal.Normalize()
	if err := fiscal.Validate(); err != nil {
		return err
	}
	contact := d.Contact.Normalize()
	if err := contact.Validate(); err != nil {
		return err
	}
	c.LegalName = legalName
	c.TradeName = tradeName
	c.LegalForm = legalForm
	c.ShareCapital = d.ShareCapital.Round(2)
	c.Fiscal = fiscal
	c.Contact = contact
	return nil
}

// DisplayName prefers the trade name
func (c *Company) DisplayName() string {
	if c.TradeName != "" {
		return c.TradeName
	}
	return c.LegalName
}

// MarkMain flags the company as the organization's main one
func (c *Company) MarkMain() error {
	if c.IsArchived() {
		return shared.NewDomainError("INVALID_STATE", "An archived company cannot be the main company")
	}
	c.IsMain = true
	c.IncrementVersion()
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeCompany, "main_changed", c.ID, c.OrganizationID))
	return nil
}

// Archive stamps the company as archived and drops the main flag
func (c *Company) Archive() error {
	if c.IsArchived() {
		return shared.NewDomainError("INVALID_STATE", "Company is already archived")
	}
	c.MarkArchived(time.Now())
	c.IsMain = false
	c.IncrementVersion()
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeCompany, "archived", c.ID, c.OrganizationID))
	return nil
}

// Restore clears the archive stamp
func (c *Company) Restore() error {
	if !c.IsArchived() {
		return shared.NewDomainError("INVALID_STATE", "Company is not archived")
	}
	c.ClearArchived()
	c.IncrementVersion()
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeCompany, "restored", c.ID, c.OrganizationID))
	return nil
}

var logoContentTypes = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// LogoObjectKey returns a fresh storage key for a logo of the given content type
func (c *Company) LogoObjectKey(contentType string) (string, error) {
	ext, ok := logoContentTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", shared.NewFieldError("INVALID_CONTENT_TYPE", "content_type", "Logo must be a PNG, JPEG, WebP or SVG image")
	}
	return fmt.Sprintf("organizations/%s/companies/%s/logo-%s.%s", c.OrganizationID, c.ID, uuid.NewString()[:8], ext), nil
}

// SetLogo stores a logo key previously issued by LogoObjectKey
func (c *Company) SetLogo(key string) error {
	prefix := fmt.Sprintf("organizations/%s/companies/%s/logo-", c.OrganizationID, c.ID)
	if !strings.HasPrefix(key, prefix) {
		return shared.NewFieldError("INVALID_LOGO_KEY", "key", "Logo key does not belong to this company")
	}
	c.LogoKey = key
	c.IncrementVersion()
	return nil
}

// CompanyFilterSchema lists the filters and search columns accepted when listing companies
var CompanyFilterSchema = shared.FilterSchema{
	Fields: map[string]shared.FilterField{
		"isMain":   {Column: "is_main", Kind: shared.FieldBool},
		"archived": {Column: "archived_at", Kind: shared.FieldPresence},
	},
	SearchColumns: []string{"legal_name", "trade_name", "siren", "siret"},
}
