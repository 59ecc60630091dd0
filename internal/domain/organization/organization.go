package organization

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// AggregateTypeOrganization is the aggregate type for organizations
const AggregateTypeOrganization = "organization"

// Organization is the tenant: it owns clients, suppliers, products and companies
type Organization struct {
	shared.BaseAggregateRoot
	shared.Archivable
	Name      string
	Slug      string
	LegalName string
	Fiscal    shared.FiscalIDs
	Contact   shared.ContactInfo
	Currency  string
	CreatedBy uuid.UUID
}

// Details holds the editable fields of an organization
type Details struct {
	Name      string
	LegalName string
	Currency  string
	Fiscal    shared.FiscalIDs
	Contact   shared.ContactInfo
}

// NewOrganization creates an organization owned by createdBy
func NewOrganization(createdBy uuid.UUID, d Details) (*Organization, error) {
	o := &Organization{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CreatedBy:         createdBy,
	}
	if err := o.apply(d); err != nil {
		return nil, err
	}
	o.Slug = Slugify(o.Name)
	o.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeOrganization, "created", o.ID, o.ID))
	return o, nil
}

// Update replaces the editable fields
func (o *Organization) Update(d Details) error {
	if err := o.apply(d); err != nil {
		return err
	}
	o.IncrementVersion()
	o.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeOrganization, "updated", o.ID, o.ID))
	return nil
}

func (o *Organization) apply(d Details) error {
	name := strings.TrimSpace(d.Name)
	if err := shared.ValidateRequiredName("name", name, 200); err != nil {
		return err
	}
	fiscal := d.Fiscal.Normalize()
	if err := fiscal.Validate(); err != nil {
		return err
	}
	contact := d.Contact.Normalize()
	if err := contact.Validate(); err != nil {
		return err
	}
	currency := strings.ToUpper(strings.TrimSpace(d.Currency))
	if currency == "" {
		currency = "EUR"
	}
	if len(currency) != 3 {
		return shared.NewFieldError("INVALID_CURRENCY", "currency", "Currency must be a 3-letter ISO code")
	}

	o.Name = name
	o.LegalName = strings.TrimSpace(d.LegalName)
	o.Fiscal = fiscal
	o.Contact = contact
	o.Currency = currency
	return nil
}

// Archive hides the organization from default listings
func (o *Organization) Archive(now time.Time) error {
	if o.IsArchived() {
		return shared.NewDomainError("INVALID_STATE", "Organization is already archived")
	}
	o.MarkArchived(now)
	o.IncrementVersion()
	o.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeOrganization, "archived", o.ID, o.ID))
	return nil
}

// Restore brings an archived organization back
func (o *Organization) Restore() error {
	if !o.IsArchived() {
		return shared.NewDomainError("INVALID_STATE", "Organization is not archived")
	}
	o.ClearArchived()
	o.IncrementVersion()
	o.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeOrganization, "restored", o.ID, o.ID))
	return nil
}
