package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// AggregateTypeAddress is the aggregate type for addresses
const AggregateTypeAddress = "address"

// AddressType tells what an address is used for
type AddressType string

const (
	AddressTypeBilling      AddressType = "BILLING"
	AddressTypeShipping     AddressType = "SHIPPING"
	AddressTypeHeadquarters AddressType = "HEADQUARTERS"
	AddressTypeOther        AddressType = "OTHER"
)

// IsValid reports whether the type is known
func (t AddressType) IsValid() bool {
	switch t {
	case AddressTypeBilling, AddressTypeShipping, AddressTypeHeadquarters, AddressTypeOther:
		return true
	}
	return false
}

// Address is a postal address of a client, supplier or company.
// At most one address per owner and type is the default.
type Address struct {
	shared.OrgAggregateRoot
	Owner      Owner
	Type       AddressType
	Label      string
	Line1      string
	Line2      string
	PostalCode string
	City       string
	Region     string
	Country    string
	IsDefault  bool
}

// AddressDetails holds the editable fields of an address
type AddressDetails struct {
	Type       AddressType
	Label      string
	Line1      string
	Line2      string
	PostalCode string
	City       string
	Region     string
	Country    string
}

// NewAddress creates an address for an owner
func NewAddress(orgID uuid.UUID, owner Owner, d AddressDetails) (*Address, error) {
	if !owner.IsValid() {
		return nil, shared.NewFieldError("INVALID_OWNER", "owner", "Unknown address owner")
	}
	a := &Address{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Owner:            owner,
	}
	if err := a.apply(d); err != nil {
		return nil, err
	}
	a.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeAddress, "created", a.ID, orgID))
	return a, nil
}

// Update replaces the editable fields. Changing the type drops the default flag,
// since the address would otherwise become a second default of the new type.
func (a *Address) Update(d AddressDetails) error {
	previous := a.Type
	if err := a.apply(d); err != nil {
		return err
	}
	if previous != a.Type {
		a.IsDefault = false
	}
	a.IncrementVersion()
	return nil
}

func (a *Address) apply(d AddressDetails) error {
	if d.Type == "" {
		d.Type = AddressTypeBilling
	}
	if !d.Type.IsValid() {
		return shared.NewFieldError("INVALID_TYPE", "type", "Unknown address type")
	}
	line1 := strings.TrimSpace(d.Line1)
	if line1 == "" {
		return shared.NewFieldError("INVALID_LINE1", "line1", "Street address is required")
	}
	city := strings.TrimSpace(d.City)
	if city == "" {
		return shared.NewFieldError("INVALID_CITY", "city", "City is required")
	}
	country := strings.ToUpper(strings.TrimSpace(d.Country))
	if country == "" {
		country = "FR"
	}
	if len(country) != 2 {
		return shared.NewFieldError("INVALID_COUNTRY", "country", "Country must be an ISO 3166-1 alpha-2 code")
	}
	a.Type = d.Type
	a.Label = strings.TrimSpace(d.Label)
	a.Line1 = line1
	a.Line2 = strings.TrimSpace(d.Line2)
	a.PostalCode = strings.TrimSpace(d.PostalCode)
	a.City = city
	a.Region = strings.TrimSpace(d.Region)
	a.Country = country
	return nil
}

// OneLine renders the address on a single line
func (a *Address) OneLine() string {
	parts := []string{a.Line1, a.Line2, strings.TrimSpace(a.PostalCode + " " + a.City), a.Region, a.Country}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
