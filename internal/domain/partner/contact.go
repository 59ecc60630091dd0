package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// AggregateTypeContact is the aggregate type for contacts
const AggregateTypeContact = "contact"

// Contact is a person reachable at a client or supplier
type Contact struct {
	shared.OrgAggregateRoot
	Owner     Owner
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Position  string
	IsPrimary bool
}

// ContactDetails holds the editable fields of a contact
type ContactDetails struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Position  string
}

// NewContact creates a contact for a client or supplier
func NewContact(orgID uuid.UUID, owner Owner, d ContactDetails) (*Contact, error) {
	if !owner.IsValid() || owner.Type == OwnerCompany {
		return nil, shared.NewFieldError("INVALID_OWNER", "owner", "Contacts belong to a client or a supplier")
	}
	c := &Contact{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Owner:            owner,
	}
	if err := c.apply(d); err != nil {
		return nil, err
	}
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeContact, "created", c.ID, orgID))
	return c, nil
}

// Update replaces the editable fields
func (c *Contact) Update(d ContactDetails) error {
	if err := c.apply(d); err != nil {
		return err
	}
	c.IncrementVersion()
	return nil
}

func (c *Contact) apply(d ContactDetails) error {
	first := strings.TrimSpace(d.FirstName)
	last := strings.TrimSpace(d.LastName)
	if first == "" && last == "" {
		return shared.NewFieldError("INVALID_NAME", "last_name", "A contact needs a first or last name")
	}
	if len(first) > 100 || len(last) > 100 {
		return shared.NewFieldError("INVALID_NAME", "last_name", "Contact names cannot exceed 100 characters")
	}
	info := shared.ContactInfo{Email: d.Email, Phone: d.Phone}.Normalize()
	if err := info.Validate(); err != nil {
		return err
	}
	c.FirstName = first
	c.LastName = last
	c.Email = info.Email
	c.Phone = info.Phone
	c.Position = strings.TrimSpace(d.Position)
	return nil
}

// FullName joins first and last name
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
