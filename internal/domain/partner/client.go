package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// AggregateTypeClient is the aggregate type for clients
const AggregateTypeClient = "client"

// ClientType distinguishes people from businesses
type ClientType string

const (
	ClientTypeIndividual ClientType = "INDIVIDUAL"
	ClientTypeCompany    ClientType = "COMPANY"
)

// IsValid reports whether the type is known
func (t ClientType) IsValid() bool {
	return t == ClientTypeIndividual || t == ClientTypeCompany
}

// ClientStatus is the commercial lifecycle stage of a client
type ClientStatus string

const (
	ClientStatusLead     ClientStatus = "LEAD"
	ClientStatusProspect ClientStatus = "PROSPECT"
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
	ClientStatusArchived ClientStatus = "ARCHIVED"
)

// ClientStatusTransitions lists the moves a client's status may make
var ClientStatusTransitions = shared.TransitionTable[ClientStatus]{
	ClientStatusLead:     {ClientStatusProspect, ClientStatusArchived},
	ClientStatusProspect: {ClientStatusActive, ClientStatusLead, ClientStatusArchived},
	ClientStatusActive:   {ClientStatusInactive, ClientStatusArchived},
	ClientStatusInactive: {ClientStatusActive, ClientStatusArchived},
	ClientStatusArchived: {ClientStatusInactive},
}

// Client is a customer or prospective customer of an organization
type Client struct {
	shared.OrgAggregateRoot
	shared.Archivable
	Reference string
	Name      string
	Type      ClientType
	Status    ClientStatus
	Contact   shared.ContactInfo
	Fiscal    shared.FiscalIDs
	Notes     string
}

// NewClient creates a client in LEAD status unless another initial status is given
func NewClient(orgID uuid.UUID, clientType ClientType, status ClientStatus, d PartyDetails) (*Client, error) {
	if status == "" {
		status = ClientStatusLead
	}
	if status == ClientStatusArchived || !ClientStatusTransitions.Known(status) {
		return nil, shared.NewFieldError("INVALID_STATUS", "status", "Invalid initial client status")
	}
	c := &Client{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Status:           status,
	}
	if err := c.apply(clientType, d); err != nil {
		return nil, err
	}
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeClient, "created", c.ID, orgID))
	return c, nil
}

// Update replaces the editable fields
func (c *Client) Update(clientType ClientType, d PartyDetails) error {
	if err := c.apply(clientType, d); err != nil {
		return err
	}
	c.IncrementVersion()
	c.AddDomainEvent(shared.NewLifecycleEvent(AggregateTypeClient, "updated", c.ID, c.OrganizationID))
	return nil
}

func (c *Client) apply(clientType ClientType, d PartyDetails) error {
	if clientType == "" {
		clientType = ClientTypeCompany
	}
	if !clientType.IsValid() {
		return shared.NewFieldError("INVALID_TYPE", "type", "Client type must be INDIVIDUAL or COMPANY")
	}
	clean, err := d.normalize()
	if err != nil {
		return err
	}
	c.Type = clientType
	c.Reference = clean.Reference
	c.Name = clean.Name
	c.Contact = clean.Contact
	c.Fiscal = clean.Fiscal
	c.Notes = clean.Notes
	return nil
}

// ChangeStatus moves the client to a new status. With enforce=false the transition
// table is only advisory and any known status is accepted.
func (c *Client) ChangeStatus(to ClientStatus, enforce bool) error {
	if !ClientStatusTransitions.Known(to) {
		return shared.NewFieldError("INVALID_STATUS", "status", "Unknown client status")
	}
	if enforce {
		if err := ClientStatusTransitions.Validate(c.Status, to); err != nil {
			return err
		}
	} else if c.Status == to {
		return nil
	}
	from := c.Status
	c.Status = to
	if to == ClientStatusArchived {
		c.MarkArchived(time.Now())
	} else {
		c.ClearArchived()
	}
	c.IncrementVersion()
	c.AddDomainEvent(shared.NewStatusChangedEvent(AggregateTypeClient, c.ID, c.OrganizationID, string(from), string(to)))
	return nil
}

// Archive moves the client to ARCHIVED
func (c *Client) Archive(enforce bool) error {
	if c.Status == ClientStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Client is already archived")
	}
	return c.ChangeStatus(ClientStatusArchived, enforce)
}

// Restore brings an archived client back as INACTIVE
func (c *Client) Restore() error {
	if c.Status != ClientStatusArchived {
		return shared.NewDomainError("INVALID_STATE", "Client is not archived")
	}
	return c.ChangeStatus(ClientStatusInactive, true)
}

// ClientFilterSchema lists the filters and search columns accepted when listing clients.
// "address.city" is resolved by the storage layer through the addresses table.
var ClientFilterSchema = shared.FilterSchema{
	Fields: map[string]shared.FilterField{
		"status":   {Column: "status", Kind: shared.FieldText},
		"type":     {Column: "type", Kind: shared.FieldText},
		"archived": {Column: "archived_at", Kind: shared.FieldPresence},
	},
	SearchColumns: []string{"name", "reference", "email", "siren", "siret", "vat_number", SearchAddressCity},
}

// SearchAddressCity is the search column resolving to a related address city
const SearchAddressCity = "address.city"
