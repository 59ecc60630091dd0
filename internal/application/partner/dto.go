package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/workflow"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// PartyInput holds the fields clients and suppliers share
type PartyInput struct {
	Reference string `json:"reference" validate:"required,max=50"`
	Name      string `json:"name" validate:"required,max=200" sanitize:"text"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
	Phone     string `json:"phone" validate:"max=30"`
	Website   string `json:"website" validate:"omitempty,url,max=255"`
	SIREN     string `json:"siren" validate:"max=20"`
	SIRET     string `json:"siret" validate:"max=20"`
	VATNumber string `json:"vat_number" validate:"max=20"`
	Notes     string `json:"notes" validate:"max=5000" sanitize:"text"`
}

func (in PartyInput) details() partner.PartyDetails {
	return partner.PartyDetails{
		Reference: in.Reference,
		Name:      in.Name,
		Contact:   shared.ContactInfo{Email: in.Email, Phone: in.Phone, Website: in.Website},
		Fiscal:    shared.FiscalIDs{SIREN: in.SIREN, SIRET: in.SIRET, VATNumber: in.VATNumber},
		Notes:     in.Notes,
	}
}

// ClientInput creates or updates a client. Status is only read on create.
type ClientInput struct {
	PartyInput
	Type   string `json:"type" validate:"omitempty,oneof=INDIVIDUAL COMPANY"`
	Status string `json:"status" validate:"omitempty,oneof=LEAD PROSPECT ACTIVE INACTIVE"`
}

// SupplierInput creates or updates a supplier
type SupplierInput struct {
	PartyInput
	Type             string `json:"type" validate:"omitempty,oneof=MANUFACTURER WHOLESALER DISTRIBUTOR SERVICE_PROVIDER OTHER"`
	PaymentTermsDays int    `json:"payment_terms_days" validate:"min=0,max=365"`
}

// StatusInput requests a status change
type StatusInput struct {
	Status string `json:"status" validate:"required,max=30"`
}

// PartyResponse holds the fields clients and suppliers share in responses
type PartyResponse struct {
	ID              uuid.UUID  `json:"id"`
	Reference       string     `json:"reference,omitempty"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	AllowedStatuses []string   `json:"allowed_statuses"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Website         string     `json:"website,omitempty"`
	SIREN           string     `json:"siren,omitempty"`
	SIRET           string     `json:"siret,omitempty"`
	VATNumber       string     `json:"vat_number,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
	Version         int        `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ClientResponse is a client in API responses
type ClientResponse struct {
	PartyResponse
}

// SupplierResponse is a supplier in API responses
type SupplierResponse struct {
	PartyResponse
	PaymentTermsDays int `json:"payment_terms_days"`
}

// ToClientResponse converts a domain client
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{PartyResponse: PartyResponse{
		ID:              c.ID,
		Reference:       c.Reference,
		Name:            c.Name,
		Type:            string(c.Type),
		Status:          string(c.Status),
		AllowedStatuses: workflow.Allowed(partner.ClientStatusTransitions, c.Status),
		Email:           c.Contact.Email,
		Phone:           c.Contact.Phone,
		Website:         c.Contact.Website,
		SIREN:           c.Fiscal.SIREN,
		SIRET:           c.Fiscal.SIRET,
		VATNumber:       c.Fiscal.VATNumber,
		Notes:           c.Notes,
		ArchivedAt:      c.ArchivedAt,
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}}
}

// ToSupplierResponse converts a domain supplier
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		PartyResponse: PartyResponse{
			ID:              s.ID,
			Reference:       s.Reference,
			Name:            s.Name,
			Type:            string(s.Type),
			Status:          string(s.Status),
			AllowedStatuses: workflow.Allowed(partner.SupplierStatusTransitions, s.Status),
			Email:           s.Contact.Email,
			Phone:           s.Contact.Phone,
			Website:         s.Contact.Website,
			SIREN:           s.Fiscal.SIREN,
			SIRET:           s.Fiscal.SIRET,
			VATNumber:       s.Fiscal.VATNumber,
			Notes:           s.Notes,
			ArchivedAt:      s.ArchivedAt,
			Version:         s.Version,
			CreatedAt:       s.CreatedAt,
			UpdatedAt:       s.UpdatedAt,
		},
		PaymentTermsDays: s.PaymentTermsDays,
	}
}

// ContactInput creates or updates a contact
type ContactInput struct {
	FirstName string `json:"first_name" validate:"max=100" sanitize:"text"`
	LastName  string `json:"last_name" validate:"max=100" sanitize:"text"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
	Phone     string `json:"phone" validate:"max=30"`
	Position  string `json:"position" validate:"max=100" sanitize:"text"`
	IsPrimary bool   `json:"is_primary"`
}

func (in ContactInput) details() partner.ContactDetails {
	return partner.ContactDetails{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Position:  in.Position,
	}
}

// ContactResponse is a contact in API responses
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerType string    `json:"owner_type"`
	OwnerID   uuid.UUID `json:"owner_id"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Position  string    `json:"position,omitempty"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToContactResponse converts a domain contact
func ToContactResponse(c *partner.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		OwnerType: string(c.Owner.Type),
		OwnerID:   c.Owner.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Email:     c.Email,
		Phone:     c.Phone,
		Position:  c.Position,
		IsPrimary: c.IsPrimary,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// AddressInput creates or updates an address
type AddressInput struct {
	Type       string `json:"type" validate:"omitempty,oneof=BILLING SHIPPING HEADQUARTERS OTHER"`
	Label      string `json:"label" validate:"max=100" sanitize:"text"`
	Line1      string `json:"line1" validate:"required,max=255" sanitize:"text"`
	Line2      string `json:"line2" validate:"max=255" sanitize:"text"`
	PostalCode string `json:"postal_code" validate:"max=20"`
	City       string `json:"city" validate:"required,max=100" sanitize:"text"`
	Region     string `json:"region" validate:"max=100" sanitize:"text"`
	Country    string `json:"country" validate:"omitempty,len=2"`
	IsDefault  bool   `json:"is_default"`
}

func (in AddressInput) details() partner.AddressDetails {
	return partner.AddressDetails{
		Type:       partner.AddressType(in.Type),
		Label:      in.Label,
		Line1:      in.Line1,
		Line2:      in.Line2,
		PostalCode: in.PostalCode,
		City:       in.City,
		Region:     in.Region,
		Country:    in.Country,
	}
}

// AddressResponse is an address in API responses
type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	OwnerType  string    `json:"owner_type"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Type       string    `json:"type"`
	Label      string    `json:"label,omitempty"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	City       string    `json:"city"`
	Region     string    `json:"region,omitempty"`
	Country    string    `json:"country"`
	OneLine    string    `json:"one_line"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToAddressResponse converts a domain address
func ToAddressResponse(a *partner.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		OwnerType:  string(a.Owner.Type),
		OwnerID:    a.Owner.ID,
		Type:       string(a.Type),
		Label:      a.Label,
		Line1:      a.Line1,
		Line2:      a.Line2,
		PostalCode: a.PostalCode,
		City:       a.City,
		Region:     a.Region,
		Country:    a.Country,
		OneLine:    a.OneLine(),
		IsDefault:  a.IsDefault,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
