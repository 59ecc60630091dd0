package organization

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/activity"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// OrganizationInput holds the editable fields of an organization
type OrganizationInput struct {
	Name      string `json:"name" validate:"required,max=200" sanitize:"text"`
	LegalName string `json:"legal_name" validate:"max=200" sanitize:"text"`
	SIREN     string `json:"siren" validate:"max=20"`
	SIRET     string `json:"siret" validate:"max=20"`
	VATNumber string `json:"vat_number" validate:"max=20"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
	Phone     string `json:"phone" validate:"max=30"`
	Website   string `json:"website" validate:"omitempty,url,max=255"`
	Currency  string `json:"currency" validate:"omitempty,len=3"`
}

func (in OrganizationInput) details() organization.Details {
	return organization.Details{
		Name:      in.Name,
		LegalName: in.LegalName,
		Currency:  in.Currency,
		Fiscal:    shared.FiscalIDs{SIREN: in.SIREN, SIRET: in.SIRET, VATNumber: in.VATNumber},
		Contact:   shared.ContactInfo{Email: in.Email, Phone: in.Phone, Website: in.Website},
	}
}

// OrganizationResponse is an organization in API responses. Role is the
// requesting user's role and is left out of cached copies.
type OrganizationResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	LegalName  string     `json:"legal_name,omitempty"`
	SIREN      string     `json:"siren,omitempty"`
	SIRET      string     `json:"siret,omitempty"`
	VATNumber  string     `json:"vat_number,omitempty"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Website    string     `json:"website,omitempty"`
	Currency   string     `json:"currency"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Role       string     `json:"role,omitempty"`
}

// ToOrganizationResponse converts a domain organization
func ToOrganizationResponse(o *organization.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:         o.ID,
		Name:       o.Name,
		Slug:       o.Slug,
		LegalName:  o.LegalName,
		SIREN:      o.Fiscal.SIREN,
		SIRET:      o.Fiscal.SIRET,
		VATNumber:  o.Fiscal.VATNumber,
		Email:      o.Contact.Email,
		Phone:      o.Contact.Phone,
		Website:    o.Contact.Website,
		Currency:   o.Currency,
		ArchivedAt: o.ArchivedAt,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// AddMemberInput invites an existing user by email
type AddMemberInput struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=OWNER ADMIN MEMBER"`
}

// ChangeRoleInput sets a member's role
type ChangeRoleInput struct {
	Role string `json:"role" validate:"required,oneof=OWNER ADMIN MEMBER"`
}

// MemberResponse is a membership with the member's identity
type MemberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// StatusCount totals an entity and breaks it down by status
type StatusCount struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// OverviewResponse summarizes what an organization holds
type OverviewResponse struct {
	Clients    StatusCount `json:"clients"`
	Suppliers  StatusCount `json:"suppliers"`
	Products   StatusCount `json:"products"`
	Categories int64       `json:"categories"`
	Companies  int64       `json:"companies"`
	Members    int         `json:"members"`
}

// ActivityResponse is one activity log entry
type ActivityResponse struct {
	ID            uuid.UUID       `json:"id"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	ActorID       *uuid.UUID      `json:"actor_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// ToActivityResponse converts an activity entry
func ToActivityResponse(e activity.Entry) ActivityResponse {
	return ActivityResponse{
		ID:            e.ID,
		EventType:     e.EventType,
		AggregateType: e.AggregateType,
		AggregateID:   e.AggregateID,
		ActorID:       e.ActorID,
		Payload:       e.Payload,
		OccurredAt:    e.OccurredAt,
	}
}
