package organization

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// OrganizationRepository persists organizations
type OrganizationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	// FindForUser lists organizations the user is a member of
	FindForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Organization, int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// ExistsBySIREN and ExistsBySIRET look at other organizations only when excludeID is set
	ExistsBySIREN(ctx context.Context, siren string, excludeID *uuid.UUID) (bool, error)
	ExistsBySIRET(ctx context.Context, siret string, excludeID *uuid.UUID) (bool, error)
	// Create stores the organization and its owner membership in one transaction
	Create(ctx context.Context, org *Organization, owner *Membership) error
	Save(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MembershipRepository persists memberships
type MembershipRepository interface {
	Find(ctx context.Context, orgID, userID uuid.UUID) (*Membership, error)
	FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]Membership, error)
	CountOwners(ctx context.Context, orgID uuid.UUID) (int64, error)
	Save(ctx context.Context, m *Membership) error
	Delete(ctx context.Context, orgID, userID uuid.UUID) error
}
