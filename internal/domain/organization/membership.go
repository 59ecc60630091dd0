package organization

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// Role is a member's level of access inside an organization
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

var roleRank = map[Role]int{
	RoleMember: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

// IsValid reports whether the role is known
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants at least the access of min
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// Membership links a user to an organization
type Membership struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewMembership creates a membership with the given role
func NewMembership(orgID, userID uuid.UUID, role Role) (*Membership, error) {
	if !role.IsValid() {
		return nil, shared.NewFieldError("INVALID_ROLE", "role", "Role must be one of OWNER, ADMIN, MEMBER")
	}
	now := time.Now()
	return &Membership{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// CanGrant reports whether an actor with this role may hand out target
func (r Role) CanGrant(target Role) bool {
	if target == RoleOwner {
		return r == RoleOwner
	}
	return r.AtLeast(RoleAdmin)
}

// ErrLastOwner is returned when an operation would leave the organization without an owner
var ErrLastOwner = shared.NewFieldError("LAST_OWNER", "role", "An organization must keep at least one owner")
