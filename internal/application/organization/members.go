package organization

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	ErrAlreadyMember = shared.NewFieldError("DUPLICATE_MEMBER", "email", "This user is already a member")
	ErrUnknownUser   = shared.NewDomainError(shared.ErrNotFound.Code, "No account uses this email")
)

func forbidden(message string) error {
	return shared.NewDomainError(shared.ErrForbidden.Code, message)
}

// ListMembers lists an organization's members with their names
func (s *Service) ListMembers(ctx context.Context, orgID uuid.UUID) action.Result[[]MemberResponse] {
	op := action.Op[[]MemberResponse]{Name: "organization.members.list", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) ([]MemberResponse, error) {
		memberships, err := s.members.FindByOrganization(ctx, orgID)
		if err != nil {
			return nil, err
		}
		ids := make([]uuid.UUID, len(memberships))
		for i, m := range memberships {
			ids[i] = m.UserID
		}
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[uuid.UUID]int, len(users))
		for i, u := range users {
			byID[u.ID] = i
		}

		out := make([]MemberResponse, 0, len(memberships))
		for _, m := range memberships {
			r := MemberResponse{UserID: m.UserID, Role: string(m.Role), JoinedAt: m.CreatedAt}
			if i, ok := byID[m.UserID]; ok {
				r.Email = users[i].Email
				r.Name = users[i].Name
			}
			out = append(out, r)
		}
		return out, nil
	})
}

// AddMember gives an existing user a role in the organization.
// Only owners can grant OWNER.
func (s *Service) AddMember(ctx context.Context, orgID uuid.UUID, in AddMemberInput) action.Result[MemberResponse] {
	op := action.Op[MemberResponse]{
		Name:           "organization.members.add",
		OrganizationID: orgID,
		MinRole:        organization.RoleAdmin,
		Input:          &in,
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (MemberResponse, error) {
		role := organization.Role(in.Role)
		if !sc.Role.CanGrant(role) {
			return MemberResponse{}, forbidden("Only an owner can grant the " + in.Role + " role")
		}
		user, err := s.users.FindByEmail(ctx, in.Email)
		if errors.Is(err, shared.ErrNotFound) {
			return MemberResponse{}, ErrUnknownUser
		}
		if err != nil {
			return MemberResponse{}, err
		}
		_, err = s.members.Find(ctx, orgID, user.ID)
		switch {
		case err == nil:
			return MemberResponse{}, ErrAlreadyMember
		case !errors.Is(err, shared.ErrNotFound):
			return MemberResponse{}, err
		}

		m, err := organization.NewMembership(orgID, user.ID, role)
		if err != nil {
			return MemberResponse{}, err
		}
		if err := s.members.Save(ctx, m); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return MemberResponse{}, ErrAlreadyMember
			}
			return MemberResponse{}, err
		}
		s.exec.PublishEvents(ctx, shared.NewLifecycleEvent(organization.AggregateTypeOrganization, "member_added", orgID, orgID))
		sc.Logger.Info("member added", zap.String("user_id", user.ID.String()), zap.String("role", in.Role))
		return MemberResponse{UserID: user.ID, Email: user.Email, Name: user.Name, Role: in.Role, JoinedAt: m.CreatedAt}, nil
	})
}

// ChangeMemberRole sets a member's role. Admins cannot touch owners, and the
// last owner cannot be demoted.
func (s *Service) ChangeMemberRole(ctx context.Context, orgID, userID uuid.UUID, in ChangeRoleInput) action.Result[MemberResponse] {
	op := action.Op[MemberResponse]{
		Name:           "organization.members.change_role",
		OrganizationID: orgID,
		MinRole:        organization.RoleAdmin,
		Input:          &in,
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (MemberResponse, error) {
		target, err := s.members.Find(ctx, orgID, userID)
		if err != nil {
			return MemberResponse{}, err
		}
		role := organization.Role(in.Role)
		if target.Role == organization.RoleOwner && sc.Role != organization.RoleOwner {
			return MemberResponse{}, forbidden("Only an owner can change another owner's role")
		}
		if !sc.Role.CanGrant(role) {
			return MemberResponse{}, forbidden("Only an owner can grant the " + in.Role + " role")
		}
		if target.Role == organization.RoleOwner && role != organization.RoleOwner {
			if err := s.ensureAnotherOwner(ctx, orgID); err != nil {
				return MemberResponse{}, err
			}
		}

		target.Role = role
		if err := s.members.Save(ctx, target); err != nil {
			return MemberResponse{}, err
		}
		s.exec.PublishEvents(ctx, shared.NewLifecycleEvent(organization.AggregateTypeOrganization, "member_role_changed", orgID, orgID))
		resp := MemberResponse{UserID: userID, Role: in.Role, JoinedAt: target.CreatedAt}
		if u, err := s.users.FindByID(ctx, userID); err == nil {
			resp.Email, resp.Name = u.Email, u.Name
		}
		return resp, nil
	})
}

// RemoveMember takes a user out of the organization. Members may remove
// themselves; removing others takes ADMIN, and removing an owner takes OWNER.
func (s *Service) RemoveMember(ctx context.Context, orgID, userID uuid.UUID) action.Result[struct{}] {
	op := action.Op[struct{}]{Name: "organization.members.remove", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (struct{}, error) {
		self := userID == sc.Actor.UserID
		if !self && !sc.Role.AtLeast(organization.RoleAdmin) {
			return struct{}{}, forbidden("This action requires the ADMIN role")
		}
		target, err := s.members.Find(ctx, orgID, userID)
		if err != nil {
			return struct{}{}, err
		}
		if target.Role == organization.RoleOwner {
			if !self && sc.Role != organization.RoleOwner {
				return struct{}{}, forbidden("Only an owner can remove another owner")
			}
			if err := s.ensureAnotherOwner(ctx, orgID); err != nil {
				return struct{}{}, err
			}
		}
		if err := s.members.Delete(ctx, orgID, userID); err != nil {
			return struct{}{}, err
		}
		s.exec.PublishEvents(ctx, shared.NewLifecycleEvent(organization.AggregateTypeOrganization, "member_removed", orgID, orgID))
		return struct{}{}, nil
	})
}

func (s *Service) ensureAnotherOwner(ctx context.Context, orgID uuid.UUID) error {
	owners, err := s.members.CountOwners(ctx, orgID)
	if err != nil {
		return err
	}
	if owners <= 1 {
		return organization.ErrLastOwner
	}
	return nil
}
