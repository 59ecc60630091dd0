package organization

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/domain/activity"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *Service
	orgs     *MockOrganizationRepository
	members  *MockMembershipRepository
	users    *MockUserRepository
	activity *MockActivityRepository
	clients  *MockCounter
	others   *MockCounter
	orgID    uuid.UUID
	actorID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		orgs:     new(MockOrganizationRepository),
		members:  new(MockMembershipRepository),
		users:    new(MockUserRepository),
		activity: new(MockActivityRepository),
		clients:  new(MockCounter),
		others:   new(MockCounter),
		orgID:    uuid.New(),
		actorID:  uuid.New(),
	}
	tags := cache.NewMemoryTagCache()
	t.Cleanup(tags.Close)
	exec := action.NewExecutor(f.members, action.WithCache(tags))
	f.svc = NewService(f.orgs, f.members, f.users, f.activity, OverviewSources{
		Clients:    f.clients,
		Suppliers:  f.others,
		Products:   f.others,
		Categories: f.others,
		Companies:  f.others,
	}, exec, time.Minute)
	return f
}

func (f *fixture) ctx() context.Context {
	return action.WithActor(context.Background(), &action.Actor{UserID: f.actorID})
}

func (f *fixture) as(role organization.Role) {
	f.members.On("Find", mock.Anything, f.orgID, f.actorID).
		Return(&organization.Membership{OrganizationID: f.orgID, UserID: f.actorID, Role: role}, nil)
}

func (f *fixture) existingOrg(t *testing.T) *organization.Organization {
	t.Helper()
	org, err := organization.NewOrganization(f.actorID, organization.Details{Name: "Atelier Durand"})
	require.NoError(t, err)
	org.ID = f.orgID
	org.ClearDomainEvents()
	return org
}

func TestService_Create(t *testing.T) {
	f := newFixture(t)
	f.orgs.On("ExistsBySIREN", mock.Anything, "123456789", (*uuid.UUID)(nil)).Return(false, nil)
	f.orgs.On("ExistsBySlug", mock.Anything, "atelier-durand").Return(true, nil).Once()
	f.orgs.On("ExistsBySlug", mock.Anything, mock.Anything).Return(false, nil)
	f.orgs.On("Create", mock.Anything, mock.AnythingOfType("*organization.Organization"), mock.MatchedBy(func(m *organization.Membership) bool {
		return m.UserID == f.actorID && m.Role == organization.RoleOwner
	})).Return(nil)

	r := f.svc.Create(f.ctx(), OrganizationInput{Name: "Atelier Durand", SIREN: "123 456 789"})

	require.True(t, r.OK(), r.Message)
	assert.True(t, strings.HasPrefix(r.Data.Slug, "atelier-durand-"))
	assert.Equal(t, "OWNER", r.Data.Role)
	assert.Equal(t, "123456789", r.Data.SIREN)
	f.orgs.AssertExpectations(t)
}

func TestService_Create_DuplicateSIREN(t *testing.T) {
	f := newFixture(t)
	f.orgs.On("ExistsBySIREN", mock.Anything, "123456789", (*uuid.UUID)(nil)).Return(true, nil)

	r := f.svc.Create(f.ctx(), OrganizationInput{Name: "Atelier Durand", SIREN: "123456789"})

	assert.Equal(t, action.StatusConflict, r.Status)
	assert.Equal(t, "DUPLICATE_SIREN", r.Code)
	f.orgs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_RequiresActor(t *testing.T) {
	f := newFixture(t)
	r := f.svc.Create(context.Background(), OrganizationInput{Name: "Atelier"})
	assert.Equal(t, action.StatusUnauthorized, r.Status)
}

func TestService_Get_ForbiddenForOutsiders(t *testing.T) {
	f := newFixture(t)
	f.members.On("Find", mock.Anything, f.orgID, f.actorID).Return(nil, shared.ErrNotFound)

	r := f.svc.Get(f.ctx(), f.orgID)

	assert.Equal(t, action.StatusForbidden, r.Status)
	f.orgs.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestService_Get_CachesAndAddsRole(t *testing.T) {
	f := newFixture(t)
	f.as(organization.RoleAdmin)
	f.orgs.On("FindByID", mock.Anything, f.orgID).Return(f.existingOrg(t), nil).Once()

	first := f.svc.Get(f.ctx(), f.orgID)
	second := f.svc.Get(f.ctx(), f.orgID)

	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.Equal(t, "ADMIN", second.Data.Role)
	assert.Equal(t, first.Data.Name, second.Data.Name)
	f.orgs.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestService_Update_InvalidatesCache(t *testing.T) {
	f := newFixture(t)
	f.as(organization.RoleAdmin)
	org := f.existingOrg(t)
	f.orgs.On("FindByID", mock.Anything, f.orgID).Return(org, nil)
	f.orgs.On("Save", mock.Anything, org).Return(nil)

	require.True(t, f.svc.Get(f.ctx(), f.orgID).OK())
	r := f.svc.Update(f.ctx(), f.orgID, OrganizationInput{Name: "Durand & Fils"})
	require.True(t, r.OK(), r.Message)

	again := f.svc.Get(f.ctx(), f.orgID)
	assert.Equal(t, "Durand & Fils", again.Data.Name)
	f.orgs.AssertNumberOfCalls(t, "FindByID", 3)
}

func TestService_Update_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	f.as(organization.RoleMember)

	r := f.svc.Update(f.ctx(), f.orgID, OrganizationInput{Name: "X"})

	assert.Equal(t, action.StatusForbidden, r.Status)
}

func TestService_ArchiveRestore(t *testing.T) {
	f := newFixture(t)
	f.as(organization.RoleOwner)
	org := f.existingOrg(t)
	f.orgs.On("FindByID", mock.Anything, f.orgID).Return(org, nil)
	f.orgs.On("Save", mock.Anything, org).Return(nil)

	r := f.svc.Archive(f.ctx(), f.orgID)
	require.True(t, r.OK())
	assert.NotNil(t, r.Data.ArchivedAt)

	again := f.svc.Archive(f.ctx(), f.orgID)
	assert.Equal(t, action.StatusValidationError, again.Status)

	r = f.svc.Restore(f.ctx(), f.orgID)
	require.True(t, r.OK())
	assert.Nil(t, r.Data.ArchivedAt)
}

func TestService_Delete_OwnersOnly(t *testing.T) {
	f := newFixture(t)
	f.as(organization.RoleAdmin)
	assert.Equal(t, action.StatusForbidden, f.svc.Delete(f.ctx(), f.orgID).Status)

	g := newFixture(t)
	g.as(organization.RoleOwner)
	g.orgs.On("Delete", mock.Anything, g.orgID).Return(nil)
	assert.True(t, g.svc.Delete(g.ctx(), g.orgID).OK())
	g.orgs.AssertExpectations(t)
}

func TestService_AddMember(t *testing.T) {
	newcomer := &identity.User{Email: "bob@example.com", Name: "Bob"}
	newcomer.ID = uuid.New()

	t.Run("admin cannot grant owner", func(t *testing.T) {
		f := newFixture(t)
		f.as(organization.RoleAdmin)
		r := f.svc.AddMember(f.ctx(), f.orgID, AddMemberInput{Email: "bob@example.com", Role: "OWNER"})
		assert.Equal(t, action.StatusForbidden, r.Status)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t)
		f.as(organization.RoleAdmin)
		f.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)
		r := f.svc.AddMember(f.ctx(), f.orgID, AddMemberInput{Email: "ghost@example.com", Role: "MEMBER"})
		assert.Equal(t, action.StatusNotFound, r.Status)
	})

	t.Run("already a member", func(t *testing.T) {
		f := newFixture(t)
		f.as(organization.RoleAdmin)
		f.users.On("FindByEmail", mock.Anything, "bob@example.com").Return(newcomer, nil)
		f.members.On("Find", mock.Anything, f.orgID, newcomer.ID).Return(&organization.Membership{Role: organization.RoleMember}, nil)
		r := f.svc.AddMember(f.ctx(), f.orgID, AddMemberInput{Email: "bob@example.com", Role: "MEMBER"})
		assert.Equal(t, action.StatusConflict, r.Status)
	})

	t.Run("invalid role", func(t *testing.T) {
		f := newFixture(t)
		f.as(organization.RoleOwner)
		r := f.svc.AddMember(f.ctx(), f.orgID, AddMemberInput{Email: "bob@example.com", Role: "GUEST"})
		assert.Equal(t, action.StatusValidationError, r.Status)
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.as(organization.RoleAdmin)
		f.users.On("FindByEmail", mock.Anything, "bob@example.com").Return(newcomer, nil)
		f.members.On("Find", mock.Anything, f.orgID, newcomer.ID).Return(nil, shared.ErrNotFound)
		f.members.On("Save", mock.Anything, mock.MatchedBy(func(m *organization.Membership) bool {
			return m.UserID == newcomer.ID && m.Role == organization.RoleAdmin
		})).Return(nil)

		r := f.svc.AddMember(f.ctx(), f.orgID, AddMemberInput{Email: "bob@example.com", Role: "ADMIN"})

		require.True(t, r.OK(), r.Message)
		assert.Equal(t, "Bob", r.Data.Name)
		f.members.AssertExpectations(t)
	})
}

func TestService_ChangeMemberRole(t *testing.T) {
	t.Run("last owner cannot step down", func(t *testing.T) {
		f := newFixture(t)
		f.as(organization.RoleOwner)
		f.members.On("CountOwners", mock.Anything, f.orgID).Return(int64(1), nil)

		r := f.svc.ChangeMemberRole(f.ctx(), f.orgID, f.actorID, ChangeRoleInput{Role: "ADMIN"})

		assert.Equal(t, action.StatusValidationError, r.Status)
		assert.Equal(t, "LAST_OWNER", r.Code)
		f.members.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("admin cannot demote an owner", func(t *testing.T) {
		f := newFixture(t)
		f.as(organization.RoleAdmin)
		owner := uuid.New()
		f.members.On("Find", mock.Anything, f.orgID, owner).Return(&organization.Membership{UserID: owner, Role: organization.RoleOwner}, nil)

		r := f.svc.ChangeMemberRole(f.ctx(), f.orgID, owner, ChangeRoleInput{Role: "MEMBER"})

		assert.Equal(t, action.StatusForbidden, r.Status)
	})

	t.Run("owner hands over", func(t *testing.T) {
		f := newFixture(t)
		f.as(organization.RoleOwner)
		other := uuid.New()
		target := &organization.Membership{UserID: other, Role: organization.RoleMember}
		f.members.On("Find", mock.Anything, f.orgID, other).Return(target, nil)
		f.members.On("Save", mock.Anything, target).Return(nil)
		f.users.On("FindByID", mock.Anything, other).Return(nil, shared.ErrNotFound)

		r := f.svc.ChangeMemberRole(f.ctx(), f.orgID, other, ChangeRoleInput{Role: "OWNER"})

		require.True(t, r.OK())
		assert.Equal(t, organization.RoleOwner, target.Role)
	})
}

func TestService_RemoveMember(t *testing.T) {
	t.Run("members cannot remove others", func(t *testing.T) {
		f := newFixture(t)
		f.as(organization.RoleMember)
		r := f.svc.RemoveMember(f.ctx(), f.orgID, uuid.New())
		assert.Equal(t, action.StatusForbidden, r.Status)
	})

	t.Run("members can leave", func(t *testing.T) {
		f := newFixture(t)
		f.as(organization.RoleMember)
		f.members.On("Delete", mock.Anything, f.orgID, f.actorID).Return(nil)
		assert.True(t, f.svc.RemoveMember(f.ctx(), f.orgID, f.actorID).OK())
	})

	t.Run("last owner cannot leave", func(t *testing.T) {
		f := newFixture(t)
		f.as(organization.RoleOwner)
		f.members.On("CountOwners", mock.Anything, f.orgID).Return(int64(1), nil)
		r := f.svc.RemoveMember(f.ctx(), f.orgID, f.actorID)
		assert.Equal(t, "LAST_OWNER", r.Code)
	})
}

func TestService_Overview(t *testing.T) {
	f := newFixture(t)
	f.as(organization.RoleMember)
	f.clients.On("CountByStatus", mock.Anything, f.orgID).Return(map[string]int64{"LEAD": 2, "ACTIVE": 3}, nil)
	f.others.On("CountByStatus", mock.Anything, f.orgID).Return(map[string]int64{"ACTIVE": 1}, nil)
	f.others.On("Count", mock.Anything, f.orgID).Return(int64(4), nil)
	f.members.On("FindByOrganization", mock.Anything, f.orgID).Return(make([]organization.Membership, 2), nil)

	r := f.svc.Overview(f.ctx(), f.orgID)

	require.True(t, r.OK(), r.Message)
	assert.Equal(t, int64(5), r.Data.Clients.Total)
	assert.Equal(t, int64(3), r.Data.Clients.ByStatus["ACTIVE"])
	assert.Equal(t, int64(1), r.Data.Suppliers.Total)
	assert.Equal(t, int64(4), r.Data.Categories)
	assert.Equal(t, int64(4), r.Data.Companies)
	assert.Equal(t, 2, r.Data.Members)
}

func TestService_Overview_FailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.as(organization.RoleMember)
	f.clients.On("CountByStatus", mock.Anything, f.orgID).Return(nil, errors.New("connection reset"))
	f.others.On("CountByStatus", mock.Anything, f.orgID).Return(map[string]int64{}, nil)
	f.others.On("Count", mock.Anything, f.orgID).Return(int64(0), nil)
	f.members.On("FindByOrganization", mock.Anything, f.orgID).Return([]organization.Membership{}, nil)

	r := f.svc.Overview(f.ctx(), f.orgID)

	assert.Equal(t, action.StatusError, r.Status)
	assert.NotContains(t, r.Message, "connection reset")
}

func TestService_Activity(t *testing.T) {
	f := newFixture(t)
	f.as(organization.RoleMember)
	aggID := uuid.New()
	entry := activity.Entry{ID: uuid.New(), EventType: "client.created", AggregateID: aggID, Payload: []byte(`{}`)}
	f.activity.On("List", mock.Anything, f.orgID, mock.MatchedBy(func(q shared.Query) bool {
		return len(q.Predicates) == 1 && q.Predicates[0].Column == "aggregate_id"
	}), mock.Anything).Return([]activity.Entry{entry}, int64(1), nil)

	r := f.svc.Activity(f.ctx(), f.orgID, shared.Filter{Filters: map[string]any{"aggregateId": aggID.String(), "bogus": 1}})

	require.True(t, r.OK(), r.Message)
	require.Len(t, r.Data.Items, 1)
	assert.Equal(t, "client.created", r.Data.Items[0].EventType)
	assert.Equal(t, 20, r.Data.PageSize)
}
