package organization

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/activity"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]organization.Organization, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]organization.Organization), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrganizationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrganizationRepository) ExistsBySIREN(ctx context.Context, siren string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, siren, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrganizationRepository) ExistsBySIRET(ctx context.Context, siret string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, siret, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *organization.Organization, owner *organization.Membership) error {
	return m.Called(ctx, org, owner).Error(0)
}

func (m *MockOrganizationRepository) Save(ctx context.Context, org *organization.Organization) error {
	return m.Called(ctx, org).Error(0)
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Find(ctx context.Context, orgID, userID uuid.UUID) (*organization.Membership, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]organization.Membership, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]organization.Membership), args.Error(1)
}

func (m *MockMembershipRepository) CountOwners(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMembershipRepository) Save(ctx context.Context, membership *organization.Membership) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, orgID, userID uuid.UUID) error {
	return m.Called(ctx, orgID, userID).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Append(ctx context.Context, entries ...*activity.Entry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockActivityRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]activity.Entry, int64, error) {
	args := m.Called(ctx, orgID, q, f)
	return args.Get(0).([]activity.Entry), args.Get(1).(int64), args.Error(2)
}

type MockCounter struct {
	mock.Mock
}

func (m *MockCounter) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[string]int64, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockCounter) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}
