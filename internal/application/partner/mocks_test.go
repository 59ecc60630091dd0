package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/company"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// fixedRole makes every actor a member with the same role
type fixedRole organization.Role

func (r fixedRole) Find(_ context.Context, orgID, userID uuid.UUID) (*organization.Membership, error) {
	if r == "" {
		return nil, shared.ErrNotFound
	}
	return &organization.Membership{OrganizationID: orgID, UserID: userID, Role: organization.Role(r)}, nil
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]partner.Client, int64, error) {
	args := m.Called(ctx, orgID, q, f)
	return args.Get(0).([]partner.Client), args.Get(1).(int64), args.Error(2)
}

func (m *MockClientRepository) ExistsBy(ctx context.Context, orgID uuid.UUID, field partner.UniqueField, value string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, field, value, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[string]int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, c *partner.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return m.Called(ctx, orgID, id).Error(0)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]partner.Supplier, int64, error) {
	args := m.Called(ctx, orgID, q, f)
	return args.Get(0).([]partner.Supplier), args.Get(1).(int64), args.Error(2)
}

func (m *MockSupplierRepository) ExistsBy(ctx context.Context, orgID uuid.UUID, field partner.UniqueField, value string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, field, value, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[string]int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, s *partner.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return m.Called(ctx, orgID, id).Error(0)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*partner.Contact, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Contact), args.Error(1)
}

func (m *MockContactRepository) ListByOwner(ctx context.Context, orgID uuid.UUID, owner partner.Owner) ([]partner.Contact, error) {
	args := m.Called(ctx, orgID, owner)
	return args.Get(0).([]partner.Contact), args.Error(1)
}

func (m *MockContactRepository) Save(ctx context.Context, c *partner.Contact) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockContactRepository) SaveAsPrimary(ctx context.Context, c *partner.Contact) error {
	err := m.Called(ctx, c).Error(0)
	if err == nil {
		c.IsPrimary = true
	}
	return err
}

func (m *MockContactRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return m.Called(ctx, orgID, id).Error(0)
}

type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*partner.Address, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Address), args.Error(1)
}

func (m *MockAddressRepository) ListByOwner(ctx context.Context, orgID uuid.UUID, owner partner.Owner) ([]partner.Address, error) {
	args := m.Called(ctx, orgID, owner)
	return args.Get(0).([]partner.Address), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, a *partner.Address) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAddressRepository) SaveAsDefault(ctx context.Context, a *partner.Address) error {
	err := m.Called(ctx, a).Error(0)
	if err == nil {
		a.IsDefault = true
	}
	return err
}

func (m *MockAddressRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return m.Called(ctx, orgID, id).Error(0)
}

type MockCompanyFinder struct {
	mock.Mock
}

func (m *MockCompanyFinder) FindByID(ctx context.Context, orgID, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}
