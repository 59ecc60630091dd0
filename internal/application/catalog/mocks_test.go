package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type fixedRole organization.Role

func (r fixedRole) Find(_ context.Context, orgID, userID uuid.UUID) (*organization.Membership, error) {
	return &organization.Membership{OrganizationID: orgID, UserID: userID, Role: organization.Role(r)}, nil
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, orgID, q, f)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ExistsByReference(ctx context.Context, orgID uuid.UUID, ref string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, ref, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[string]int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, orgID, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return m.Called(ctx, orgID, id).Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*catalog.ProductCategory, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductCategory), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]catalog.ProductCategory, int64, error) {
	args := m.Called(ctx, orgID, q, f)
	return args.Get(0).([]catalog.ProductCategory), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, orgID uuid.UUID, includeArchived bool) ([]*catalog.ProductCategory, error) {
	args := m.Called(ctx, orgID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.ProductCategory), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, orgID uuid.UUID, parentID *uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, parentID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) CountChildren(ctx context.Context, orgID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, c *catalog.ProductCategory) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return m.Called(ctx, orgID, id).Error(0)
}

type MockSupplierFinder struct {
	mock.Mock
}

func (m *MockSupplierFinder) FindByID(ctx context.Context, orgID, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}
