package company

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/company"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type fixedRole organization.Role

func (r fixedRole) Find(_ context.Context, orgID, userID uuid.UUID) (*organization.Membership, error) {
	return &organization.Membership{OrganizationID: orgID, UserID: userID, Role: organization.Role(r)}, nil
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindMain(ctx context.Context, orgID uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) List(ctx context.Context, orgID uuid.UUID, q shared.Query, f shared.Filter) ([]company.Company, int64, error) {
	args := m.Called(ctx, orgID, q, f)
	return args.Get(0).([]company.Company), args.Get(1).(int64), args.Error(2)
}

func (m *MockCompanyRepository) ExistsBy(ctx context.Context, orgID uuid.UUID, column, value string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, orgID, column, value, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Count(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepository) SaveAsMain(ctx context.Context, c *company.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return m.Called(ctx, orgID, id).Error(0)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) PresignUpload(ctx context.Context, key, contentType string) (*PresignedURL, error) {
	args := m.Called(ctx, key, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PresignedURL), args.Error(1)
}

func (m *MockObjectStorage) PresignDownload(ctx context.Context, key string) (*PresignedURL, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PresignedURL), args.Error(1)
}

func (m *MockObjectStorage) Stat(ctx context.Context, key string) (*ObjectInfo, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ObjectInfo), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
