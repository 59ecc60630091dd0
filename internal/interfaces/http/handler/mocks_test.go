package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	catalogapp "github.com/orgdesk/backend/internal/application/catalog"
	identityapp "github.com/orgdesk/backend/internal/application/identity"
	partnerapp "github.com/orgdesk/backend/internal/application/partner"
	"github.com/orgdesk/backend/internal/application/workflow"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockLifecycle implements LifecycleAPI for any entity
type MockLifecycle[In, S, Out any] struct {
	mock.Mock
}

func (m *MockLifecycle[In, S, Out]) Create(ctx context.Context, orgID uuid.UUID, in In) action.Result[Out] {
	return m.Called(ctx, orgID, in).Get(0).(action.Result[Out])
}

func (m *MockLifecycle[In, S, Out]) Get(ctx context.Context, orgID, id uuid.UUID) action.Result[Out] {
	return m.Called(ctx, orgID, id).Get(0).(action.Result[Out])
}

func (m *MockLifecycle[In, S, Out]) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[Out]] {
	return m.Called(ctx, orgID, filter).Get(0).(action.Result[shared.Paginated[Out]])
}

func (m *MockLifecycle[In, S, Out]) Update(ctx context.Context, orgID, id uuid.UUID, in In) action.Result[Out] {
	return m.Called(ctx, orgID, id, in).Get(0).(action.Result[Out])
}

func (m *MockLifecycle[In, S, Out]) ChangeStatus(ctx context.Context, orgID, id uuid.UUID, in S) action.Result[Out] {
	return m.Called(ctx, orgID, id, in).Get(0).(action.Result[Out])
}

func (m *MockLifecycle[In, S, Out]) Archive(ctx context.Context, orgID, id uuid.UUID) action.Result[Out] {
	return m.Called(ctx, orgID, id).Get(0).(action.Result[Out])
}

func (m *MockLifecycle[In, S, Out]) Restore(ctx context.Context, orgID, id uuid.UUID) action.Result[Out] {
	return m.Called(ctx, orgID, id).Get(0).(action.Result[Out])
}

func (m *MockLifecycle[In, S, Out]) Delete(ctx context.Context, orgID, id uuid.UUID) action.Result[struct{}] {
	return m.Called(ctx, orgID, id).Get(0).(action.Result[struct{}])
}

func (m *MockLifecycle[In, S, Out]) Transitions(ctx context.Context, orgID uuid.UUID) action.Result[workflow.Transitions] {
	return m.Called(ctx, orgID).Get(0).(action.Result[workflow.Transitions])
}

type MockClientAPI = MockLifecycle[partnerapp.ClientInput, partnerapp.StatusInput, partnerapp.ClientResponse]
type MockProductAPI = MockLifecycle[catalogapp.ProductInput, catalogapp.StatusInput, catalogapp.ProductResponse]

// MockCategoryAPI implements CategoryAPI
type MockCategoryAPI struct {
	mock.Mock
}

func (m *MockCategoryAPI) Create(ctx context.Context, orgID uuid.UUID, in catalogapp.CategoryInput) action.Result[catalogapp.CategoryResponse] {
	return m.Called(ctx, orgID, in).Get(0).(action.Result[catalogapp.CategoryResponse])
}

func (m *MockCategoryAPI) Get(ctx context.Context, orgID, id uuid.UUID) action.Result[catalogapp.CategoryResponse] {
	return m.Called(ctx, orgID, id).Get(0).(action.Result[catalogapp.CategoryResponse])
}

func (m *MockCategoryAPI) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[catalogapp.CategoryResponse]] {
	return m.Called(ctx, orgID, filter).Get(0).(action.Result[shared.Paginated[catalogapp.CategoryResponse]])
}

func (m *MockCategoryAPI) Tree(ctx context.Context, orgID uuid.UUID, q catalogapp.TreeQuery) action.Result[[]catalogapp.CategoryTreeNode] {
	return m.Called(ctx, orgID, q).Get(0).(action.Result[[]catalogapp.CategoryTreeNode])
}

func (m *MockCategoryAPI) Update(ctx context.Context, orgID, id uuid.UUID, in catalogapp.CategoryInput) action.Result[catalogapp.CategoryResponse] {
	return m.Called(ctx, orgID, id, in).Get(0).(action.Result[catalogapp.CategoryResponse])
}

func (m *MockCategoryAPI) Move(ctx context.Context, orgID, id uuid.UUID, in catalogapp.MoveInput) action.Result[catalogapp.CategoryResponse] {
	return m.Called(ctx, orgID, id, in).Get(0).(action.Result[catalogapp.CategoryResponse])
}

func (m *MockCategoryAPI) Archive(ctx context.Context, orgID, id uuid.UUID) action.Result[catalogapp.CategoryResponse] {
	return m.Called(ctx, orgID, id).Get(0).(action.Result[catalogapp.CategoryResponse])
}

func (m *MockCategoryAPI) Restore(ctx context.Context, orgID, id uuid.UUID) action.Result[catalogapp.CategoryResponse] {
	return m.Called(ctx, orgID, id).Get(0).(action.Result[catalogapp.CategoryResponse])
}

func (m *MockCategoryAPI) Delete(ctx context.Context, orgID, id uuid.UUID) action.Result[struct{}] {
	return m.Called(ctx, orgID, id).Get(0).(action.Result[struct{}])
}

// MockAddressAPI implements AddressAPI
type MockAddressAPI struct {
	mock.Mock
}

func (m *MockAddressAPI) List(ctx context.Context, orgID uuid.UUID, owner partner.Owner) action.Result[[]partnerapp.AddressResponse] {
	return m.Called(ctx, orgID, owner).Get(0).(action.Result[[]partnerapp.AddressResponse])
}

func (m *MockAddressAPI) Create(ctx context.Context, orgID uuid.UUID, owner partner.Owner, in partnerapp.AddressInput) action.Result[partnerapp.AddressResponse] {
	return m.Called(ctx, orgID, owner, in).Get(0).(action.Result[partnerapp.AddressResponse])
}

func (m *MockAddressAPI) Update(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID, in partnerapp.AddressInput) action.Result[partnerapp.AddressResponse] {
	return m.Called(ctx, orgID, owner, id, in).Get(0).(action.Result[partnerapp.AddressResponse])
}

func (m *MockAddressAPI) SetDefault(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) action.Result[partnerapp.AddressResponse] {
	return m.Called(ctx, orgID, owner, id).Get(0).(action.Result[partnerapp.AddressResponse])
}

func (m *MockAddressAPI) Delete(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) action.Result[struct{}] {
	return m.Called(ctx, orgID, owner, id).Get(0).(action.Result[struct{}])
}

// MockAuthAPI implements AuthAPI
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Register(ctx context.Context, in identityapp.RegisterInput) action.Result[*identityapp.AuthResult] {
	return m.Called(ctx, in).Get(0).(action.Result[*identityapp.AuthResult])
}

func (m *MockAuthAPI) Login(ctx context.Context, in identityapp.LoginInput) action.Result[*identityapp.AuthResult] {
	return m.Called(ctx, in).Get(0).(action.Result[*identityapp.AuthResult])
}

func (m *MockAuthAPI) Refresh(ctx context.Context, in identityapp.RefreshInput) action.Result[*identityapp.AuthResult] {
	return m.Called(ctx, in).Get(0).(action.Result[*identityapp.AuthResult])
}

func (m *MockAuthAPI) Me(ctx context.Context) action.Result[identityapp.UserResponse] {
	return m.Called(ctx).Get(0).(action.Result[identityapp.UserResponse])
}

func (m *MockAuthAPI) Logout(ctx context.Context, in identityapp.LogoutInput) action.Result[struct{}] {
	return m.Called(ctx, in).Get(0).(action.Result[struct{}])
}

func (m *MockAuthAPI) ChangePassword(ctx context.Context, in identityapp.ChangePasswordInput) action.Result[struct{}] {
	return m.Called(ctx, in).Get(0).(action.Result[struct{}])
}
