package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/application/workflow"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testOrgID = uuid.New()

func actorCtx() context.Context {
	return action.WithActor(context.Background(), &action.Actor{UserID: uuid.New()})
}

func newExecutor(t *testing.T, role organization.Role) *action.Executor {
	t.Helper()
	tags := cache.NewMemoryTagCache()
	t.Cleanup(tags.Close)
	return action.NewExecutor(fixedRole(role), action.WithCache(tags))
}

type productFixture struct {
	svc        *ProductService
	products   *MockProductRepository
	categories *MockCategoryRepository
	suppliers  *MockSupplierFinder
}

func newProductFixture(t *testing.T, role organization.Role) *productFixture {
	t.Helper()
	f := &productFixture{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		suppliers:  new(MockSupplierFinder),
	}
	f.svc = NewProductService(f.products, f.categories, f.suppliers, newExecutor(t, role), workflow.Policy{Enforce: true}, time.Minute)
	return f
}

func productInput() ProductInput {
	return ProductInput{
		Reference: "prd-001",
		Name:      "Baguette tradition",
		UnitPrice: decimal.RequireFromString("1.10"),
		VATRate:   decimal.RequireFromString("5.5"),
	}
}

func TestProductService_Create(t *testing.T) {
	f := newProductFixture(t, organization.RoleMember)
	categoryID, supplierID := uuid.New(), uuid.New()
	f.products.On("ExistsByReference", mock.Anything, testOrgID, "PRD-001", (*uuid.UUID)(nil)).Return(false, nil)
	f.categories.On("FindByID", mock.Anything, testOrgID, categoryID).Return(&catalog.ProductCategory{}, nil)
	f.suppliers.On("FindByID", mock.Anything, testOrgID, supplierID).Return(&partner.Supplier{}, nil)
	f.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	in := productInput()
	in.CategoryID = &categoryID
	in.SupplierID = &supplierID
	r := f.svc.Create(actorCtx(), testOrgID, in)

	require.True(t, r.OK(), r.Message)
	assert.Equal(t, "DRAFT", r.Data.Status)
	assert.Equal(t, "GOOD", r.Data.Type)
	assert.True(t, decimal.RequireFromString("1.16").Equal(r.Data.PriceWithVAT), r.Data.PriceWithVAT.String())
	assert.Equal(t, &categoryID, r.Data.CategoryID)
}

func TestProductService_Create_ForeignCategory(t *testing.T) {
	f := newProductFixture(t, organization.RoleMember)
	categoryID := uuid.New()
	f.products.On("ExistsByReference", mock.Anything, testOrgID, "PRD-001", (*uuid.UUID)(nil)).Return(false, nil)
	f.categories.On("FindByID", mock.Anything, testOrgID, categoryID).Return(nil, shared.ErrNotFound)

	in := productInput()
	in.CategoryID = &categoryID
	r := f.svc.Create(actorCtx(), testOrgID, in)

	assert.Equal(t, action.StatusValidationError, r.Status)
	assert.Equal(t, "INVALID_CATEGORY", r.Code)
	require.Len(t, r.FieldErrors, 1)
	assert.Equal(t, "category_id", r.FieldErrors[0].Field)
	f.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Create_ForeignSupplier(t *testing.T) {
	f := newProductFixture(t, organization.RoleMember)
	supplierID := uuid.New()
	f.products.On("ExistsByReference", mock.Anything, testOrgID, "PRD-001", (*uuid.UUID)(nil)).Return(false, nil)
	f.suppliers.On("FindByID", mock.Anything, testOrgID, supplierID).Return(nil, shared.ErrNotFound)

	in := productInput()
	in.SupplierID = &supplierID
	r := f.svc.Create(actorCtx(), testOrgID, in)

	assert.Equal(t, "INVALID_SUPPLIER", r.Code)
}

func TestProductService_Create_DuplicateReference(t *testing.T) {
	f := newProductFixture(t, organization.RoleMember)
	f.products.On("ExistsByReference", mock.Anything, testOrgID, "PRD-001", (*uuid.UUID)(nil)).Return(true, nil)

	r := f.svc.Create(actorCtx(), testOrgID, productInput())

	assert.Equal(t, action.StatusConflict, r.Status)
	assert.Equal(t, "DUPLICATE_REFERENCE", r.Code)
}

func TestProductService_Create_NegativePrice(t *testing.T) {
	f := newProductFixture(t, organization.RoleMember)
	in := productInput()
	in.UnitPrice = decimal.NewFromInt(-1)

	r := f.svc.Create(actorCtx(), testOrgID, in)

	assert.Equal(t, action.StatusValidationError, r.Status)
	assert.Equal(t, "unit_price", r.FieldErrors[0].Field)
}

func TestProductService_StatusLifecycle(t *testing.T) {
	f := newProductFixture(t, organization.RoleMember)
	p, err := catalog.NewProduct(testOrgID, catalog.ProductStatusActive, productInput().details())
	require.NoError(t, err)
	f.products.On("FindByID", mock.Anything, testOrgID, p.ID).Return(p, nil)
	f.products.On("Save", mock.Anything, p).Return(nil)

	r := f.svc.ChangeStatus(actorCtx(), testOrgID, p.ID, StatusInput{Status: "DISCONTINUED"})
	require.True(t, r.OK(), r.Message)
	assert.Equal(t, []string{"ARCHIVED"}, r.Data.AllowedStatuses)

	back := f.svc.ChangeStatus(actorCtx(), testOrgID, p.ID, StatusInput{Status: "ACTIVE"})
	assert.Equal(t, "INVALID_TRANSITION", back.Code)

	require.True(t, f.svc.Archive(actorCtx(), testOrgID, p.ID).OK())
	restored := f.svc.Restore(actorCtx(), testOrgID, p.ID)
	require.True(t, restored.OK())
	assert.Equal(t, "INACTIVE", restored.Data.Status)
}

func TestProductService_List(t *testing.T) {
	f := newProductFixture(t, organization.RoleMember)
	f.products.On("List", mock.Anything, testOrgID, mock.MatchedBy(func(q shared.Query) bool {
		return len(q.Predicates) == 1 && q.Predicates[0].Op == shared.OpIsNull && q.Predicates[0].Column == "category_id"
	}), mock.Anything).Return([]catalog.Product{}, int64(0), nil)

	r := f.svc.List(actorCtx(), testOrgID, shared.Filter{Filters: map[string]any{"categoryId": nil}})

	require.True(t, r.OK(), r.Message)
	assert.Empty(t, r.Data.Items)
}

func TestProductService_Delete(t *testing.T) {
	id := uuid.New()
	member := newProductFixture(t, organization.RoleMember)
	assert.Equal(t, action.StatusForbidden, member.svc.Delete(actorCtx(), testOrgID, id).Status)

	admin := newProductFixture(t, organization.RoleAdmin)
	admin.products.On("Delete", mock.Anything, testOrgID, id).Return(nil)
	assert.True(t, admin.svc.Delete(actorCtx(), testOrgID, id).OK())
}
