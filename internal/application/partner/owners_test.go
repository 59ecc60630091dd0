package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/domain/company"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ownerFixture struct {
	clients   *MockClientRepository
	suppliers *MockSupplierRepository
	companies *MockCompanyFinder
	contacts  *MockContactRepository
	addresses *MockAddressRepository
	contactSv *ContactService
	addressSv *AddressService
	client    partner.Owner
}

func newOwnerFixture(t *testing.T) *ownerFixture {
	t.Helper()
	f := &ownerFixture{
		clients:   new(MockClientRepository),
		suppliers: new(MockSupplierRepository),
		companies: new(MockCompanyFinder),
		contacts:  new(MockContactRepository),
		addresses: new(MockAddressRepository),
		client:    partner.Owner{Type: partner.OwnerClient, ID: uuid.New()},
	}
	owners := Owners{Clients: f.clients, Suppliers: f.suppliers, Companies: f.companies}
	exec, _ := newExecutor(t, organization.RoleMember)
	f.contactSv = NewContactService(f.contacts, owners, exec)
	f.addressSv = NewAddressService(f.addresses, owners, exec)
	f.clients.On("FindByID", mock.Anything, testOrgID, f.client.ID).Return(&partner.Client{}, nil).Maybe()
	return f
}

func TestContactService_Create(t *testing.T) {
	f := newOwnerFixture(t)
	f.contacts.On("SaveAsPrimary", mock.Anything, mock.AnythingOfType("*partner.Contact")).Return(nil)

	r := f.contactSv.Create(actorCtx(), testOrgID, f.client, ContactInput{
		FirstName: "Claire",
		LastName:  "Dubois",
		Email:     "Claire@Example.com",
		IsPrimary: true,
	})

	require.True(t, r.OK(), r.Message)
	assert.True(t, r.Data.IsPrimary)
	assert.Equal(t, "Claire Dubois", r.Data.FullName)
	assert.Equal(t, "CLIENT", r.Data.OwnerType)
	f.contacts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContactService_Create_UnknownOwner(t *testing.T) {
	f := newOwnerFixture(t)
	ghost := partner.Owner{Type: partner.OwnerSupplier, ID: uuid.New()}
	f.suppliers.On("FindByID", mock.Anything, testOrgID, ghost.ID).Return(nil, shared.ErrNotFound)

	r := f.contactSv.Create(actorCtx(), testOrgID, ghost, ContactInput{LastName: "Dubois"})

	assert.Equal(t, action.StatusNotFound, r.Status)
}

func TestContactService_Create_CompanyOwnerRejected(t *testing.T) {
	f := newOwnerFixture(t)
	owner := partner.Owner{Type: partner.OwnerCompany, ID: uuid.New()}
	f.companies.On("FindByID", mock.Anything, testOrgID, owner.ID).Return(&company.Company{}, nil)

	r := f.contactSv.Create(actorCtx(), testOrgID, owner, ContactInput{LastName: "Dubois"})

	assert.Equal(t, action.StatusValidationError, r.Status)
	assert.Equal(t, "INVALID_OWNER", r.Code)
}

func TestContactService_OwnerMismatchIsNotFound(t *testing.T) {
	f := newOwnerFixture(t)
	other := partner.Owner{Type: partner.OwnerClient, ID: uuid.New()}
	c, err := partner.NewContact(testOrgID, other, partner.ContactDetails{LastName: "Dubois"})
	require.NoError(t, err)
	f.contacts.On("FindByID", mock.Anything, testOrgID, c.ID).Return(c, nil)

	assert.Equal(t, action.StatusNotFound, f.contactSv.SetPrimary(actorCtx(), testOrgID, f.client, c.ID).Status)
	assert.Equal(t, action.StatusNotFound, f.contactSv.Delete(actorCtx(), testOrgID, f.client, c.ID).Status)
	f.contacts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactService_Update_KeepsPrimaryWithoutReclaiming(t *testing.T) {
	f := newOwnerFixture(t)
	c, err := partner.NewContact(testOrgID, f.client, partner.ContactDetails{LastName: "Dubois"})
	require.NoError(t, err)
	c.IsPrimary = true
	f.contacts.On("FindByID", mock.Anything, testOrgID, c.ID).Return(c, nil)
	f.contacts.On("Save", mock.Anything, c).Return(nil)

	r := f.contactSv.Update(actorCtx(), testOrgID, f.client, c.ID, ContactInput{LastName: "Dubois-Martin", IsPrimary: true})

	require.True(t, r.OK(), r.Message)
	assert.True(t, r.Data.IsPrimary)
	f.contacts.AssertNotCalled(t, "SaveAsPrimary", mock.Anything, mock.Anything)
}

func TestContactService_List(t *testing.T) {
	f := newOwnerFixture(t)
	c, err := partner.NewContact(testOrgID, f.client, partner.ContactDetails{FirstName: "Claire"})
	require.NoError(t, err)
	f.contacts.On("ListByOwner", mock.Anything, testOrgID, f.client).Return([]partner.Contact{*c}, nil)

	r := f.contactSv.List(actorCtx(), testOrgID, f.client)

	require.True(t, r.OK(), r.Message)
	require.Len(t, r.Data, 1)
	assert.Equal(t, "Claire", r.Data[0].FullName)
}

func TestAddressService_CreateDefault(t *testing.T) {
	f := newOwnerFixture(t)
	f.addresses.On("SaveAsDefault", mock.Anything, mock.AnythingOfType("*partner.Address")).Return(nil)

	r := f.addressSv.Create(actorCtx(), testOrgID, f.client, AddressInput{
		Type:      "SHIPPING",
		Line1:     "12 rue de la Paix",
		City:      "Paris",
		IsDefault: true,
	})

	require.True(t, r.OK(), r.Message)
	assert.True(t, r.Data.IsDefault)
	assert.Equal(t, "FR", r.Data.Country)
	assert.Equal(t, "12 rue de la Paix, Paris, FR", r.Data.OneLine)
}

func TestAddressService_ConcurrentDefaultIsConflict(t *testing.T) {
	f := newOwnerFixture(t)
	f.addresses.On("SaveAsDefault", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

	r := f.addressSv.Create(actorCtx(), testOrgID, f.client, AddressInput{Line1: "1 place Bellecour", City: "Lyon", IsDefault: true})

	assert.Equal(t, action.StatusConflict, r.Status)
}

func TestAddressService_Update_TypeChangeDropsDefault(t *testing.T) {
	f := newOwnerFixture(t)
	a, err := partner.NewAddress(testOrgID, f.client, partner.AddressDetails{Type: partner.AddressTypeBilling, Line1: "1 rue A", City: "Lille"})
	require.NoError(t, err)
	a.IsDefault = true
	f.addresses.On("FindByID", mock.Anything, testOrgID, a.ID).Return(a, nil)
	f.addresses.On("Save", mock.Anything, a).Return(nil)

	r := f.addressSv.Update(actorCtx(), testOrgID, f.client, a.ID, AddressInput{Type: "SHIPPING", Line1: "1 rue A", City: "Lille"})

	require.True(t, r.OK(), r.Message)
	assert.False(t, r.Data.IsDefault)
	f.addresses.AssertNotCalled(t, "SaveAsDefault", mock.Anything, mock.Anything)
}

func TestAddressService_SetDefault(t *testing.T) {
	f := newOwnerFixture(t)
	a, err := partner.NewAddress(testOrgID, f.client, partner.AddressDetails{Line1: "1 rue A", City: "Lille"})
	require.NoError(t, err)
	f.addresses.On("FindByID", mock.Anything, testOrgID, a.ID).Return(a, nil)
	f.addresses.On("SaveAsDefault", mock.Anything, a).Return(nil)

	r := f.addressSv.SetDefault(actorCtx(), testOrgID, f.client, a.ID)

	require.True(t, r.OK(), r.Message)
	assert.True(t, r.Data.IsDefault)
}

func TestAddressService_CompanyOwner(t *testing.T) {
	f := newOwnerFixture(t)
	owner := partner.Owner{Type: partner.OwnerCompany, ID: uuid.New()}
	f.companies.On("FindByID", mock.Anything, testOrgID, owner.ID).Return(&company.Company{}, nil)
	f.addresses.On("Save", mock.Anything, mock.Anything).Return(nil)

	r := f.addressSv.Create(actorCtx(), testOrgID, owner, AddressInput{Type: "HEADQUARTERS", Line1: "5 quai Voltaire", City: "Paris"})

	require.True(t, r.OK(), r.Message)
	assert.Equal(t, "COMPANY", r.Data.OwnerType)
}

func TestEnsureUnique_SkipsEmptyValues(t *testing.T) {
	repo := new(MockClientRepository)
	repo.On("ExistsBy", mock.Anything, testOrgID, partner.UniqueReference, "CLI-9", (*uuid.UUID)(nil)).Return(false, nil)

	err := ensureUnique(actorCtx(), repo.ExistsBy, testOrgID, "CLI-9", shared.FiscalIDs{}, nil)

	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "ExistsBy", 1)
}
