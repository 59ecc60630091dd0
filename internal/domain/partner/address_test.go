package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	owner := Owner{Type: OwnerClient, ID: uuid.New()}
	a, err := NewAddress(uuid.New(), owner, AddressDetails{
		Line1:      " 12 rue de la Paix ",
		PostalCode: "75002",
		City:       "Paris",
	})
	require.NoError(t, err)
	assert.Equal(t, AddressTypeBilling, a.Type)
	assert.Equal(t, "FR", a.Country)
	assert.Equal(t, "12 rue de la Paix, 75002 Paris, FR", a.OneLine())
	assert.False(t, a.IsDefault)
}

func TestNewAddress_Validation(t *testing.T) {
	owner := Owner{Type: OwnerSupplier, ID: uuid.New()}

	_, err := NewAddress(uuid.New(), Owner{Type: "ROBOT", ID: uuid.New()}, AddressDetails{Line1: "x", City: "y"})
	assertCode(t, err, "INVALID_OWNER")

	_, err = NewAddress(uuid.New(), owner, AddressDetails{City: "Lyon"})
	assertCode(t, err, "INVALID_LINE1")

	_, err = NewAddress(uuid.New(), owner, AddressDetails{Line1: "1 place Bellecour"})
	assertCode(t, err, "INVALID_CITY")

	_, err = NewAddress(uuid.New(), owner, AddressDetails{Line1: "1 place Bellecour", City: "Lyon", Country: "France"})
	assertCode(t, err, "INVALID_COUNTRY")
}

func TestAddress_UpdateTypeDropsDefault(t *testing.T) {
	a, err := NewAddress(uuid.New(), Owner{Type: OwnerClient, ID: uuid.New()}, AddressDetails{Line1: "1 rue A", City: "Nantes"})
	require.NoError(t, err)
	a.IsDefault = true

	require.NoError(t, a.Update(AddressDetails{Type: AddressTypeBilling, Line1: "2 rue A", City: "Nantes"}))
	assert.True(t, a.IsDefault)

	require.NoError(t, a.Update(AddressDetails{Type: AddressTypeShipping, Line1: "2 rue A", City: "Nantes"}))
	assert.False(t, a.IsDefault)
}

func TestNewContact(t *testing.T) {
	owner := Owner{Type: OwnerClient, ID: uuid.New()}
	c, err := NewContact(uuid.New(), owner, ContactDetails{FirstName: "Ana", LastName: "Lopez", Email: "ANA@x.io"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lopez", c.FullName())
	assert.Equal(t, "ana@x.io", c.Email)

	_, err = NewContact(uuid.New(), Owner{Type: OwnerCompany, ID: uuid.New()}, ContactDetails{LastName: "X"})
	assertCode(t, err, "INVALID_OWNER")

	_, err = NewContact(uuid.New(), owner, ContactDetails{})
	assertCode(t, err, "INVALID_NAME")
}
