package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParty() PartyDetails {
	return PartyDetails{
		Reference: " cli-001 ",
		Name:      "Boulangerie Martin",
		Contact:   shared.ContactInfo{Email: "Hello@Martin.fr", Phone: "01 23 45 67 89"},
		Fiscal:    shared.FiscalIDs{SIREN: "552 100 554"},
	}
}

func TestNewClient(t *testing.T) {
	orgID := uuid.New()
	c, err := NewClient(orgID, "", "", validParty())
	require.NoError(t, err)

	assert.Equal(t, orgID, c.OrganizationID)
	assert.Equal(t, "CLI-001", c.Reference)
	assert.Equal(t, ClientTypeCompany, c.Type)
	assert.Equal(t, ClientStatusLead, c.Status)
	assert.Equal(t, "hello@martin.fr", c.Contact.Email)
	assert.Equal(t, "552100554", c.Fiscal.SIREN)
	assert.Len(t, c.GetDomainEvents(), 1)
}

func TestNewClient_Validation(t *testing.T) {
	orgID := uuid.New()

	_, err := NewClient(orgID, "ROBOT", "", validParty())
	assertCode(t, err, "INVALID_TYPE")

	_, err = NewClient(orgID, "", ClientStatusArchived, validParty())
	assertCode(t, err, "INVALID_STATUS")

	d := validParty()
	d.Reference = ""
	_, err = NewClient(orgID, "", "", d)
	assertCode(t, err, "INVALID_REFERENCE")

	d = validParty()
	d.Fiscal.SIRET = "123"
	_, err = NewClient(orgID, "", "", d)
	assertCode(t, err, "INVALID_SIRET")
}

func TestClient_ChangeStatus_Enforced(t *testing.T) {
	c, err := NewClient(uuid.New(), "", "", validParty())
	require.NoError(t, err)

	require.NoError(t, c.ChangeStatus(ClientStatusProspect, true))
	require.NoError(t, c.ChangeStatus(ClientStatusActive, true))

	err = c.ChangeStatus(ClientStatusLead, true)
	assertCode(t, err, "INVALID_TRANSITION")
	assert.Equal(t, ClientStatusActive, c.Status)

	err = c.ChangeStatus("FROZEN", true)
	assertCode(t, err, "INVALID_STATUS")
}

func TestClient_ChangeStatus_Advisory(t *testing.T) {
	c, err := NewClient(uuid.New(), "", "", validParty())
	require.NoError(t, err)

	require.NoError(t, c.ChangeStatus(ClientStatusInactive, false))
	assert.Equal(t, ClientStatusInactive, c.Status)

	versionBefore := c.GetVersion()
	require.NoError(t, c.ChangeStatus(ClientStatusInactive, false))
	assert.Equal(t, versionBefore, c.GetVersion())
}

func TestClient_ArchiveRestore(t *testing.T) {
	c, err := NewClient(uuid.New(), "", ClientStatusActive, validParty())
	require.NoError(t, err)

	require.NoError(t, c.Archive(true))
	assert.Equal(t, ClientStatusArchived, c.Status)
	assert.True(t, c.IsArchived())
	assertCode(t, c.Archive(true), "INVALID_STATE")

	require.NoError(t, c.Restore())
	assert.Equal(t, ClientStatusInactive, c.Status)
	assert.False(t, c.IsArchived())
	assertCode(t, c.Restore(), "INVALID_STATE")
}

func TestClientStatusTransitions_Table(t *testing.T) {
	assert.ElementsMatch(t, []ClientStatus{ClientStatusProspect, ClientStatusArchived},
		ClientStatusTransitions.Allowed(ClientStatusLead))
	assert.True(t, ClientStatusTransitions.CanTransition(ClientStatusInactive, ClientStatusActive))
	assert.False(t, ClientStatusTransitions.CanTransition(ClientStatusArchived, ClientStatusActive))
}

func TestClientFilterSchema(t *testing.T) {
	q := ClientFilterSchema.Build(map[string]any{"status": []string{"ACTIVE", "LEAD"}, "colour": "red"}, "paris")
	require.Len(t, q.Predicates, 1)
	assert.Equal(t, shared.OpIn, q.Predicates[0].Op)
	assert.Contains(t, q.SearchColumns, SearchAddressCity)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	de, ok := err.(*shared.DomainError)
	require.True(t, ok, "expected *shared.DomainError, got %T", err)
	assert.Equal(t, code, de.Code)
}
