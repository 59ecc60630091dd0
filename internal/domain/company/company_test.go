package company

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() Details {
	return Details{
		LegalName:    "Martin & Fils SAS",
		TradeName:    "Boulangerie Martin",
		LegalForm:    "SAS",
		Fiscal:       shared.FiscalIDs{SIREN: "552100554", SIRET: "55210055400013"},
		ShareCapital: decimal.RequireFromString("10000.005"),
	}
}

func TestNewCompany(t *testing.T) {
	c, err := NewCompany(uuid.New(), validDetails())
	require.NoError(t, err)
	assert.Equal(t, "Boulangerie Martin", c.DisplayName())
	assert.False(t, c.IsMain)
	assert.True(t, c.ShareCapital.Equal(decimal.RequireFromString("10000.01")))
}

func TestNewCompany_Validation(t *testing.T) {
	d := validDetails()
	d.LegalName = ""
	_, err := NewCompany(uuid.New(), d)
	require.Error(t, err)

	d = validDetails()
	d.ShareCapital = decimal.NewFromInt(-5)
	_, err = NewCompany(uuid.New(), d)
	require.Error(t, err)

	d = validDetails()
	d.Fiscal.SIRET = "12345678900013"
	_, err = NewCompany(uuid.New(), d)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_SIRET", de.Code)
}

func TestCompany_ArchiveClearsMain(t *testing.T) {
	c, err := NewCompany(uuid.New(), validDetails())
	require.NoError(t, err)

	require.NoError(t, c.MarkMain())
	require.NoError(t, c.Archive())
	assert.False(t, c.IsMain)
	assert.Error(t, c.MarkMain())

	require.NoError(t, c.Restore())
	require.NoError(t, c.MarkMain())
	assert.True(t, c.IsMain)
}

func TestCompany_Logo(t *testing.T) {
	c, err := NewCompany(uuid.New(), validDetails())
	require.NoError(t, err)

	key, err := c.LogoObjectKey("image/PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))
	require.NoError(t, c.SetLogo(key))
	assert.Equal(t, key, c.LogoKey)

	_, err = c.LogoObjectKey("application/pdf")
	assert.Error(t, err)

	other, _ := NewCompany(c.OrganizationID, validDetails())
	foreign, _ := other.LogoObjectKey("image/png")
	assert.Error(t, c.SetLogo(foreign))
}
