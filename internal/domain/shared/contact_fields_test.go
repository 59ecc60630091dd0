package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiscalIDs_NormalizeAndValidate(t *testing.T) {
	ids := FiscalIDs{SIREN: "732 829 320", SIRET: "732 829 320 00074", VATNumber: "fr 44 732829320"}.Normalize()
	assert.Equal(t, "732829320", ids.SIREN)
	assert.Equal(t, "73282932000074", ids.SIRET)
	assert.Equal(t, "FR44732829320", ids.VATNumber)
	assert.NoError(t, ids.Validate())
}

func TestFiscalIDs_Validate_Errors(t *testing.T) {
	tests := []struct {
		name string
		ids  FiscalIDs
		code string
	}{
		{"short siren", FiscalIDs{SIREN: "1234"}, "INVALID_SIREN"},
		{"short siret", FiscalIDs{SIRET: "123"}, "INVALID_SIRET"},
		{"siret not matching siren", FiscalIDs{SIREN: "111111111", SIRET: "22222222200011"}, "INVALID_SIRET"},
		{"bad vat", FiscalIDs{VATNumber: "44-FR"}, "INVALID_VAT_NUMBER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ids.Validate()
			var de *DomainError
			if assert.True(t, errors.As(err, &de)) {
				assert.Equal(t, tt.code, de.Code)
			}
		})
	}
}

func TestContactInfo_Validate(t *testing.T) {
	assert.NoError(t, ContactInfo{}.Validate())
	assert.NoError(t, ContactInfo{Email: "a@b.fr", Phone: "+33 1 23 45 67 89"}.Validate())
	assert.Error(t, ContactInfo{Email: "nope"}.Validate())
	assert.Error(t, ContactInfo{Phone: "call me"}.Validate())

	c := ContactInfo{Email: "  Jane@Example.COM "}.Normalize()
	assert.Equal(t, "jane@example.com", c.Email)
}

func TestValidateReference(t *testing.T) {
	assert.NoError(t, ValidateReference("CLI-0001"))
	assert.Error(t, ValidateReference(""))
	assert.Error(t, ValidateReference("-bad"))
	assert.Equal(t, "CLI-7", NormalizeReference("  cli-7 "))
}

func TestDomainError_Is(t *testing.T) {
	err := NewDomainError("NOT_FOUND", "client not found")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
}
