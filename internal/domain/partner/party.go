package partner

import (
	"strings"

	"github.com/orgdesk/backend/internal/domain/shared"
)

// PartyDetails are the editable fields shared by clients and suppliers
type PartyDetails struct {
	Reference string
	Name      string
	Contact   shared.ContactInfo
	Fiscal    shared.FiscalIDs
	Notes     string
}

// normalize trims and validates, returning the cleaned copy
func (d PartyDetails) normalize() (PartyDetails, error) {
	out := PartyDetails{
		Reference: shared.NormalizeReference(d.Reference),
		Name:      strings.TrimSpace(d.Name),
		Contact:   d.Contact.Normalize(),
		Fiscal:    d.Fiscal.Normalize(),
		Notes:     strings.TrimSpace(d.Notes),
	}
	if err := shared.ValidateReference(out.Reference); err != nil {
		return PartyDetails{}, err
	}
	if err := shared.ValidateRequiredName("name", out.Name, 200); err != nil {
		return PartyDetails{}, err
	}
	if err := out.Contact.Validate(); err != nil {
		return PartyDetails{}, err
	}
	if err := out.Fiscal.Validate(); err != nil {
		return PartyDetails{}, err
	}
	if len(out.Notes) > 5000 {
		return PartyDetails{}, shared.NewFieldError("INVALID_NOTES", "notes", "Notes cannot exceed 5000 characters")
	}
	return out, nil
}
