package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/company"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// existsFunc is the ExistsBy method of a client or supplier repository
type existsFunc func(ctx context.Context, orgID uuid.UUID, field partner.UniqueField, value string, excludeID *uuid.UUID) (bool, error)

// ensureUnique checks reference, SIREN and SIRET against the rest of the organization.
// Values must already be normalized.
func ensureUnique(ctx context.Context, exists existsFunc, orgID uuid.UUID, reference string, fiscal shared.FiscalIDs, excludeID *uuid.UUID) error {
	checks := []struct {
		field partner.UniqueField
		value string
		err   error
	}{
		{partner.UniqueReference, reference, shared.ErrDuplicateReference},
		{partner.UniqueSIREN, fiscal.SIREN, shared.ErrDuplicateSIREN},
		{partner.UniqueSIRET, fiscal.SIRET, shared.ErrDuplicateSIRET},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		taken, err := exists(ctx, orgID, c.field, c.value, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return c.err
		}
	}
	return nil
}

// CompanyFinder loads a company of an organization
type CompanyFinder interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*company.Company, error)
}

// Owners resolves the records contacts and addresses hang off
type Owners struct {
	Clients   partner.ClientRepository
	Suppliers partner.SupplierRepository
	Companies CompanyFinder
}

var errOwnerNotFound = shared.NewDomainError(shared.ErrNotFound.Code, "Owner not found")

// ensureExists returns NOT_FOUND unless owner is a record of the organization
func (o Owners) ensureExists(ctx context.Context, orgID uuid.UUID, owner partner.Owner) error {
	if !owner.IsValid() {
		return shared.NewFieldError("INVALID_OWNER", "owner", "Unknown owner")
	}
	var err error
	switch owner.Type {
	case partner.OwnerClient:
		_, err = o.Clients.FindByID(ctx, orgID, owner.ID)
	case partner.OwnerSupplier:
		_, err = o.Suppliers.FindByID(ctx, orgID, owner.ID)
	case partner.OwnerCompany:
		if o.Companies == nil {
			return errOwnerNotFound
		}
		_, err = o.Companies.FindByID(ctx, orgID, owner.ID)
	}
	if errors.Is(err, shared.ErrNotFound) {
		return errOwnerNotFound
	}
	return err
}
