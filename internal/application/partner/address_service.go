package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// AddressService handles the addresses of clients, suppliers and companies
type AddressService struct {
	addresses partner.AddressRepository
	owners    Owners
	exec      *action.Executor
}

// NewAddressService creates a new AddressService
func NewAddressService(addresses partner.AddressRepository, owners Owners, exec *action.Executor) *AddressService {
	return &AddressService{addresses: addresses, owners: owners, exec: exec}
}

// addressTags also drops the owner's collection, since client and supplier
// search matches on address city.
func addressTags(orgID, id uuid.UUID, owner partner.Owner) []string {
	tags := []string{action.EntityTag(partner.AggregateTypeAddress, id), action.CollectionTag(orgID, "addresses")}
	switch owner.Type {
	case partner.OwnerClient:
		tags = append(tags, clientsTag(orgID))
	case partner.OwnerSupplier:
		tags = append(tags, suppliersTag(orgID))
	}
	return tags
}

// List returns the owner's addresses
func (s *AddressService) List(ctx context.Context, orgID uuid.UUID, owner partner.Owner) action.Result[[]AddressResponse] {
	op := action.Op[[]AddressResponse]{Name: "address.list", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) ([]AddressResponse, error) {
		if err := s.owners.ensureExists(ctx, orgID, owner); err != nil {
			return nil, err
		}
		addresses, err := s.addresses.ListByOwner(ctx, orgID, owner)
		if err != nil {
			return nil, err
		}
		out := make([]AddressResponse, len(addresses))
		for i := range addresses {
			out[i] = ToAddressResponse(&addresses[i])
		}
		return out, nil
	})
}

// Create adds an address to a client, supplier or company
func (s *AddressService) Create(ctx context.Context, orgID uuid.UUID, owner partner.Owner, in AddressInput) action.Result[AddressResponse] {
	op := action.Op[AddressResponse]{
		Name:           "address.create",
		OrganizationID: orgID,
		Input:          &in,
		TagsFor:        func(r AddressResponse) []string { return addressTags(orgID, r.ID, owner) },
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (AddressResponse, error) {
		if err := s.owners.ensureExists(ctx, orgID, owner); err != nil {
			return AddressResponse{}, err
		}
		a, err := partner.NewAddress(orgID, owner, in.details())
		if err != nil {
			return AddressResponse{}, err
		}
		a.SetCreatedBy(sc.Actor.UserID)
		return s.save(ctx, a, in.IsDefault)
	})
}

// Update replaces an address. Changing its type drops the default flag unless
// is_default is set again.
func (s *AddressService) Update(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID, in AddressInput) action.Result[AddressResponse] {
	op := action.Op[AddressResponse]{
		Name:           "address.update",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           addressTags(orgID, id, owner),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (AddressResponse, error) {
		a, err := s.find(ctx, orgID, owner, id)
		if err != nil {
			return AddressResponse{}, err
		}
		if err := a.Update(in.details()); err != nil {
			return AddressResponse{}, err
		}
		return s.save(ctx, a, in.IsDefault && !a.IsDefault)
	})
}

// SetDefault makes an address the only default of its owner and type
func (s *AddressService) SetDefault(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) action.Result[AddressResponse] {
	op := action.Op[AddressResponse]{
		Name:           "address.set_default",
		OrganizationID: orgID,
		Tags:           addressTags(orgID, id, owner),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (AddressResponse, error) {
		a, err := s.find(ctx, orgID, owner, id)
		if err != nil {
			return AddressResponse{}, err
		}
		return s.save(ctx, a, true)
	})
}

// Delete removes an address
func (s *AddressService) Delete(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) action.Result[struct{}] {
	op := action.Op[struct{}]{
		Name:           "address.delete",
		OrganizationID: orgID,
		Tags:           addressTags(orgID, id, owner),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (struct{}, error) {
		if _, err := s.find(ctx, orgID, owner, id); err != nil {
			return struct{}{}, err
		}
		if err := s.addresses.Delete(ctx, orgID, id); err != nil {
			return struct{}{}, err
		}
		s.exec.PublishEvents(ctx, shared.NewLifecycleEvent(partner.AggregateTypeAddress, "deleted", id, orgID))
		return struct{}{}, nil
	})
}

// find loads an address and checks it belongs to owner
func (s *AddressService) find(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) (*partner.Address, error) {
	a, err := s.addresses.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if a.Owner != owner {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

// save writes the address. SaveAsDefault clears the previous default in the
// same transaction; a concurrent default of the same owner and type surfaces
// as a conflict from the unique index.
func (s *AddressService) save(ctx context.Context, a *partner.Address, asDefault bool) (AddressResponse, error) {
	var err error
	if asDefault {
		err = s.addresses.SaveAsDefault(ctx, a)
	} else {
		err = s.addresses.Save(ctx, a)
	}
	if err != nil {
		return AddressResponse{}, err
	}
	s.exec.Publish(ctx, a)
	return ToAddressResponse(a), nil
}
