package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// ContactService handles the contacts of clients and suppliers
type ContactService struct {
	contacts partner.ContactRepository
	owners   Owners
	exec     *action.Executor
}

// NewContactService creates a new ContactService
func NewContactService(contacts partner.ContactRepository, owners Owners, exec *action.Executor) *ContactService {
	return &ContactService{contacts: contacts, owners: owners, exec: exec}
}

func contactTags(orgID, id uuid.UUID) []string {
	return []string{action.EntityTag(partner.AggregateTypeContact, id), action.CollectionTag(orgID, "contacts")}
}

// List returns the owner's contacts, primary first
func (s *ContactService) List(ctx context.Context, orgID uuid.UUID, owner partner.Owner) action.Result[[]ContactResponse] {
	op := action.Op[[]ContactResponse]{Name: "contact.list", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) ([]ContactResponse, error) {
		if err := s.owners.ensureExists(ctx, orgID, owner); err != nil {
			return nil, err
		}
		contacts, err := s.contacts.ListByOwner(ctx, orgID, owner)
		if err != nil {
			return nil, err
		}
		out := make([]ContactResponse, len(contacts))
		for i := range contacts {
			out[i] = ToContactResponse(&contacts[i])
		}
		return out, nil
	})
}

// Create adds a contact to a client or supplier
func (s *ContactService) Create(ctx context.Context, orgID uuid.UUID, owner partner.Owner, in ContactInput) action.Result[ContactResponse] {
	op := action.Op[ContactResponse]{
		Name:           "contact.create",
		OrganizationID: orgID,
		Input:          &in,
		TagsFor:        func(r ContactResponse) []string { return contactTags(orgID, r.ID) },
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (ContactResponse, error) {
		if err := s.owners.ensureExists(ctx, orgID, owner); err != nil {
			return ContactResponse{}, err
		}
		c, err := partner.NewContact(orgID, owner, in.details())
		if err != nil {
			return ContactResponse{}, err
		}
		c.SetCreatedBy(sc.Actor.UserID)
		return s.save(ctx, c, in.IsPrimary)
	})
}

// Update replaces a contact's details. Setting is_primary makes it the owner's primary contact.
func (s *ContactService) Update(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID, in ContactInput) action.Result[ContactResponse] {
	op := action.Op[ContactResponse]{
		Name:           "contact.update",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           contactTags(orgID, id),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (ContactResponse, error) {
		c, err := s.find(ctx, orgID, owner, id)
		if err != nil {
			return ContactResponse{}, err
		}
		if err := c.Update(in.details()); err != nil {
			return ContactResponse{}, err
		}
		return s.save(ctx, c, in.IsPrimary && !c.IsPrimary)
	})
}

// SetPrimary makes a contact the owner's only primary contact
func (s *ContactService) SetPrimary(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) action.Result[ContactResponse] {
	op := action.Op[ContactResponse]{
		Name:           "contact.set_primary",
		OrganizationID: orgID,
		Tags:           contactTags(orgID, id),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (ContactResponse, error) {
		c, err := s.find(ctx, orgID, owner, id)
		if err != nil {
			return ContactResponse{}, err
		}
		return s.save(ctx, c, true)
	})
}

// Delete removes a contact
func (s *ContactService) Delete(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) action.Result[struct{}] {
	op := action.Op[struct{}]{
		Name:           "contact.delete",
		OrganizationID: orgID,
		Tags:           contactTags(orgID, id),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (struct{}, error) {
		if _, err := s.find(ctx, orgID, owner, id); err != nil {
			return struct{}{}, err
		}
		if err := s.contacts.Delete(ctx, orgID, id); err != nil {
			return struct{}{}, err
		}
		s.exec.PublishEvents(ctx, shared.NewLifecycleEvent(partner.AggregateTypeContact, "deleted", id, orgID))
		return struct{}{}, nil
	})
}

// find loads a contact and checks it belongs to owner
func (s *ContactService) find(ctx context.Context, orgID uuid.UUID, owner partner.Owner, id uuid.UUID) (*partner.Contact, error) {
	c, err := s.contacts.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if c.Owner != owner {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (s *ContactService) save(ctx context.Context, c *partner.Contact, primary bool) (ContactResponse, error) {
	var err error
	if primary {
		err = s.contacts.SaveAsPrimary(ctx, c)
	} else {
		err = s.contacts.Save(ctx, c)
	}
	if err != nil {
		return ContactResponse{}, err
	}
	s.exec.Publish(ctx, c)
	return ToContactResponse(c), nil
}
