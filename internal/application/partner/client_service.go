// Package partner implements the client, supplier, contact and address use cases.
package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/application/workflow"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ClientService handles client operations
type ClientService struct {
	clients  partner.ClientRepository
	exec     *action.Executor
	policy   workflow.Policy
	cacheTTL time.Duration
}

// NewClientService creates a new ClientService
func NewClientService(clients partner.ClientRepository, exec *action.Executor, policy workflow.Policy, cacheTTL time.Duration) *ClientService {
	return &ClientService{
		clients:  clients,
		exec:     exec,
		policy:   policy,
		cacheTTL: cacheTTL,
	}
}

func clientTag(id uuid.UUID) string {
	return action.EntityTag(partner.AggregateTypeClient, id)
}

func clientsTag(orgID uuid.UUID) string {
	return action.CollectionTag(orgID, "clients")
}

// Create creates a client
func (s *ClientService) Create(ctx context.Context, orgID uuid.UUID, in ClientInput) action.Result[ClientResponse] {
	op := action.Op[ClientResponse]{
		Name:           "client.create",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           []string{clientsTag(orgID)},
		TagsFor:        func(r ClientResponse) []string { return []string{clientTag(r.ID)} },
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (ClientResponse, error) {
		c, err := partner.NewClient(orgID, partner.ClientType(in.Type), partner.ClientStatus(in.Status), in.details())
		if err != nil {
			return ClientResponse{}, err
		}
		if err := ensureUnique(ctx, s.clients.ExistsBy, orgID, c.Reference, c.Fiscal, nil); err != nil {
			return ClientResponse{}, err
		}
		c.SetCreatedBy(sc.Actor.UserID)
		if err := s.clients.Save(ctx, c); err != nil {
			return ClientResponse{}, err
		}
		s.exec.Publish(ctx, c)
		sc.Logger.Info("client created", zap.String("client_id", c.ID.String()))
		return ToClientResponse(c), nil
	})
}

// Get returns a client
func (s *ClientService) Get(ctx context.Context, orgID, id uuid.UUID) action.Result[ClientResponse] {
	op := action.Op[ClientResponse]{Name: "client.get", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (ClientResponse, error) {
		return action.Remember(ctx, s.exec.Cache(), action.ScopedKey(orgID, partner.AggregateTypeClient, id), s.cacheTTL,
			[]string{clientTag(id)},
			func(ctx context.Context) (ClientResponse, error) {
				c, err := s.clients.FindByID(ctx, orgID, id)
				if err != nil {
					return ClientResponse{}, err
				}
				return ToClientResponse(c), nil
			})
	})
}

// List pages through clients matching the filter
func (s *ClientService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[ClientResponse]] {
	op := action.Op[shared.Paginated[ClientResponse]]{Name: "client.list", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (shared.Paginated[ClientResponse], error) {
		filter.Normalize()
		query := partner.ClientFilterSchema.Build(filter.Filters, filter.Search)
		clients, total, err := s.clients.List(ctx, orgID, query, filter)
		if err != nil {
			return shared.Paginated[ClientResponse]{}, err
		}
		items := make([]ClientResponse, len(clients))
		for i := range clients {
			items[i] = ToClientResponse(&clients[i])
		}
		return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
	})
}

// Update replaces a client's details
func (s *ClientService) Update(ctx context.Context, orgID, id uuid.UUID, in ClientInput) action.Result[ClientResponse] {
	op := action.Op[ClientResponse]{
		Name:           "client.update",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           []string{clientTag(id), clientsTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (ClientResponse, error) {
		c, err := s.clients.FindByID(ctx, orgID, id)
		if err != nil {
			return ClientResponse{}, err
		}
		if err := c.Update(partner.ClientType(in.Type), in.details()); err != nil {
			return ClientResponse{}, err
		}
		if err := ensureUnique(ctx, s.clients.ExistsBy, orgID, c.Reference, c.Fiscal, &c.ID); err != nil {
			return ClientResponse{}, err
		}
		return s.save(ctx, c)
	})
}

// ChangeStatus moves a client to another status
func (s *ClientService) ChangeStatus(ctx context.Context, orgID, id uuid.UUID, in StatusInput) action.Result[ClientResponse] {
	to := partner.ClientStatus(in.Status)
	return s.mutate(ctx, "client.change_status", orgID, id, &in, func(c *partner.Client, log *zap.Logger) error {
		from := c.Status
		if err := c.ChangeStatus(to, s.policy.Enforce); err != nil {
			return err
		}
		workflow.Audit(s.policy, log, partner.AggregateTypeClient, partner.ClientStatusTransitions, from, to)
		return nil
	})
}

// Archive moves a client to ARCHIVED
func (s *ClientService) Archive(ctx context.Context, orgID, id uuid.UUID) action.Result[ClientResponse] {
	return s.mutate(ctx, "client.archive", orgID, id, nil, func(c *partner.Client, log *zap.Logger) error {
		from := c.Status
		if err := c.Archive(s.policy.Enforce); err != nil {
			return err
		}
		workflow.Audit(s.policy, log, partner.AggregateTypeClient, partner.ClientStatusTransitions, from, partner.ClientStatusArchived)
		return nil
	})
}

// Restore brings an archived client back as INACTIVE
func (s *ClientService) Restore(ctx context.Context, orgID, id uuid.UUID) action.Result[ClientResponse] {
	return s.mutate(ctx, "client.restore", orgID, id, nil, func(c *partner.Client, _ *zap.Logger) error {
		return c.Restore()
	})
}

// Delete removes a client with its contacts and addresses. Admins only.
func (s *ClientService) Delete(ctx context.Context, orgID, id uuid.UUID) action.Result[struct{}] {
	op := action.Op[struct{}]{
		Name:           "client.delete",
		OrganizationID: orgID,
		MinRole:        organization.RoleAdmin,
		Tags:           []string{clientTag(id), clientsTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (struct{}, error) {
		if err := s.clients.Delete(ctx, orgID, id); err != nil {
			return struct{}{}, err
		}
		s.exec.PublishEvents(ctx, shared.NewLifecycleEvent(partner.AggregateTypeClient, "deleted", id, orgID))
		sc.Logger.Info("client deleted", zap.String("client_id", id.String()))
		return struct{}{}, nil
	})
}

// Transitions describes the client status workflow
func (s *ClientService) Transitions(ctx context.Context, orgID uuid.UUID) action.Result[workflow.Transitions] {
	op := action.Op[workflow.Transitions]{Name: "client.transitions", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(context.Context, action.Scope) (workflow.Transitions, error) {
		return workflow.Describe(s.policy, partner.ClientStatusTransitions), nil
	})
}

func (s *ClientService) mutate(ctx context.Context, name string, orgID, id uuid.UUID, input any, apply func(*partner.Client, *zap.Logger) error) action.Result[ClientResponse] {
	op := action.Op[ClientResponse]{
		Name:           name,
		OrganizationID: orgID,
		Input:          input,
		Tags:           []string{clientTag(id), clientsTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (ClientResponse, error) {
		c, err := s.clients.FindByID(ctx, orgID, id)
		if err != nil {
			return ClientResponse{}, err
		}
		if err := apply(c, sc.Logger); err != nil {
			return ClientResponse{}, err
		}
		return s.save(ctx, c)
	})
}

func (s *ClientService) save(ctx context.Context, c *partner.Client) (ClientResponse, error) {
	if err := s.clients.Save(ctx, c); err != nil {
		return ClientResponse{}, err
	}
	s.exec.Publish(ctx, c)
	return ToClientResponse(c), nil
}
