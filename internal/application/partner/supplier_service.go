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

// SupplierService handles supplier operations
type SupplierService struct {
	suppliers partner.SupplierRepository
	exec      *action.Executor
	policy    workflow.Policy
	cacheTTL  time.Duration
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(suppliers partner.SupplierRepository, exec *action.Executor, policy workflow.Policy, cacheTTL time.Duration) *SupplierService {
	return &SupplierService{
		suppliers: suppliers,
		exec:      exec,
		policy:    policy,
		cacheTTL:  cacheTTL,
	}
}

func supplierTag(id uuid.UUID) string {
	return action.EntityTag(partner.AggregateTypeSupplier, id)
}

func suppliersTag(orgID uuid.UUID) string {
	return action.CollectionTag(orgID, "suppliers")
}

// Create creates an ACTIVE supplier
func (s *SupplierService) Create(ctx context.Context, orgID uuid.UUID, in SupplierInput) action.Result[SupplierResponse] {
	op := action.Op[SupplierResponse]{
		Name:           "supplier.create",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           []string{suppliersTag(orgID)},
		TagsFor:        func(r SupplierResponse) []string { return []string{supplierTag(r.ID)} },
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (SupplierResponse, error) {
		sup, err := partner.NewSupplier(orgID, partner.SupplierType(in.Type), in.PaymentTermsDays, in.details())
		if err != nil {
			return SupplierResponse{}, err
		}
		if err := ensureUnique(ctx, s.suppliers.ExistsBy, orgID, sup.Reference, sup.Fiscal, nil); err != nil {
			return SupplierResponse{}, err
		}
		sup.SetCreatedBy(sc.Actor.UserID)
		if err := s.suppliers.Save(ctx, sup); err != nil {
			return SupplierResponse{}, err
		}
		s.exec.Publish(ctx, sup)
		sc.Logger.Info("supplier created", zap.String("supplier_id", sup.ID.String()))
		return ToSupplierResponse(sup), nil
	})
}

// Get returns a supplier
func (s *SupplierService) Get(ctx context.Context, orgID, id uuid.UUID) action.Result[SupplierResponse] {
	op := action.Op[SupplierResponse]{Name: "supplier.get", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (SupplierResponse, error) {
		return action.Remember(ctx, s.exec.Cache(), action.ScopedKey(orgID, partner.AggregateTypeSupplier, id), s.cacheTTL,
			[]string{supplierTag(id)},
			func(ctx context.Context) (SupplierResponse, error) {
				sup, err := s.suppliers.FindByID(ctx, orgID, id)
				if err != nil {
					return SupplierResponse{}, err
				}
				return ToSupplierResponse(sup), nil
			})
	})
}

// List pages through suppliers matching the filter
func (s *SupplierService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[SupplierResponse]] {
	op := action.Op[shared.Paginated[SupplierResponse]]{Name: "supplier.list", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (shared.Paginated[SupplierResponse], error) {
		filter.Normalize()
		query := partner.SupplierFilterSchema.Build(filter.Filters, filter.Search)
		suppliers, total, err := s.suppliers.List(ctx, orgID, query, filter)
		if err != nil {
			return shared.Paginated[SupplierResponse]{}, err
		}
		items := make([]SupplierResponse, len(suppliers))
		for i := range suppliers {
			items[i] = ToSupplierResponse(&suppliers[i])
		}
		return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
	})
}

// Update replaces a supplier's details
func (s *SupplierService) Update(ctx context.Context, orgID, id uuid.UUID, in SupplierInput) action.Result[SupplierResponse] {
	op := action.Op[SupplierResponse]{
		Name:           "supplier.update",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           []string{supplierTag(id), suppliersTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (SupplierResponse, error) {
		sup, err := s.suppliers.FindByID(ctx, orgID, id)
		if err != nil {
			return SupplierResponse{}, err
		}
		if err := sup.Update(partner.SupplierType(in.Type), in.PaymentTermsDays, in.details()); err != nil {
			return SupplierResponse{}, err
		}
		if err := ensureUnique(ctx, s.suppliers.ExistsBy, orgID, sup.Reference, sup.Fiscal, &sup.ID); err != nil {
			return SupplierResponse{}, err
		}
		return s.save(ctx, sup)
	})
}

// ChangeStatus moves a supplier to another status
func (s *SupplierService) ChangeStatus(ctx context.Context, orgID, id uuid.UUID, in StatusInput) action.Result[SupplierResponse] {
	to := partner.SupplierStatus(in.Status)
	return s.mutate(ctx, "supplier.change_status", orgID, id, &in, func(sup *partner.Supplier, log *zap.Logger) error {
		from := sup.Status
		if err := sup.ChangeStatus(to, s.policy.Enforce); err != nil {
			return err
		}
		workflow.Audit(s.policy, log, partner.AggregateTypeSupplier, partner.SupplierStatusTransitions, from, to)
		return nil
	})
}

// Archive moves a supplier to ARCHIVED
func (s *SupplierService) Archive(ctx context.Context, orgID, id uuid.UUID) action.Result[SupplierResponse] {
	return s.mutate(ctx, "supplier.archive", orgID, id, nil, func(sup *partner.Supplier, log *zap.Logger) error {
		from := sup.Status
		if err := sup.Archive(s.policy.Enforce); err != nil {
			return err
		}
		workflow.Audit(s.policy, log, partner.AggregateTypeSupplier, partner.SupplierStatusTransitions, from, partner.SupplierStatusArchived)
		return nil
	})
}

// Restore brings an archived supplier back as INACTIVE
func (s *SupplierService) Restore(ctx context.Context, orgID, id uuid.UUID) action.Result[SupplierResponse] {
	return s.mutate(ctx, "supplier.restore", orgID, id, nil, func(sup *partner.Supplier, _ *zap.Logger) error {
		return sup.Restore()
	})
}

// Delete removes a supplier with its contacts and addresses. Admins only.
// Products referencing the supplier keep existing without it.
func (s *SupplierService) Delete(ctx context.Context, orgID, id uuid.UUID) action.Result[struct{}] {
	op := action.Op[struct{}]{
		Name:           "supplier.delete",
		OrganizationID: orgID,
		MinRole:        organization.RoleAdmin,
		Tags:           []string{supplierTag(id), suppliersTag(orgID), action.CollectionTag(orgID, "products")},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (struct{}, error) {
		if err := s.suppliers.Delete(ctx, orgID, id); err != nil {
			return struct{}{}, err
		}
		s.exec.PublishEvents(ctx, shared.NewLifecycleEvent(partner.AggregateTypeSupplier, "deleted", id, orgID))
		sc.Logger.Info("supplier deleted", zap.String("supplier_id", id.String()))
		return struct{}{}, nil
	})
}

// Transitions describes the supplier status workflow
func (s *SupplierService) Transitions(ctx context.Context, orgID uuid.UUID) action.Result[workflow.Transitions] {
	op := action.Op[workflow.Transitions]{Name: "supplier.transitions", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(context.Context, action.Scope) (workflow.Transitions, error) {
		return workflow.Describe(s.policy, partner.SupplierStatusTransitions), nil
	})
}

func (s *SupplierService) mutate(ctx context.Context, name string, orgID, id uuid.UUID, input any, apply func(*partner.Supplier, *zap.Logger) error) action.Result[SupplierResponse] {
	op := action.Op[SupplierResponse]{
		Name:           name,
		OrganizationID: orgID,
		Input:          input,
		Tags:           []string{supplierTag(id), suppliersTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (SupplierResponse, error) {
		sup, err := s.suppliers.FindByID(ctx, orgID, id)
		if err != nil {
			return SupplierResponse{}, err
		}
		if err := apply(sup, sc.Logger); err != nil {
			return SupplierResponse{}, err
		}
		return s.save(ctx, sup)
	})
}

func (s *SupplierService) save(ctx context.Context, sup *partner.Supplier) (SupplierResponse, error) {
	if err := s.suppliers.Save(ctx, sup); err != nil {
		return SupplierResponse{}, err
	}
	s.exec.Publish(ctx, sup)
	return ToSupplierResponse(sup), nil
}
