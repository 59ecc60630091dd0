// Package catalog implements the product and product category use cases.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/application/workflow"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	ErrUnknownCategory = shared.NewFieldError("INVALID_CATEGORY", "category_id", "Category does not exist in this organization")
	ErrUnknownSupplier = shared.NewFieldError("INVALID_SUPPLIER", "supplier_id", "Supplier does not exist in this organization")
)

// SupplierFinder loads a supplier of an organization
type SupplierFinder interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*partner.Supplier, error)
}

// ProductService handles product operations
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	suppliers  SupplierFinder
	exec       *action.Executor
	policy     workflow.Policy
	cacheTTL   time.Duration
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	suppliers SupplierFinder,
	exec *action.Executor,
	policy workflow.Policy,
	cacheTTL time.Duration,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		exec:       exec,
		policy:     policy,
		cacheTTL:   cacheTTL,
	}
}

func productTag(id uuid.UUID) string {
	return action.EntityTag(catalog.AggregateTypeProduct, id)
}

func productsTag(orgID uuid.UUID) string {
	return action.CollectionTag(orgID, "products")
}

// Create creates a product
func (s *ProductService) Create(ctx context.Context, orgID uuid.UUID, in ProductInput) action.Result[ProductResponse] {
	op := action.Op[ProductResponse]{
		Name:           "product.create",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           []string{productsTag(orgID)},
		TagsFor:        func(r ProductResponse) []string { return []string{productTag(r.ID)} },
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (ProductResponse, error) {
		p, err := catalog.NewProduct(orgID, catalog.ProductStatus(in.Status), in.details())
		if err != nil {
			return ProductResponse{}, err
		}
		if err := s.checkReferences(ctx, orgID, p, nil); err != nil {
			return ProductResponse{}, err
		}
		p.SetCreatedBy(sc.Actor.UserID)
		if err := s.products.Save(ctx, p); err != nil {
			return ProductResponse{}, err
		}
		s.exec.Publish(ctx, p)
		sc.Logger.Info("product created", zap.String("product_id", p.ID.String()))
		return ToProductResponse(p), nil
	})
}

// Get returns a product
func (s *ProductService) Get(ctx context.Context, orgID, id uuid.UUID) action.Result[ProductResponse] {
	op := action.Op[ProductResponse]{Name: "product.get", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (ProductResponse, error) {
		// Supplier deletion unlinks products in the database, so cached products
		// also carry the collection tag.
		return action.Remember(ctx, s.exec.Cache(), action.ScopedKey(orgID, catalog.AggregateTypeProduct, id), s.cacheTTL,
			[]string{productTag(id), productsTag(orgID)},
			func(ctx context.Context) (ProductResponse, error) {
				p, err := s.products.FindByID(ctx, orgID, id)
				if err != nil {
					return ProductResponse{}, err
				}
				return ToProductResponse(p), nil
			})
	})
}

// List pages through products matching the filter
func (s *ProductService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[ProductResponse]] {
	op := action.Op[shared.Paginated[ProductResponse]]{Name: "product.list", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (shared.Paginated[ProductResponse], error) {
		filter.Normalize()
		query := catalog.ProductFilterSchema.Build(filter.Filters, filter.Search)
		products, total, err := s.products.List(ctx, orgID, query, filter)
		if err != nil {
			return shared.Paginated[ProductResponse]{}, err
		}
		items := make([]ProductResponse, len(products))
		for i := range products {
			items[i] = ToProductResponse(&products[i])
		}
		return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
	})
}

// Update replaces a product's details
func (s *ProductService) Update(ctx context.Context, orgID, id uuid.UUID, in ProductInput) action.Result[ProductResponse] {
	op := action.Op[ProductResponse]{
		Name:           "product.update",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           []string{productTag(id), productsTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (ProductResponse, error) {
		p, err := s.products.FindByID(ctx, orgID, id)
		if err != nil {
			return ProductResponse{}, err
		}
		if err := p.Update(in.details()); err != nil {
			return ProductResponse{}, err
		}
		if err := s.checkReferences(ctx, orgID, p, &p.ID); err != nil {
			return ProductResponse{}, err
		}
		return s.save(ctx, p)
	})
}

// ChangeStatus moves a product to another status
func (s *ProductService) ChangeStatus(ctx context.Context, orgID, id uuid.UUID, in StatusInput) action.Result[ProductResponse] {
	to := catalog.ProductStatus(in.Status)
	return s.mutate(ctx, "product.change_status", orgID, id, &in, func(p *catalog.Product, log *zap.Logger) error {
		from := p.Status
		if err := p.ChangeStatus(to, s.policy.Enforce); err != nil {
			return err
		}
		workflow.Audit(s.policy, log, catalog.AggregateTypeProduct, catalog.ProductStatusTransitions, from, to)
		return nil
	})
}

// Archive moves a product to ARCHIVED
func (s *ProductService) Archive(ctx context.Context, orgID, id uuid.UUID) action.Result[ProductResponse] {
	return s.mutate(ctx, "product.archive", orgID, id, nil, func(p *catalog.Product, log *zap.Logger) error {
		from := p.Status
		if err := p.Archive(s.policy.Enforce); err != nil {
			return err
		}
		workflow.Audit(s.policy, log, catalog.AggregateTypeProduct, catalog.ProductStatusTransitions, from, catalog.ProductStatusArchived)
		return nil
	})
}

// Restore brings an archived product back as INACTIVE
func (s *ProductService) Restore(ctx context.Context, orgID, id uuid.UUID) action.Result[ProductResponse] {
	return s.mutate(ctx, "product.restore", orgID, id, nil, func(p *catalog.Product, _ *zap.Logger) error {
		return p.Restore()
	})
}

// Delete removes a product. Admins only.
func (s *ProductService) Delete(ctx context.Context, orgID, id uuid.UUID) action.Result[struct{}] {
	op := action.Op[struct{}]{
		Name:           "product.delete",
		OrganizationID: orgID,
		MinRole:        organization.RoleAdmin,
		Tags:           []string{productTag(id), productsTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (struct{}, error) {
		if err := s.products.Delete(ctx, orgID, id); err != nil {
			return struct{}{}, err
		}
		s.exec.PublishEvents(ctx, shared.NewLifecycleEvent(catalog.AggregateTypeProduct, "deleted", id, orgID))
		sc.Logger.Info("product deleted", zap.String("product_id", id.String()))
		return struct{}{}, nil
	})
}

// Transitions describes the product status workflow
func (s *ProductService) Transitions(ctx context.Context, orgID uuid.UUID) action.Result[workflow.Transitions] {
	op := action.Op[workflow.Transitions]{Name: "product.transitions", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(context.Context, action.Scope) (workflow.Transitions, error) {
		return workflow.Describe(s.policy, catalog.ProductStatusTransitions), nil
	})
}

func (s *ProductService) mutate(ctx context.Context, name string, orgID, id uuid.UUID, input any, apply func(*catalog.Product, *zap.Logger) error) action.Result[ProductResponse] {
	op := action.Op[ProductResponse]{
		Name:           name,
		OrganizationID: orgID,
		Input:          input,
		Tags:           []string{productTag(id), productsTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (ProductResponse, error) {
		p, err := s.products.FindByID(ctx, orgID, id)
		if err != nil {
			return ProductResponse{}, err
		}
		if err := apply(p, sc.Logger); err != nil {
			return ProductResponse{}, err
		}
		return s.save(ctx, p)
	})
}

func (s *ProductService) save(ctx context.Context, p *catalog.Product) (ProductResponse, error) {
	if err := s.products.Save(ctx, p); err != nil {
		return ProductResponse{}, err
	}
	s.exec.Publish(ctx, p)
	return ToProductResponse(p), nil
}

// checkReferences rejects a reference used by another product and a category
// or supplier outside the organization
func (s *ProductService) checkReferences(ctx context.Context, orgID uuid.UUID, p *catalog.Product, excludeID *uuid.UUID) error {
	taken, err := s.products.ExistsByReference(ctx, orgID, p.Reference, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.ErrDuplicateReference
	}
	if p.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, orgID, *p.CategoryID); err != nil {
			return notFoundAs(err, ErrUnknownCategory)
		}
	}
	if p.SupplierID != nil {
		if _, err := s.suppliers.FindByID(ctx, orgID, *p.SupplierID); err != nil {
			return notFoundAs(err, ErrUnknownSupplier)
		}
	}
	return nil
}

// notFoundAs replaces NOT_FOUND with a validation error on the referencing field
func notFoundAs(err, replacement error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return replacement
	}
	return err
}
