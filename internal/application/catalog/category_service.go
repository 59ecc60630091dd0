package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	ErrDuplicateName = shared.NewFieldError("DUPLICATE_NAME", "name", "Another category under the same parent already uses this name")
	ErrUnknownParent = shared.NewFieldError("INVALID_PARENT", "parent_id", "Parent category does not exist in this organization")
	ErrHasChildren   = shared.NewDomainError("HAS_CHILDREN", "Move or delete the sub-categories first")
	ErrHasProducts   = shared.NewDomainError("HAS_PRODUCTS", "Products still use this category")
)

// CategoryService handles product category operations
type CategoryService struct {
	categories catalog.CategoryRepository
	products   catalog.ProductRepository
	exec       *action.Executor
	cacheTTL   time.Duration
	treeTTL    time.Duration
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories catalog.CategoryRepository, products catalog.ProductRepository, exec *action.Executor, cacheTTL, treeTTL time.Duration) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
		exec:       exec,
		cacheTTL:   cacheTTL,
		treeTTL:    treeTTL,
	}
}

func categoryTag(id uuid.UUID) string {
	return action.EntityTag(catalog.AggregateTypeCategory, id)
}

func categoriesTag(orgID uuid.UUID) string {
	return action.CollectionTag(orgID, "product-categories")
}

func categoryTags(orgID, id uuid.UUID) []string {
	return []string{categoryTag(id), categoriesTag(orgID)}
}

// Create creates a category under in.ParentID, or at the top level
func (s *CategoryService) Create(ctx context.Context, orgID uuid.UUID, in CategoryInput) action.Result[CategoryResponse] {
	op := action.Op[CategoryResponse]{
		Name:           "category.create",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           []string{categoriesTag(orgID)},
		TagsFor:        func(r CategoryResponse) []string { return []string{categoryTag(r.ID)} },
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (CategoryResponse, error) {
		if in.ParentID != nil {
			if _, err := s.categories.FindByID(ctx, orgID, *in.ParentID); err != nil {
				return CategoryResponse{}, notFoundAs(err, ErrUnknownParent)
			}
		}
		c, err := catalog.NewCategory(orgID, in.ParentID, in.details())
		if err != nil {
			return CategoryResponse{}, err
		}
		if err := s.ensureUniqueName(ctx, c, nil); err != nil {
			return CategoryResponse{}, err
		}
		c.SetCreatedBy(sc.Actor.UserID)
		return s.save(ctx, c)
	})
}

// Get returns a category
func (s *CategoryService) Get(ctx context.Context, orgID, id uuid.UUID) action.Result[CategoryResponse] {
	op := action.Op[CategoryResponse]{Name: "category.get", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (CategoryResponse, error) {
		return action.Remember(ctx, s.exec.Cache(), action.ScopedKey(orgID, catalog.AggregateTypeCategory, id), s.cacheTTL,
			[]string{categoryTag(id)},
			func(ctx context.Context) (CategoryResponse, error) {
				c, err := s.categories.FindByID(ctx, orgID, id)
				if err != nil {
					return CategoryResponse{}, err
				}
				return ToCategoryResponse(c), nil
			})
	})
}

// List pages through categories matching the filter
func (s *CategoryService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[CategoryResponse]] {
	op := action.Op[shared.Paginated[CategoryResponse]]{Name: "category.list", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (shared.Paginated[CategoryResponse], error) {
		filter.Normalize()
		query := catalog.CategoryFilterSchema.Build(filter.Filters, filter.Search)
		categories, total, err := s.categories.List(ctx, orgID, query, filter)
		if err != nil {
			return shared.Paginated[CategoryResponse]{}, err
		}
		items := make([]CategoryResponse, len(categories))
		for i := range categories {
			items[i] = ToCategoryResponse(&categories[i])
		}
		return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
	})
}

// Tree returns the category hierarchy below q.RootID, or the whole forest
func (s *CategoryService) Tree(ctx context.Context, orgID uuid.UUID, q TreeQuery) action.Result[[]CategoryTreeNode] {
	op := action.Op[[]CategoryTreeNode]{Name: "category.tree", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) ([]CategoryTreeNode, error) {
		root := "all"
		if q.RootID != nil {
			root = q.RootID.String()
		}
		key := fmt.Sprintf("%s:tree:%s:%t", categoriesTag(orgID), root, q.IncludeArchived)
		return action.Remember(ctx, s.exec.Cache(), key, s.treeTTL, []string{categoriesTag(orgID)},
			func(ctx context.Context) ([]CategoryTreeNode, error) {
				all, err := s.categories.FindAll(ctx, orgID, q.IncludeArchived)
				if err != nil {
					return nil, err
				}
				if q.RootID != nil && !containsCategory(all, *q.RootID) {
					return nil, shared.ErrNotFound
				}
				return ToCategoryTree(catalog.BuildCategoryTree(all, q.RootID)), nil
			})
	})
}

// Update replaces a category's details
func (s *CategoryService) Update(ctx context.Context, orgID, id uuid.UUID, in CategoryInput) action.Result[CategoryResponse] {
	op := action.Op[CategoryResponse]{
		Name:           "category.update",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           categoryTags(orgID, id),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (CategoryResponse, error) {
		c, err := s.categories.FindByID(ctx, orgID, id)
		if err != nil {
			return CategoryResponse{}, err
		}
		if err := c.Update(in.details()); err != nil {
			return CategoryResponse{}, err
		}
		if err := s.ensureUniqueName(ctx, c, &c.ID); err != nil {
			return CategoryResponse{}, err
		}
		return s.save(ctx, c)
	})
}

// Move re-parents a category. Moving it under itself or one of its
// descendants fails with CIRCULAR_REFERENCE.
func (s *CategoryService) Move(ctx context.Context, orgID, id uuid.UUID, in MoveInput) action.Result[CategoryResponse] {
	op := action.Op[CategoryResponse]{
		Name:           "category.move",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           categoryTags(orgID, id),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (CategoryResponse, error) {
		all, err := s.categories.FindAll(ctx, orgID, true)
		if err != nil {
			return CategoryResponse{}, err
		}
		c := findCategory(all, id)
		if c == nil {
			return CategoryResponse{}, shared.ErrNotFound
		}
		if in.ParentID != nil && !containsCategory(all, *in.ParentID) {
			return CategoryResponse{}, ErrUnknownParent
		}
		if err := c.MoveTo(in.ParentID, all); err != nil {
			return CategoryResponse{}, err
		}
		if err := s.ensureUniqueName(ctx, c, &c.ID); err != nil {
			return CategoryResponse{}, err
		}
		return s.save(ctx, c)
	})
}

// Archive hides a category from default listings and the tree
func (s *CategoryService) Archive(ctx context.Context, orgID, id uuid.UUID) action.Result[CategoryResponse] {
	return s.mutate(ctx, "category.archive", orgID, id, (*catalog.ProductCategory).Archive)
}

// Restore brings an archived category back
func (s *CategoryService) Restore(ctx context.Context, orgID, id uuid.UUID) action.Result[CategoryResponse] {
	return s.mutate(ctx, "category.restore", orgID, id, (*catalog.ProductCategory).Restore)
}

// Delete removes a category that has neither sub-categories nor products. Admins only.
func (s *CategoryService) Delete(ctx context.Context, orgID, id uuid.UUID) action.Result[struct{}] {
	op := action.Op[struct{}]{
		Name:           "category.delete",
		OrganizationID: orgID,
		MinRole:        organization.RoleAdmin,
		Tags:           categoryTags(orgID, id),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (struct{}, error) {
		if _, err := s.categories.FindByID(ctx, orgID, id); err != nil {
			return struct{}{}, err
		}
		children, err := s.categories.CountChildren(ctx, orgID, id)
		if err != nil {
			return struct{}{}, err
		}
		if children > 0 {
			return struct{}{}, ErrHasChildren
		}
		products, err := s.products.CountByCategory(ctx, orgID, id)
		if err != nil {
			return struct{}{}, err
		}
		if products > 0 {
			return struct{}{}, ErrHasProducts
		}
		if err := s.categories.Delete(ctx, orgID, id); err != nil {
			return struct{}{}, err
		}
		s.exec.PublishEvents(ctx, shared.NewLifecycleEvent(catalog.AggregateTypeCategory, "deleted", id, orgID))
		sc.Logger.Info("category deleted", zap.String("category_id", id.String()))
		return struct{}{}, nil
	})
}

func (s *CategoryService) mutate(ctx context.Context, name string, orgID, id uuid.UUID, apply func(*catalog.ProductCategory) error) action.Result[CategoryResponse] {
	op := action.Op[CategoryResponse]{
		Name:           name,
		OrganizationID: orgID,
		Tags:           categoryTags(orgID, id),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (CategoryResponse, error) {
		c, err := s.categories.FindByID(ctx, orgID, id)
		if err != nil {
			return CategoryResponse{}, err
		}
		if err := apply(c); err != nil {
			return CategoryResponse{}, err
		}
		return s.save(ctx, c)
	})
}

func (s *CategoryService) save(ctx context.Context, c *catalog.ProductCategory) (CategoryResponse, error) {
	if err := s.categories.Save(ctx, c); err != nil {
		return CategoryResponse{}, err
	}
	s.exec.Publish(ctx, c)
	return ToCategoryResponse(c), nil
}

func (s *CategoryService) ensureUniqueName(ctx context.Context, c *catalog.ProductCategory, excludeID *uuid.UUID) error {
	taken, err := s.categories.ExistsByName(ctx, c.OrganizationID, c.ParentID, c.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateName
	}
	return nil
}

func findCategory(all []*catalog.ProductCategory, id uuid.UUID) *catalog.ProductCategory {
	for _, c := range all {
		if c != nil && c.ID == id {
			return c
		}
	}
	return nil
}

func containsCategory(all []*catalog.ProductCategory, id uuid.UUID) bool {
	return findCategory(all, id) != nil
}
