// Package organization implements the organization (tenant) use cases:
// lifecycle, membership management, the overview and the activity log.
package organization

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/domain/activity"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const slugAttempts = 5

// StatusCounter counts an organization's records per status
type StatusCounter interface {
	CountByStatus(ctx context.Context, orgID uuid.UUID) (map[string]int64, error)
}

// Counter counts an organization's records
type Counter interface {
	Count(ctx context.Context, orgID uuid.UUID) (int64, error)
}

// OverviewSources are the repositories the overview reads from
type OverviewSources struct {
	Clients    StatusCounter
	Suppliers  StatusCounter
	Products   StatusCounter
	Categories Counter
	Companies  Counter
}

// Service handles organization operations
type Service struct {
	orgs     organization.OrganizationRepository
	members  organization.MembershipRepository
	users    identity.UserRepository
	activity activity.Repository
	sources  OverviewSources
	exec     *action.Executor
	cacheTTL time.Duration
}

// NewService creates a new organization Service
func NewService(
	orgs organization.OrganizationRepository,
	members organization.MembershipRepository,
	users identity.UserRepository,
	activityRepo activity.Repository,
	sources OverviewSources,
	exec *action.Executor,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		orgs:     orgs,
		members:  members,
		users:    users,
		activity: activityRepo,
		sources:  sources,
		exec:     exec,
		cacheTTL: cacheTTL,
	}
}

func organizationTag(id uuid.UUID) string {
	return action.EntityTag(organization.AggregateTypeOrganization, id)
}

// Create creates an organization owned by the caller
func (s *Service) Create(ctx context.Context, in OrganizationInput) action.Result[OrganizationResponse] {
	op := action.Op[OrganizationResponse]{Name: "organization.create", Input: &in}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (OrganizationResponse, error) {
		org, err := organization.NewOrganization(sc.Actor.UserID, in.details())
		if err != nil {
			return OrganizationResponse{}, err
		}
		if err := s.ensureUniqueFiscal(ctx, org.Fiscal, nil); err != nil {
			return OrganizationResponse{}, err
		}
		if org.Slug, err = s.freeSlug(ctx, org.Slug); err != nil {
			return OrganizationResponse{}, err
		}
		owner, err := organization.NewMembership(org.ID, sc.Actor.UserID, organization.RoleOwner)
		if err != nil {
			return OrganizationResponse{}, err
		}
		if err := s.orgs.Create(ctx, org, owner); err != nil {
			return OrganizationResponse{}, err
		}
		s.exec.Publish(ctx, org)
		sc.Logger.Info("organization created", zap.String("organization_id", org.ID.String()))

		resp := ToOrganizationResponse(org)
		resp.Role = string(organization.RoleOwner)
		return resp, nil
	})
}

// Get returns an organization the caller belongs to
func (s *Service) Get(ctx context.Context, orgID uuid.UUID) action.Result[OrganizationResponse] {
	op := action.Op[OrganizationResponse]{Name: "organization.get", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (OrganizationResponse, error) {
		resp, err := action.Remember(ctx, s.exec.Cache(), "organization:"+orgID.String(), s.cacheTTL,
			[]string{organizationTag(orgID)},
			func(ctx context.Context) (OrganizationResponse, error) {
				org, err := s.orgs.FindByID(ctx, orgID)
				if err != nil {
					return OrganizationResponse{}, err
				}
				return ToOrganizationResponse(org), nil
			})
		if err != nil {
			return OrganizationResponse{}, err
		}
		resp.Role = string(sc.Role)
		return resp, nil
	})
}

// ListMine lists the organizations the caller belongs to
func (s *Service) ListMine(ctx context.Context, filter shared.Filter) action.Result[shared.Paginated[OrganizationResponse]] {
	op := action.Op[shared.Paginated[OrganizationResponse]]{Name: "organization.list"}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (shared.Paginated[OrganizationResponse], error) {
		filter.Normalize()
		orgs, total, err := s.orgs.FindForUser(ctx, sc.Actor.UserID, filter)
		if err != nil {
			return shared.Paginated[OrganizationResponse]{}, err
		}
		items := make([]OrganizationResponse, len(orgs))
		for i := range orgs {
			items[i] = ToOrganizationResponse(&orgs[i])
		}
		return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
	})
}

// Update replaces an organization's details
func (s *Service) Update(ctx context.Context, orgID uuid.UUID, in OrganizationInput) action.Result[OrganizationResponse] {
	op := action.Op[OrganizationResponse]{
		Name:           "organization.update",
		OrganizationID: orgID,
		MinRole:        organization.RoleAdmin,
		Input:          &in,
		Tags:           []string{organizationTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (OrganizationResponse, error) {
		org, err := s.orgs.FindByID(ctx, orgID)
		if err != nil {
			return OrganizationResponse{}, err
		}
		if err := org.Update(in.details()); err != nil {
			return OrganizationResponse{}, err
		}
		if err := s.ensureUniqueFiscal(ctx, org.Fiscal, &org.ID); err != nil {
			return OrganizationResponse{}, err
		}
		org.Touch()
		if err := s.orgs.Save(ctx, org); err != nil {
			return OrganizationResponse{}, err
		}
		s.exec.Publish(ctx, org)
		resp := ToOrganizationResponse(org)
		resp.Role = string(sc.Role)
		return resp, nil
	})
}

// Archive hides an organization from default listings
func (s *Service) Archive(ctx context.Context, orgID uuid.UUID) action.Result[OrganizationResponse] {
	return s.mutate(ctx, "organization.archive", orgID, func(o *organization.Organization) error {
		return o.Archive(time.Now())
	})
}

// Restore brings an archived organization back
func (s *Service) Restore(ctx context.Context, orgID uuid.UUID) action.Result[OrganizationResponse] {
	return s.mutate(ctx, "organization.restore", orgID, (*organization.Organization).Restore)
}

func (s *Service) mutate(ctx context.Context, name string, orgID uuid.UUID, apply func(*organization.Organization) error) action.Result[OrganizationResponse] {
	op := action.Op[OrganizationResponse]{
		Name:           name,
		OrganizationID: orgID,
		MinRole:        organization.RoleAdmin,
		Tags:           []string{organizationTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (OrganizationResponse, error) {
		org, err := s.orgs.FindByID(ctx, orgID)
		if err != nil {
			return OrganizationResponse{}, err
		}
		if err := apply(org); err != nil {
			return OrganizationResponse{}, err
		}
		org.Touch()
		if err := s.orgs.Save(ctx, org); err != nil {
			return OrganizationResponse{}, err
		}
		s.exec.Publish(ctx, org)
		resp := ToOrganizationResponse(org)
		resp.Role = string(sc.Role)
		return resp, nil
	})
}

// Delete removes an organization and everything it owns. Owners only.
func (s *Service) Delete(ctx context.Context, orgID uuid.UUID) action.Result[struct{}] {
	op := action.Op[struct{}]{
		Name:           "organization.delete",
		OrganizationID: orgID,
		MinRole:        organization.RoleOwner,
		Tags:           []string{organizationTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (struct{}, error) {
		if err := s.orgs.Delete(ctx, orgID); err != nil {
			return struct{}{}, err
		}
		sc.Logger.Info("organization deleted")
		return struct{}{}, nil
	})
}

// Overview counts what the organization holds. The counts are read concurrently.
func (s *Service) Overview(ctx context.Context, orgID uuid.UUID) action.Result[OverviewResponse] {
	op := action.Op[OverviewResponse]{Name: "organization.overview", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (OverviewResponse, error) {
		var out OverviewResponse
		g, gctx := errgroup.WithContext(ctx)

		byStatus := func(src StatusCounter, dst *StatusCount) func() error {
			return func() error {
				counts, err := src.CountByStatus(gctx, orgID)
				if err != nil {
					return err
				}
				dst.ByStatus = counts
				for _, n := range counts {
					dst.Total += n
				}
				return nil
			}
		}
		g.Go(byStatus(s.sources.Clients, &out.Clients))
		g.Go(byStatus(s.sources.Suppliers, &out.Suppliers))
		g.Go(byStatus(s.sources.Products, &out.Products))
		g.Go(func() (err error) {
			out.Categories, err = s.sources.Categories.Count(gctx, orgID)
			return err
		})
		g.Go(func() (err error) {
			out.Companies, err = s.sources.Companies.Count(gctx, orgID)
			return err
		})
		g.Go(func() error {
			members, err := s.members.FindByOrganization(gctx, orgID)
			out.Members = len(members)
			return err
		})

		if err := g.Wait(); err != nil {
			return OverviewResponse{}, err
		}
		return out, nil
	})
}

// Activity pages through the organization's activity log, newest first
func (s *Service) Activity(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[ActivityResponse]] {
	op := action.Op[shared.Paginated[ActivityResponse]]{Name: "organization.activity", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (shared.Paginated[ActivityResponse], error) {
		filter.Normalize()
		entries, total, err := s.activity.List(ctx, orgID, activity.FilterSchema.Build(filter.Filters, ""), filter)
		if err != nil {
			return shared.Paginated[ActivityResponse]{}, err
		}
		items := make([]ActivityResponse, len(entries))
		for i, e := range entries {
			items[i] = ToActivityResponse(e)
		}
		return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
	})
}

func (s *Service) ensureUniqueFiscal(ctx context.Context, fiscal shared.FiscalIDs, excludeID *uuid.UUID) error {
	if fiscal.SIREN != "" {
		taken, err := s.orgs.ExistsBySIREN(ctx, fiscal.SIREN, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return shared.ErrDuplicateSIREN
		}
	}
	if fiscal.SIRET != "" {
		taken, err := s.orgs.ExistsBySIRET(ctx, fiscal.SIRET, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return shared.ErrDuplicateSIRET
		}
	}
	return nil
}

// freeSlug returns slug, or slug with a random suffix when it is taken
func (s *Service) freeSlug(ctx context.Context, slug string) (string, error) {
	candidate := slug
	for i := 0; i < slugAttempts; i++ {
		taken, err := s.orgs.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = organization.WithSuffix(slug)
	}
	return "", errors.New("no free slug after retries")
}
