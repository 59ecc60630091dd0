// Package company implements the use cases of the legal entities an
// organization operates through, logos included.
package company

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/domain/company"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

var (
	ErrLogoMissing  = shared.NewFieldError("INVALID_LOGO", "key", "No uploaded logo was found for this key")
	ErrLogoTooLarge = shared.NewFieldError("INVALID_LOGO_SIZE", "key", "Logo file is too large")
)

// Service handles company operations
type Service struct {
	companies   company.Repository
	storage     ObjectStorage
	exec        *action.Executor
	cacheTTL    time.Duration
	maxLogoSize int64
}

// NewService creates a new company Service
func NewService(companies company.Repository, storage ObjectStorage, exec *action.Executor, cacheTTL time.Duration, maxLogoSize int64) *Service {
	return &Service{
		companies:   companies,
		storage:     storage,
		exec:        exec,
		cacheTTL:    cacheTTL,
		maxLogoSize: maxLogoSize,
	}
}

func companyTag(id uuid.UUID) string {
	return action.EntityTag(company.AggregateTypeCompany, id)
}

func companiesTag(orgID uuid.UUID) string {
	return action.CollectionTag(orgID, "companies")
}

// Setting a new main company changes the previous one too, so every mutation
// drops the collection tag and cached details carry it.
func companyTags(orgID, id uuid.UUID) []string {
	return []string{companyTag(id), companiesTag(orgID)}
}

// Create creates a company
func (s *Service) Create(ctx context.Context, orgID uuid.UUID, in CompanyInput) action.Result[CompanyResponse] {
	op := action.Op[CompanyResponse]{
		Name:           "company.create",
		OrganizationID: orgID,
		Input:          &in,
		Tags:           []string{companiesTag(orgID)},
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (CompanyResponse, error) {
		c, err := company.NewCompany(orgID, in.details())
		if err != nil {
			return CompanyResponse{}, err
		}
		if err := s.ensureUnique(ctx, c, nil); err != nil {
			return CompanyResponse{}, err
		}
		c.SetCreatedBy(sc.Actor.UserID)
		if err := s.companies.Save(ctx, c); err != nil {
			return CompanyResponse{}, err
		}
		s.exec.Publish(ctx, c)
		sc.Logger.Info("company created", zap.String("company_id", c.ID.String()))
		return ToCompanyResponse(c), nil
	})
}

// Get returns a company with a download URL for its logo
func (s *Service) Get(ctx context.Context, orgID, id uuid.UUID) action.Result[CompanyResponse] {
	op := action.Op[CompanyResponse]{Name: "company.get", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (CompanyResponse, error) {
		resp, err := action.Remember(ctx, s.exec.Cache(), action.ScopedKey(orgID, company.AggregateTypeCompany, id), s.cacheTTL,
			companyTags(orgID, id),
			func(ctx context.Context) (CompanyResponse, error) {
				c, err := s.companies.FindByID(ctx, orgID, id)
				if err != nil {
					return CompanyResponse{}, err
				}
				return ToCompanyResponse(c), nil
			})
		if err != nil {
			return CompanyResponse{}, err
		}
		s.attachLogoURL(ctx, &resp)
		return resp, nil
	})
}

// List pages through companies matching the filter
func (s *Service) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[CompanyResponse]] {
	op := action.Op[shared.Paginated[CompanyResponse]]{Name: "company.list", OrganizationID: orgID}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (shared.Paginated[CompanyResponse], error) {
		filter.Normalize()
		query := company.CompanyFilterSchema.Build(filter.Filters, filter.Search)
		companies, total, err := s.companies.List(ctx, orgID, query, filter)
		if err != nil {
			return shared.Paginated[CompanyResponse]{}, err
		}
		items := make([]CompanyResponse, len(companies))
		for i := range companies {
			items[i] = ToCompanyResponse(&companies[i])
			s.attachLogoURL(ctx, &items[i])
		}
		return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
	})
}

// Update replaces a company's details
func (s *Service) Update(ctx context.Context, orgID, id uuid.UUID, in CompanyInput) action.Result[CompanyResponse] {
	return s.mutate(ctx, "company.update", orgID, id, &in, organization.RoleMember, func(ctx context.Context, c *company.Company) error {
		if err := c.Update(in.details()); err != nil {
			return err
		}
		return s.ensureUnique(ctx, c, &c.ID)
	})
}

// Archive archives a company; a main company loses its main flag
func (s *Service) Archive(ctx context.Context, orgID, id uuid.UUID) action.Result[CompanyResponse] {
	return s.mutate(ctx, "company.archive", orgID, id, nil, organization.RoleMember, func(_ context.Context, c *company.Company) error {
		return c.Archive()
	})
}

// Restore brings an archived company back
func (s *Service) Restore(ctx context.Context, orgID, id uuid.UUID) action.Result[CompanyResponse] {
	return s.mutate(ctx, "company.restore", orgID, id, nil, organization.RoleMember, func(_ context.Context, c *company.Company) error {
		return c.Restore()
	})
}

// SetMain makes the company the organization's main company. Admins only.
func (s *Service) SetMain(ctx context.Context, orgID, id uuid.UUID) action.Result[CompanyResponse] {
	op := action.Op[CompanyResponse]{
		Name:           "company.set_main",
		OrganizationID: orgID,
		MinRole:        organization.RoleAdmin,
		Tags:           companyTags(orgID, id),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (CompanyResponse, error) {
		c, err := s.companies.FindByID(ctx, orgID, id)
		if err != nil {
			return CompanyResponse{}, err
		}
		if c.IsMain {
			return ToCompanyResponse(c), nil
		}
		if err := c.MarkMain(); err != nil {
			return CompanyResponse{}, err
		}
		if err := s.companies.SaveAsMain(ctx, c); err != nil {
			return CompanyResponse{}, err
		}
		s.exec.Publish(ctx, c)
		sc.Logger.Info("main company changed", zap.String("company_id", c.ID.String()))
		return ToCompanyResponse(c), nil
	})
}

// RequestLogoUpload issues a storage key and a presigned PUT URL for a new logo.
// The logo only replaces the current one once confirmed.
func (s *Service) RequestLogoUpload(ctx context.Context, orgID, id uuid.UUID, in LogoUploadInput) action.Result[LogoUploadResponse] {
	op := action.Op[LogoUploadResponse]{Name: "company.logo_upload", OrganizationID: orgID, Input: &in}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (LogoUploadResponse, error) {
		c, err := s.companies.FindByID(ctx, orgID, id)
		if err != nil {
			return LogoUploadResponse{}, err
		}
		key, err := c.LogoObjectKey(in.ContentType)
		if err != nil {
			return LogoUploadResponse{}, err
		}
		upload, err := s.storage.PresignUpload(ctx, key, in.ContentType)
		if err != nil {
			return LogoUploadResponse{}, err
		}
		return LogoUploadResponse{Key: key, Upload: *upload}, nil
	})
}

// ConfirmLogo attaches an uploaded object as the company logo and removes the
// previous one from storage
func (s *Service) ConfirmLogo(ctx context.Context, orgID, id uuid.UUID, in LogoConfirmInput) action.Result[CompanyResponse] {
	var previous string
	result := s.mutate(ctx, "company.logo_confirm", orgID, id, &in, organization.RoleMember, func(ctx context.Context, c *company.Company) error {
		previous = c.LogoKey
		if err := c.SetLogo(in.Key); err != nil {
			return err
		}
		info, err := s.storage.Stat(ctx, in.Key)
		if err != nil {
			return err
		}
		if info == nil {
			return ErrLogoMissing
		}
		if s.maxLogoSize > 0 && info.Size > s.maxLogoSize {
			return ErrLogoTooLarge
		}
		return nil
	})
	if result.OK() && previous != "" && previous != in.Key {
		s.removeObject(ctx, previous)
	}
	return result
}

// Delete removes a company and its logo. Admins only.
func (s *Service) Delete(ctx context.Context, orgID, id uuid.UUID) action.Result[struct{}] {
	op := action.Op[struct{}]{
		Name:           "company.delete",
		OrganizationID: orgID,
		MinRole:        organization.RoleAdmin,
		Tags:           companyTags(orgID, id),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (struct{}, error) {
		c, err := s.companies.FindByID(ctx, orgID, id)
		if err != nil {
			return struct{}{}, err
		}
		if err := s.companies.Delete(ctx, orgID, id); err != nil {
			return struct{}{}, err
		}
		if c.LogoKey != "" {
			s.removeObject(ctx, c.LogoKey)
		}
		s.exec.PublishEvents(ctx, shared.NewLifecycleEvent(company.AggregateTypeCompany, "deleted", id, orgID))
		sc.Logger.Info("company deleted", zap.String("company_id", id.String()))
		return struct{}{}, nil
	})
}

func (s *Service) mutate(ctx context.Context, name string, orgID, id uuid.UUID, input any, minRole organization.Role, apply func(context.Context, *company.Company) error) action.Result[CompanyResponse] {
	op := action.Op[CompanyResponse]{
		Name:           name,
		OrganizationID: orgID,
		MinRole:        minRole,
		Input:          input,
		Tags:           companyTags(orgID, id),
	}
	return action.Execute(ctx, s.exec, op, func(ctx context.Context, sc action.Scope) (CompanyResponse, error) {
		c, err := s.companies.FindByID(ctx, orgID, id)
		if err != nil {
			return CompanyResponse{}, err
		}
		if err := apply(ctx, c); err != nil {
			return CompanyResponse{}, err
		}
		if err := s.companies.Save(ctx, c); err != nil {
			return CompanyResponse{}, err
		}
		s.exec.Publish(ctx, c)
		resp := ToCompanyResponse(c)
		s.attachLogoURL(ctx, &resp)
		return resp, nil
	})
}

func (s *Service) ensureUnique(ctx context.Context, c *company.Company, excludeID *uuid.UUID) error {
	checks := []struct {
		column string
		value  string
		err    error
	}{
		{"siren", c.Fiscal.SIREN, shared.ErrDuplicateSIREN},
		{"siret", c.Fiscal.SIRET, shared.ErrDuplicateSIRET},
	}
	for _, check := range checks {
		if check.value == "" {
			continue
		}
		taken, err := s.companies.ExistsBy(ctx, c.OrganizationID, check.column, check.value, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return check.err
		}
	}
	return nil
}

// attachLogoURL presigns a download URL. A presign failure leaves the URL out.
func (s *Service) attachLogoURL(ctx context.Context, resp *CompanyResponse) {
	if resp.LogoKey == "" || s.storage == nil {
		return
	}
	u, err := s.storage.PresignDownload(ctx, resp.LogoKey)
	if err != nil {
		logger.FromContext(ctx).Warn("logo presign failed", zap.String("key", resp.LogoKey), zap.Error(err))
		return
	}
	resp.LogoURL = u
}

func (s *Service) removeObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).Warn("logo cleanup failed", zap.String("key", key), zap.Error(err))
	}
}
