package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	companyapp "github.com/orgdesk/backend/internal/application/company"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// CompanyAPI is the company surface used by CompanyHandler
type CompanyAPI interface {
	Create(ctx context.Context, orgID uuid.UUID, in companyapp.CompanyInput) action.Result[companyapp.CompanyResponse]
	Get(ctx context.Context, orgID, id uuid.UUID) action.Result[companyapp.CompanyResponse]
	List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[companyapp.CompanyResponse]]
	Update(ctx context.Context, orgID, id uuid.UUID, in companyapp.CompanyInput) action.Result[companyapp.CompanyResponse]
	Archive(ctx context.Context, orgID, id uuid.UUID) action.Result[companyapp.CompanyResponse]
	Restore(ctx context.Context, orgID, id uuid.UUID) action.Result[companyapp.CompanyResponse]
	SetMain(ctx context.Context, orgID, id uuid.UUID) action.Result[companyapp.CompanyResponse]
	RequestLogoUpload(ctx context.Context, orgID, id uuid.UUID, in companyapp.LogoUploadInput) action.Result[companyapp.LogoUploadResponse]
	ConfirmLogo(ctx context.Context, orgID, id uuid.UUID, in companyapp.LogoConfirmInput) action.Result[companyapp.CompanyResponse]
	Delete(ctx context.Context, orgID, id uuid.UUID) action.Result[struct{}]
}

// CompanyHandler handles the organization's own legal entities
type CompanyHandler struct {
	companies CompanyAPI
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companies CompanyAPI) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// Create godoc
// @Summary      Create a company
// @Description  Create a legal entity of the organization
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        request body company.CompanyInput true "Company details"
// @Success      201 {object} dto.Response{data=company.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	var in companyapp.CompanyInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.companies.Create(c.Request.Context(), orgID, in), http.StatusCreated)
}

// Get godoc
// @Summary      Get company by ID
// @Description  Retrieve a company by its ID
// @Tags         companies
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} dto.Response{data=company.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respond(c, h.companies.Get(c.Request.Context(), orgID, id), http.StatusOK)
}

// List godoc
// @Summary      List companies
// @Description  Retrieve a paginated list of companies
// @Tags         companies
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort column" default(created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        search query string false "Search keyword"
// @Success      200 {object} dto.Response{data=[]company.CompanyResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	respondPage(c, h.companies.List(c.Request.Context(), orgID, listFilter(c)))
}

// Update godoc
// @Summary      Update a company
// @Description  Update the company details
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Company ID" format(uuid)
// @Param        request body company.CompanyInput true "Company details"
// @Success      200 {object} dto.Response{data=company.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/companies/{id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	var in companyapp.CompanyInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.companies.Update(c.Request.Context(), orgID, id, in), http.StatusOK)
}

// Archive godoc
// @Summary      Archive a company
// @Description  Archive the company
// @Tags         companies
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} dto.Response{data=company.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/companies/{id}/archive [post]
func (h *CompanyHandler) Archive(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respond(c, h.companies.Archive(c.Request.Context(), orgID, id), http.StatusOK)
}

// Restore godoc
// @Summary      Restore a company
// @Description  Restore an archived company
// @Tags         companies
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} dto.Response{data=company.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/companies/{id}/restore [post]
func (h *CompanyHandler) Restore(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respond(c, h.companies.Restore(c.Request.Context(), orgID, id), http.StatusOK)
}

// SetMain makes the company the organization's main one
//
// @Summary      Set main company
// @Description  Make the company the organization's main one
// @Tags         companies
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} dto.Response{data=company.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/companies/{id}/main [post]
func (h *CompanyHandler) SetMain(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respond(c, h.companies.SetMain(c.Request.Context(), orgID, id), http.StatusOK)
}

// RequestLogoUpload returns a presigned URL the client uploads the logo to
//
// @Summary      Request logo upload
// @Description  Return a presigned URL to upload the logo to
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Company ID" format(uuid)
// @Param        request body company.LogoUploadInput true "Logo content type and size"
// @Success      200 {object} dto.Response{data=company.LogoUploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/companies/{id}/logo/upload [post]
func (h *CompanyHandler) RequestLogoUpload(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	var in companyapp.LogoUploadInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.companies.RequestLogoUpload(c.Request.Context(), orgID, id, in), http.StatusOK)
}

// ConfirmLogo attaches an uploaded object as the company logo
//
// @Summary      Confirm logo
// @Description  Attach an uploaded object as the company logo
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Company ID" format(uuid)
// @Param        request body company.LogoConfirmInput true "Uploaded object key"
// @Success      200 {object} dto.Response{data=company.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/companies/{id}/logo [put]
func (h *CompanyHandler) ConfirmLogo(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	var in companyapp.LogoConfirmInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.companies.ConfirmLogo(c.Request.Context(), orgID, id, in), http.StatusOK)
}

// Delete godoc
// @Summary      Delete a company
// @Description  Delete the company
// @Tags         companies
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Company ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respondEmpty(c, h.companies.Delete(c.Request.Context(), orgID, id))
}
