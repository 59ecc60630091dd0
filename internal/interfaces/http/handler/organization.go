package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	orgapp "github.com/orgdesk/backend/internal/application/organization"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// OrganizationAPI is the organization surface used by OrganizationHandler
type OrganizationAPI interface {
	Create(ctx context.Context, in orgapp.OrganizationInput) action.Result[orgapp.OrganizationResponse]
	Get(ctx context.Context, orgID uuid.UUID) action.Result[orgapp.OrganizationResponse]
	ListMine(ctx context.Context, filter shared.Filter) action.Result[shared.Paginated[orgapp.OrganizationResponse]]
	Update(ctx context.Context, orgID uuid.UUID, in orgapp.OrganizationInput) action.Result[orgapp.OrganizationResponse]
	Archive(ctx context.Context, orgID uuid.UUID) action.Result[orgapp.OrganizationResponse]
	Restore(ctx context.Context, orgID uuid.UUID) action.Result[orgapp.OrganizationResponse]
	Delete(ctx context.Context, orgID uuid.UUID) action.Result[struct{}]
	Overview(ctx context.Context, orgID uuid.UUID) action.Result[orgapp.OverviewResponse]
	Activity(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[orgapp.ActivityResponse]]

	ListMembers(ctx context.Context, orgID uuid.UUID) action.Result[[]orgapp.MemberResponse]
	AddMember(ctx context.Context, orgID uuid.UUID, in orgapp.AddMemberInput) action.Result[orgapp.MemberResponse]
	ChangeMemberRole(ctx context.Context, orgID, userID uuid.UUID, in orgapp.ChangeRoleInput) action.Result[orgapp.MemberResponse]
	RemoveMember(ctx context.Context, orgID, userID uuid.UUID) action.Result[struct{}]
}

// OrganizationHandler handles organization, membership and dashboard endpoints
type OrganizationHandler struct {
	orgs OrganizationAPI
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(orgs OrganizationAPI) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs}
}

// Create godoc
// @Summary      Create an organization
// @Description  Create an organization owned by the caller
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        request body organization.OrganizationInput true "Organization details"
// @Success      201 {object} dto.Response{data=organization.OrganizationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var in orgapp.OrganizationInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.orgs.Create(c.Request.Context(), in), http.StatusCreated)
}

// List returns the organizations the caller belongs to
//
// @Summary      List my organizations
// @Description  Retrieve a paginated list of the organizations the caller belongs to
// @Tags         organizations
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort column" default(created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        search query string false "Search keyword"
// @Success      200 {object} dto.Response{data=[]organization.OrganizationResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations [get]
func (h *OrganizationHandler) List(c *gin.Context) {
	respondPage(c, h.orgs.ListMine(c.Request.Context(), listFilter(c)))
}

// Get godoc
// @Summary      Get organization by ID
// @Description  Retrieve an organization the caller belongs to
// @Tags         organizations
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Success      200 {object} dto.Response{data=organization.OrganizationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId} [get]
func (h *OrganizationHandler) Get(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	respond(c, h.orgs.Get(c.Request.Context(), orgID), http.StatusOK)
}

// Update godoc
// @Summary      Update an organization
// @Description  Update the organization name and details
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        request body organization.OrganizationInput true "Organization details"
// @Success      200 {object} dto.Response{data=organization.OrganizationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId} [put]
func (h *OrganizationHandler) Update(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	var in orgapp.OrganizationInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.orgs.Update(c.Request.Context(), orgID, in), http.StatusOK)
}

// Archive godoc
// @Summary      Archive an organization
// @Description  Archive the organization
// @Tags         organizations
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Success      200 {object} dto.Response{data=organization.OrganizationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/archive [post]
func (h *OrganizationHandler) Archive(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	respond(c, h.orgs.Archive(c.Request.Context(), orgID), http.StatusOK)
}

// Restore godoc
// @Summary      Restore an organization
// @Description  Restore an archived organization
// @Tags         organizations
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Success      200 {object} dto.Response{data=organization.OrganizationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/restore [post]
func (h *OrganizationHandler) Restore(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	respond(c, h.orgs.Restore(c.Request.Context(), orgID), http.StatusOK)
}

// Delete godoc
// @Summary      Delete an organization
// @Description  Delete the organization and everything it owns
// @Tags         organizations
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId} [delete]
func (h *OrganizationHandler) Delete(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	respondEmpty(c, h.orgs.Delete(c.Request.Context(), orgID))
}

// Overview returns the dashboard counters
//
// @Summary      Organization overview
// @Description  Return dashboard counters for the organization
// @Tags         organizations
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Success      200 {object} dto.Response{data=organization.OverviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/overview [get]
func (h *OrganizationHandler) Overview(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	respond(c, h.orgs.Overview(c.Request.Context(), orgID), http.StatusOK)
}

// Activity returns the organization's activity feed, newest first
//
// @Summary      Organization activity
// @Description  Retrieve the organization activity feed, newest first
// @Tags         organizations
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]organization.ActivityResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/activity [get]
func (h *OrganizationHandler) Activity(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	respondPage(c, h.orgs.Activity(c.Request.Context(), orgID, listFilter(c)))
}

// ListMembers godoc
// @Summary      List members
// @Description  List the organization members and their roles
// @Tags         members
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]organization.MemberResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/members [get]
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	respond(c, h.orgs.ListMembers(c.Request.Context(), orgID), http.StatusOK)
}

// AddMember godoc
// @Summary      Add a member
// @Description  Add an existing user to the organization
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        request body organization.AddMemberInput true "Member email and role"
// @Success      201 {object} dto.Response{data=organization.MemberResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/members [post]
func (h *OrganizationHandler) AddMember(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	var in orgapp.AddMemberInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.orgs.AddMember(c.Request.Context(), orgID, in), http.StatusCreated)
}

// ChangeMemberRole godoc
// @Summary      Change member role
// @Description  Change the role of an organization member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        userId path string true "User ID" format(uuid)
// @Param        request body organization.ChangeRoleInput true "New role"
// @Success      200 {object} dto.Response{data=organization.MemberResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/members/{userId} [put]
func (h *OrganizationHandler) ChangeMemberRole(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}
	var in orgapp.ChangeRoleInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.orgs.ChangeMemberRole(c.Request.Context(), orgID, userID, in), http.StatusOK)
}

// RemoveMember godoc
// @Summary      Remove a member
// @Description  Remove a user from the organization
// @Tags         members
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        userId path string true "User ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/members/{userId} [delete]
func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}
	respondEmpty(c, h.orgs.RemoveMember(c.Request.Context(), orgID, userID))
}
