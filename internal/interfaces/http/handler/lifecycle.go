package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	catalogapp "github.com/orgdesk/backend/internal/application/catalog"
	partnerapp "github.com/orgdesk/backend/internal/application/partner"
	"github.com/orgdesk/backend/internal/application/workflow"
	"github.com/orgdesk/backend/internal/domain/shared"
)

// LifecycleAPI is the surface shared by organization-scoped entities with a
// status workflow: clients, suppliers and products
type LifecycleAPI[In, S, Out any] interface {
	Create(ctx context.Context, orgID uuid.UUID, in In) action.Result[Out]
	Get(ctx context.Context, orgID, id uuid.UUID) action.Result[Out]
	List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[Out]]
	Update(ctx context.Context, orgID, id uuid.UUID, in In) action.Result[Out]
	ChangeStatus(ctx context.Context, orgID, id uuid.UUID, in S) action.Result[Out]
	Archive(ctx context.Context, orgID, id uuid.UUID) action.Result[Out]
	Restore(ctx context.Context, orgID, id uuid.UUID) action.Result[Out]
	Delete(ctx context.Context, orgID, id uuid.UUID) action.Result[struct{}]
	Transitions(ctx context.Context, orgID uuid.UUID) action.Result[workflow.Transitions]
}

// LifecycleHandler serves the CRUD, status and archive endpoints of one entity
type LifecycleHandler[In, S, Out any] struct {
	svc LifecycleAPI[In, S, Out]
}

type (
	ClientHandler   = LifecycleHandler[partnerapp.ClientInput, partnerapp.StatusInput, partnerapp.ClientResponse]
	SupplierHandler = LifecycleHandler[partnerapp.SupplierInput, partnerapp.StatusInput, partnerapp.SupplierResponse]
	ProductHandler  = LifecycleHandler[catalogapp.ProductInput, catalogapp.StatusInput, catalogapp.ProductResponse]
)

// NewClientHandler creates the client endpoints
func NewClientHandler(svc LifecycleAPI[partnerapp.ClientInput, partnerapp.StatusInput, partnerapp.ClientResponse]) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// NewSupplierHandler creates the supplier endpoints
func NewSupplierHandler(svc LifecycleAPI[partnerapp.SupplierInput, partnerapp.StatusInput, partnerapp.SupplierResponse]) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// NewProductHandler creates the product endpoints
func NewProductHandler(svc LifecycleAPI[catalogapp.ProductInput, catalogapp.StatusInput, catalogapp.ProductResponse]) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// Create godoc
// @Summary      Create a client, supplier or product
// @Description  Create an entity in the organization. The body is partner.ClientInput, partner.SupplierInput or catalog.ProductInput depending on the route.
// @Tags         clients,suppliers,products
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        request body object true "Entity details"
// @Success      201 {object} dto.Response{data=object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients [post]
// @Router       /organizations/{orgId}/suppliers [post]
// @Router       /organizations/{orgId}/products [post]
func (h *LifecycleHandler[In, S, Out]) Create(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	var in In
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.svc.Create(c.Request.Context(), orgID, in), http.StatusCreated)
}

// Get godoc
// @Summary      Get a client, supplier or product
// @Description  Retrieve an entity by its ID
// @Tags         clients,suppliers,products
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Entity ID" format(uuid)
// @Success      200 {object} dto.Response{data=object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id} [get]
// @Router       /organizations/{orgId}/suppliers/{id} [get]
// @Router       /organizations/{orgId}/products/{id} [get]
func (h *LifecycleHandler[In, S, Out]) Get(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respond(c, h.svc.Get(c.Request.Context(), orgID, id), http.StatusOK)
}

// List godoc
// @Summary      List clients, suppliers or products
// @Description  Retrieve a paginated list. Query parameters other than paging are column filters.
// @Tags         clients,suppliers,products
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort column" default(created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        search query string false "Search keyword"
// @Param        status query string false "Status filter"
// @Param        archived query bool false "Archived filter"
// @Success      200 {object} dto.Response{data=[]object,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients [get]
// @Router       /organizations/{orgId}/suppliers [get]
// @Router       /organizations/{orgId}/products [get]
func (h *LifecycleHandler[In, S, Out]) List(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	respondPage(c, h.svc.List(c.Request.Context(), orgID, listFilter(c)))
}

// Update godoc
// @Summary      Update a client, supplier or product
// @Description  Replace the entity details
// @Tags         clients,suppliers,products
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Entity ID" format(uuid)
// @Param        request body object true "Entity details"
// @Success      200 {object} dto.Response{data=object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id} [put]
// @Router       /organizations/{orgId}/suppliers/{id} [put]
// @Router       /organizations/{orgId}/products/{id} [put]
func (h *LifecycleHandler[In, S, Out]) Update(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	var in In
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.svc.Update(c.Request.Context(), orgID, id, in), http.StatusOK)
}

// ChangeStatus moves the entity along its status workflow
//
// @Summary      Change status
// @Description  Move the entity along its status workflow
// @Tags         clients,suppliers,products
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Entity ID" format(uuid)
// @Param        request body partner.StatusInput true "Target status"
// @Success      200 {object} dto.Response{data=object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/status [post]
// @Router       /organizations/{orgId}/suppliers/{id}/status [post]
// @Router       /organizations/{orgId}/products/{id}/status [post]
func (h *LifecycleHandler[In, S, Out]) ChangeStatus(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	var in S
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.svc.ChangeStatus(c.Request.Context(), orgID, id, in), http.StatusOK)
}

// Archive godoc
// @Summary      Archive
// @Description  Archive the entity
// @Tags         clients,suppliers,products
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Entity ID" format(uuid)
// @Success      200 {object} dto.Response{data=object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/archive [post]
// @Router       /organizations/{orgId}/suppliers/{id}/archive [post]
// @Router       /organizations/{orgId}/products/{id}/archive [post]
func (h *LifecycleHandler[In, S, Out]) Archive(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respond(c, h.svc.Archive(c.Request.Context(), orgID, id), http.StatusOK)
}

// Restore godoc
// @Summary      Restore
// @Description  Restore an archived entity
// @Tags         clients,suppliers,products
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Entity ID" format(uuid)
// @Success      200 {object} dto.Response{data=object}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id}/restore [post]
// @Router       /organizations/{orgId}/suppliers/{id}/restore [post]
// @Router       /organizations/{orgId}/products/{id}/restore [post]
func (h *LifecycleHandler[In, S, Out]) Restore(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respond(c, h.svc.Restore(c.Request.Context(), orgID, id), http.StatusOK)
}

// Delete godoc
// @Summary      Delete
// @Description  Delete the entity
// @Tags         clients,suppliers,products
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Entity ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/{id} [delete]
// @Router       /organizations/{orgId}/suppliers/{id} [delete]
// @Router       /organizations/{orgId}/products/{id} [delete]
func (h *LifecycleHandler[In, S, Out]) Delete(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respondEmpty(c, h.svc.Delete(c.Request.Context(), orgID, id))
}

// Transitions describes the status workflow
//
// @Summary      Status transitions
// @Description  Describe the status workflow and whether it is enforced
// @Tags         clients,suppliers,products
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Success      200 {object} dto.Response{data=workflow.Transitions}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/clients/transitions [get]
// @Router       /organizations/{orgId}/suppliers/transitions [get]
// @Router       /organizations/{orgId}/products/transitions [get]
func (h *LifecycleHandler[In, S, Out]) Transitions(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	respond(c, h.svc.Transitions(c.Request.Context(), orgID), http.StatusOK)
}

func orgAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return orgID, id, true
}
