package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	catalogapp "github.com/orgdesk/backend/internal/application/catalog"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/interfaces/http/dto"
)

// CategoryAPI is the product category surface used by CategoryHandler
type CategoryAPI interface {
	Create(ctx context.Context, orgID uuid.UUID, in catalogapp.CategoryInput) action.Result[catalogapp.CategoryResponse]
	Get(ctx context.Context, orgID, id uuid.UUID) action.Result[catalogapp.CategoryResponse]
	List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) action.Result[shared.Paginated[catalogapp.CategoryResponse]]
	Tree(ctx context.Context, orgID uuid.UUID, q catalogapp.TreeQuery) action.Result[[]catalogapp.CategoryTreeNode]
	Update(ctx context.Context, orgID, id uuid.UUID, in catalogapp.CategoryInput) action.Result[catalogapp.CategoryResponse]
	Move(ctx context.Context, orgID, id uuid.UUID, in catalogapp.MoveInput) action.Result[catalogapp.CategoryResponse]
	Archive(ctx context.Context, orgID, id uuid.UUID) action.Result[catalogapp.CategoryResponse]
	Restore(ctx context.Context, orgID, id uuid.UUID) action.Result[catalogapp.CategoryResponse]
	Delete(ctx context.Context, orgID, id uuid.UUID) action.Result[struct{}]
}

// CategoryHandler handles product category endpoints
type CategoryHandler struct {
	categories CategoryAPI
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories CategoryAPI) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Create godoc
// @Summary      Create a category
// @Description  Create a root category or a child of an existing category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        request body catalog.CategoryInput true "Category details"
// @Success      201 {object} dto.Response{data=catalog.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/product-categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	var in catalogapp.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.categories.Create(c.Request.Context(), orgID, in), http.StatusCreated)
}

// Get godoc
// @Summary      Get category by ID
// @Description  Retrieve a category by its ID
// @Tags         categories
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/product-categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respond(c, h.categories.Get(c.Request.Context(), orgID, id), http.StatusOK)
}

// List godoc
// @Summary      List categories
// @Description  Retrieve a paginated list of categories
// @Tags         categories
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        order_by query string false "Sort column" default(created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        search query string false "Search keyword"
// @Success      200 {object} dto.Response{data=[]catalog.CategoryResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/product-categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	respondPage(c, h.categories.List(c.Request.Context(), orgID, listFilter(c)))
}

// Tree returns the nested category tree, optionally rooted at root_id
//
// @Summary      Category tree
// @Description  Retrieve the nested category tree
// @Tags         categories
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        root_id query string false "Root category ID" format(uuid)
// @Param        include_archived query bool false "Include archived categories"
// @Success      200 {object} dto.Response{data=[]catalog.CategoryTreeNode}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/product-categories/tree [get]
func (h *CategoryHandler) Tree(c *gin.Context) {
	orgID, ok := pathUUID(c, "orgId")
	if !ok {
		return
	}
	var q catalogapp.TreeQuery
	if raw := c.Query("root_id"); raw != "" {
		rootID, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, dto.ErrCodeInvalidID, "Invalid root_id format")
			return
		}
		q.RootID = &rootID
	}
	if raw := c.Query("include_archived"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, dto.ErrCodeBadRequest, "include_archived must be a boolean")
			return
		}
		q.IncludeArchived = include
	}
	respond(c, h.categories.Tree(c.Request.Context(), orgID, q), http.StatusOK)
}

// Update godoc
// @Summary      Update a category
// @Description  Update the category details
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body catalog.CategoryInput true "Category details"
// @Success      200 {object} dto.Response{data=catalog.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/product-categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	var in catalogapp.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.categories.Update(c.Request.Context(), orgID, id, in), http.StatusOK)
}

// Move re-parents a category
//
// @Summary      Move a category
// @Description  Move the category under a new parent or to the root
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body catalog.MoveInput true "New parent"
// @Success      200 {object} dto.Response{data=catalog.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/product-categories/{id}/move [post]
func (h *CategoryHandler) Move(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	var in catalogapp.MoveInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.categories.Move(c.Request.Context(), orgID, id, in), http.StatusOK)
}

// Archive godoc
// @Summary      Archive a category
// @Description  Archive the category
// @Tags         categories
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/product-categories/{id}/archive [post]
func (h *CategoryHandler) Archive(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respond(c, h.categories.Archive(c.Request.Context(), orgID, id), http.StatusOK)
}

// Restore godoc
// @Summary      Restore a category
// @Description  Restore an archived category
// @Tags         categories
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.CategoryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/product-categories/{id}/restore [post]
func (h *CategoryHandler) Restore(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respond(c, h.categories.Restore(c.Request.Context(), orgID, id), http.StatusOK)
}

// Delete godoc
// @Summary      Delete a category
// @Description  Delete a category without children or products
// @Tags         categories
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        id path string true "Category ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /organizations/{orgId}/product-categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	orgID, id, ok := orgAndID(c)
	if !ok {
		return
	}
	respondEmpty(c, h.categories.Delete(c.Request.Context(), orgID, id))
}
