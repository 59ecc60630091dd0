// Package handler adapts HTTP requests to application services and writes
// their results in the response envelope.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/application/action"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/interfaces/http/dto"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
)

// reserved query parameters; every other parameter becomes a filter
var pagingParams = map[string]struct{}{
	"page":      {},
	"page_size": {},
	"order_by":  {},
	"order_dir": {},
	"search":    {},
}

// respond writes a service result. Successful results use okCode.
func respond[T any](c *gin.Context, r action.Result[T], okCode int) {
	if !r.OK() {
		fail(c, r.Status, r.Code, r.Message, r.FieldErrors)
		return
	}
	c.JSON(okCode, dto.NewSuccessResponse(r.Data))
}

// respondPage writes a paginated service result with list meta
func respondPage[T any](c *gin.Context, r action.Result[shared.Paginated[T]]) {
	if !r.OK() {
		fail(c, r.Status, r.Code, r.Message, r.FieldErrors)
		return
	}
	p := r.Data
	c.JSON(http.StatusOK, dto.NewPageResponse(p.Items, dto.Meta{
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}))
}

// respondEmpty answers 204 on success
func respondEmpty(c *gin.Context, r action.Result[struct{}]) {
	if !r.OK() {
		fail(c, r.Status, r.Code, r.Message, r.FieldErrors)
		return
	}
	c.Status(http.StatusNoContent)
}

func fail(c *gin.Context, status action.Status, code, message string, fields []action.FieldError) {
	var details []dto.ValidationDetail
	for _, f := range fields {
		details = append(details, dto.ValidationDetail{Field: f.Field, Code: f.Code, Message: f.Message})
	}
	s := string(status)
	c.JSON(dto.HTTPStatus(s), dto.NewErrorResponse(s, code, message, middleware.GetRequestID(c), details...))
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.StatusValidationError, code, message, middleware.GetRequestID(c)))
}

// pathUUID parses a UUID path parameter, answering 400 when malformed
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, dto.ErrCodeInvalidID, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body, answering 400 on malformed JSON. Field rules are
// checked by the action pipeline, not here.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(dto.StatusValidationError,
				dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size", middleware.GetRequestID(c)))
			return false
		}
		badRequest(c, dto.ErrCodeInvalidJSON, "Malformed JSON body")
		return false
	}
	return true
}

// listFilter reads paging, ordering and search from the query string. Other
// parameters become filters; repeated ones become lists and "null" stays a
// string for the filter builder to interpret.
func listFilter(c *gin.Context) shared.Filter {
	f := shared.DefaultFilter()
	q := c.Request.URL.Query()

	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		f.Page = v
	}
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil {
		f.PageSize = v
	}
	if v := q.Get("order_by"); v != "" {
		f.OrderBy = v
	}
	if v := q.Get("order_dir"); v != "" {
		f.OrderDir = strings.ToLower(v)
	}
	f.Search = strings.TrimSpace(q.Get("search"))

	for key, values := range q {
		if _, reserved := pagingParams[key]; reserved || len(values) == 0 {
			continue
		}
		if f.Filters == nil {
			f.Filters = make(map[string]any)
		}
		if len(values) == 1 {
			f.Filters[key] = values[0]
		} else {
			f.Filters[key] = values
		}
	}
	f.Normalize()
	return f
}
