package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/infrastructure/telemetry"
)

// Profiling tags CPU and allocation samples taken while a request runs with
// its route, method, resource and organization. Requests to skipPaths run
// unlabeled.
func Profiling(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		telemetry.WithProfilingLabels(c.Request.Context(), profilingLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context) map[string]string {
	route := c.FullPath()
	if route == "" {
		route = unmatchedRoute
	}
	return map[string]string{
		telemetry.ProfilingLabelMethod:       c.Request.Method,
		telemetry.ProfilingLabelRoute:        route,
		telemetry.ProfilingLabelController:   resourceOf(route),
		telemetry.ProfilingLabelOrganization: c.Param("orgId"),
	}
}

// resourceOf returns the last static segment of a route pattern,
// e.g. "contacts" for /api/v1/organizations/:orgId/clients/:id/contacts/:contactId
func resourceOf(route string) string {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		if p == "" || strings.HasPrefix(p, ":") || strings.HasPrefix(p, "*") {
			continue
		}
		return p
	}
	return ""
}
