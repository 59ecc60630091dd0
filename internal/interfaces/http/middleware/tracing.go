package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request named after the route pattern.
// SpanAttributes must run after it to decorate the span.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// SpanAttributes adds request, user and organization ids to the active span
// and marks it failed on 5xx responses
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		enrichSpan(c, span)
		markSpanError(c, span)
	}
}

func enrichSpan(c *gin.Context, span trace.Span) {
	ctx := c.Request.Context()
	var attrs []attribute.KeyValue
	if id := GetRequestID(c); id != "" {
		attrs = append(attrs, attribute.String("request_id", id))
	}
	if id := logger.GetUserID(ctx); id != "" {
		attrs = append(attrs, attribute.String("user_id", id))
	}
	if id := c.Param("orgId"); id != "" {
		attrs = append(attrs, attribute.String("organization_id", id))
	}
	span.SetAttributes(attrs...)
}

func markSpanError(c *gin.Context, span trace.Span) {
	status := c.Writer.Status()
	if status < http.StatusInternalServerError {
		return
	}
	msg := http.StatusText(status)
	if len(c.Errors) > 0 {
		msg = c.Errors.Last().Error()
	}
	span.SetStatus(codes.Error, msg)
}
