package headerextractors

import (
	"context"
	"net/http"

	"github.com/agrosense/agrosense"
	"github.com/agrosense/agrosense/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func updateContextWithRequestID(ctx *gin.Context, headers http.Header) {
	reqID := headers.Get("x-request-id")
	if reqID != "" {
		ctx.Set(agrosense.ContextKeyRequestID, reqID)
		ctx.Request = ctx.Request.WithContext(context.WithValue(ctx.Request.Context(), agrosense.ContextKeyRequestID, reqID))
	}
}

func updateContextWithSource(ctx *gin.Context, headers http.Header) {
	sourceHeader := headers.Get(models.HttpSourceHeader)
	if sourceHeader != "" {
		ctx.Set(agrosense.ContextKeySource, sourceHeader)
		ctx.Request = ctx.Request.WithContext(context.WithValue(ctx.Request.Context(), agrosense.ContextKeySource, sourceHeader))
	}
}

// RequestMetadataToContextMiddleware copies the request id and source headers
// into the request context so services and event publishers can read them.
func RequestMetadataToContextMiddleware(logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		updateContextWithRequestID(c, c.Request.Header)
		updateContextWithSource(c, c.Request.Header)
		c.Next()
	}
}
