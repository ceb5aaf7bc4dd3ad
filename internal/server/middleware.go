package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	omnitree "github.com/reoring/omnitree"
	"github.com/reoring/omnitree/internal/loader"
	"github.com/reoring/omnitree/schema"
)

// maxDefinitionBytes caps POST /encode request bodies.
const maxDefinitionBytes = 1 << 20

type ctxKeyPackage struct{}

// ContextWithPackage attaches a schema package to the context.
func ContextWithPackage(ctx context.Context, pkg *schema.Package) context.Context {
	return context.WithValue(ctx, ctxKeyPackage{}, pkg)
}

// PackageFromContext retrieves the package stored by ContextWithPackage.
func PackageFromContext(ctx context.Context) (*schema.Package, bool) {
	pkg, ok := ctx.Value(ctxKeyPackage{}).(*schema.Package)
	return pkg, ok && pkg != nil
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []omnitree.Issue) map[string]any {
	return map[string]any{"issues": issues}
}

// LoadDefinition parses the request body as a YAML schema definition and
// stores the resulting package in the request context. Invalid definitions
// answer 400 with the Issues payload.
func LoadDefinition() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDefinitionBytes+1))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(body) > maxDefinitionBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "definition too large"})
			return
		}
		pkg, err := loader.Parse(body)
		if err != nil {
			if iss, ok := omnitree.AsIssues(err); ok {
				c.AbortWithStatusJSON(http.StatusBadRequest, ErrorPayload(iss))
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Request = c.Request.WithContext(ContextWithPackage(c.Request.Context(), pkg))
		c.Next()
	}
}

// RequestLog logs one line per request.
func RequestLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
