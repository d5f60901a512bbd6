package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/tokenvault/internal/errors"
	"github.com/allisson/tokenvault/internal/httputil"
	tenantUseCase "github.com/allisson/tokenvault/internal/tenant/usecase"
)

// apiKeyHeader carries the tenant's plain API credential.
const apiKeyHeader = "X-API-Key"

// userIDHeader identifies the acting user within a tenant for audit entries.
const userIDHeader = "X-User-ID"

// defaultUserID is recorded when the caller does not identify a user.
const defaultUserID = "system"

// UserID returns the acting user for audit attribution, taken from the
// X-User-ID header or falling back to "system".
func UserID(c *gin.Context) string {
	userID := strings.TrimSpace(c.GetHeader(userIDHeader))
	if userID == "" {
		return defaultUserID
	}
	return userID
}

// AuthenticationMiddleware authenticates requests via the X-API-Key header.
//
// The middleware:
// 1. Extracts the plain credential from the X-API-Key header
// 2. Resolves it to an active tenant via tenantUseCase.Resolve()
// 3. Stores the authenticated tenant in the request context
// 4. Allows downstream handlers to access the tenant via GetTenant()
//
// Error handling:
//   - Missing or empty header → 401 Unauthorized
//   - Unknown, mismatched, or deactivated credential → 401 Unauthorized
//
// Resolve never reveals which check failed, so all authentication failures
// look identical to the caller.
func AuthenticationMiddleware(
	tenantUC tenantUseCase.TenantUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainCredential := c.GetHeader(apiKeyHeader)
		if plainCredential == "" {
			logger.Debug("authentication failed: missing api key header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		tenant, err := tenantUC.Resolve(c.Request.Context(), plainCredential)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store authenticated tenant in context
		ctx := WithTenant(c.Request.Context(), tenant)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("tenant_id", tenant.ID))

		c.Next()
	}
}

// AdminMiddleware restricts access to administrative tenants.
//
// MUST be used after AuthenticationMiddleware. Non-admin tenants receive
// 403 Forbidden; requests without an authenticated tenant receive 401.
func AdminMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := GetTenant(c.Request.Context())
		if !ok || tenant == nil {
			logger.Error("admin middleware: no authenticated tenant in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !tenant.IsAdmin {
			logger.Debug("admin access denied",
				slog.String("tenant_id", tenant.ID))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
