package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/tokenvault/internal/httputil"
	"github.com/allisson/tokenvault/internal/tenant/http/dto"
	tenantUseCase "github.com/allisson/tokenvault/internal/tenant/usecase"
	customValidation "github.com/allisson/tokenvault/internal/validation"
)

// TenantHandler handles HTTP requests for tenant administration.
// All routes require an admin tenant, enforced by AdminMiddleware.
type TenantHandler struct {
	tenantUseCase tenantUseCase.TenantUseCase
	logger        *slog.Logger
}

// NewTenantHandler creates a new tenant handler with required dependencies.
func NewTenantHandler(
	tenantUC tenantUseCase.TenantUseCase,
	logger *slog.Logger,
) *TenantHandler {
	return &TenantHandler{
		tenantUseCase: tenantUC,
		logger:        logger,
	}
}

// CreateHandler registers a new tenant with a generated API credential.
// POST /v1/tenants - Requires admin tenant.
// Returns 201 Created with tenant metadata and the plain credential.
// SECURITY: The credential appears only in this response and is never
// retrievable again.
func (h *TenantHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateTenantRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := dto.MapCreateTenantRequestToInput(&req, UserID(c))

	output, err := h.tenantUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapTenantToCreateResponse(output)
	c.JSON(http.StatusCreated, response)
}

// GetHandler retrieves a tenant by ID, including deactivated tenants.
// GET /v1/tenants/:id - Requires admin tenant.
// Returns 200 OK with tenant metadata.
func (h *TenantHandler) GetHandler(c *gin.Context) {
	tenantID := c.Param("id")

	tenant, err := h.tenantUseCase.Get(c.Request.Context(), tenantID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapTenantToResponse(tenant)
	c.JSON(http.StatusOK, response)
}

// UpdateHandler modifies a tenant's name, encryption settings, and compliance
// defaults, and optionally rotates its API credential. The master key
// reference is immutable.
// PUT /v1/tenants/:id - Requires admin tenant.
// Returns 200 OK with updated tenant metadata.
// SECURITY: When the request rotated the credential, the new credential
// appears only in this response and is never retrievable again.
func (h *TenantHandler) UpdateHandler(c *gin.Context) {
	tenantID := c.Param("id")

	var req dto.UpdateTenantRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := dto.MapUpdateTenantRequestToInput(&req, UserID(c))

	output, err := h.tenantUseCase.Update(c.Request.Context(), tenantID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapTenantToUpdateResponse(output)
	c.JSON(http.StatusOK, response)
}

// DeactivateHandler soft deletes a tenant, blocking vault operations while
// preserving its records and audit history.
// DELETE /v1/tenants/:id - Requires admin tenant.
// Returns 204 No Content.
func (h *TenantHandler) DeactivateHandler(c *gin.Context) {
	tenantID := c.Param("id")

	if err := h.tenantUseCase.Deactivate(c.Request.Context(), tenantID, UserID(c)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListHandler retrieves active tenants with pagination support. Deactivated
// tenants are reachable through GetHandler only.
// GET /v1/tenants?offset=0&limit=50 - Requires admin tenant.
// Returns 200 OK with paginated tenant list.
func (h *TenantHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	tenants, err := h.tenantUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapTenantsToListResponse(tenants)
	c.JSON(http.StatusOK, response)
}
