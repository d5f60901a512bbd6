// Package http provides HTTP handlers for vault token operations.
// Every route runs on behalf of the authenticated tenant resolved by the
// authentication middleware; token IDs from other tenants behave like
// missing tokens.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/tokenvault/internal/crypto/domain"
	apperrors "github.com/allisson/tokenvault/internal/errors"
	"github.com/allisson/tokenvault/internal/httputil"
	tenantHTTP "github.com/allisson/tokenvault/internal/tenant/http"
	tokenizationDomain "github.com/allisson/tokenvault/internal/tokenization/domain"
	"github.com/allisson/tokenvault/internal/tokenization/http/dto"
	tokenizationUseCase "github.com/allisson/tokenvault/internal/tokenization/usecase"
	customValidation "github.com/allisson/tokenvault/internal/validation"
)

// TokenHandler handles HTTP requests for tokenize, detokenize, and token
// lifecycle operations.
type TokenHandler struct {
	tokenizationUseCase tokenizationUseCase.TokenizationUseCase
	logger              *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	tokenizationUC tokenizationUseCase.TokenizationUseCase,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		tokenizationUseCase: tokenizationUC,
		logger:              logger,
	}
}

// parseTokenID extracts and parses the token ID from the URL parameter.
// An unparseable ID behaves like a missing token so callers cannot
// distinguish malformed IDs from deleted ones.
func parseTokenID(c *gin.Context) (uuid.UUID, error) {
	tokenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.ErrNotFound, "invalid token id")
	}
	return tokenID, nil
}

// TokenizeHandler encrypts a sensitive value and returns its token.
// POST /v1/tokens
// Returns 201 Created with token metadata.
func (h *TokenHandler) TokenizeHandler(c *gin.Context) {
	tenant, ok := tenantHTTP.GetTenant(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.TokenizeRequest

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

	// Decode base64 value
	value, err := base64.StdEncoding.DecodeString(req.Value)
	if err != nil {
		httputil.HandleBadRequestGin(c,
			fmt.Errorf("value must be valid base64"),
			h.logger)
		return
	}
	// SECURITY: Zero the decoded value after tokenization
	defer cryptoDomain.Zero(value)

	// Calculate expiration time if TTL is provided
	var expiresAt *time.Time
	if req.TTL != nil {
		expiry := time.Now().UTC().Add(time.Duration(*req.TTL) * time.Second)
		expiresAt = &expiry
	}

	input := &tokenizationDomain.TokenizeInput{
		Value:               value,
		Type:                req.Type,
		Metadata:            req.Metadata,
		Compliance:          dto.MapComplianceFlagsRequestToDomain(req.Compliance),
		ExpiresAt:           expiresAt,
		GenerateFingerprint: req.GenerateFingerprint,
		UserID:              tenantHTTP.UserID(c),
	}

	token, err := h.tokenizationUseCase.Tokenize(c.Request.Context(), tenant, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapTokenToResponse(token)
	c.JSON(http.StatusCreated, response)
}

// DetokenizeHandler decrypts and returns the original sensitive value.
// POST /v1/tokens/:id/detokenize
// Returns 200 OK with the base64-encoded value.
// SECURITY: Plaintext is zeroed after the response is encoded.
func (h *TokenHandler) DetokenizeHandler(c *gin.Context) {
	tenant, ok := tenantHTTP.GetTenant(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	tokenID, err := parseTokenID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	plaintext, token, err := h.tokenizationUseCase.Detokenize(
		c.Request.Context(),
		tenant,
		tokenID,
		tenantHTTP.UserID(c),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	// SECURITY: Zero plaintext from memory after encoding
	defer cryptoDomain.Zero(plaintext)

	response := dto.DetokenizeResponse{
		Value: base64.StdEncoding.EncodeToString(plaintext),
		Token: dto.MapTokenToResponse(token),
	}
	c.JSON(http.StatusOK, response)
}

// GetHandler retrieves token metadata without decrypting the value.
// GET /v1/tokens/:id
// Returns 200 OK with token metadata.
func (h *TokenHandler) GetHandler(c *gin.Context) {
	tenant, ok := tenantHTTP.GetTenant(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	tokenID, err := parseTokenID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	token, err := h.tokenizationUseCase.GetToken(
		c.Request.Context(),
		tenant,
		tokenID,
		tenantHTTP.UserID(c),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapTokenToResponse(token)
	c.JSON(http.StatusOK, response)
}

// FindByFingerprintHandler retrieves token metadata by plaintext fingerprint.
// GET /v1/tokens?fingerprint=<hex>
// Returns 200 OK with token metadata. Only tokens created with
// generate_fingerprint are findable; anything else is 404.
func (h *TokenHandler) FindByFingerprintHandler(c *gin.Context) {
	tenant, ok := tenantHTTP.GetTenant(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	fingerprint := c.Query("fingerprint")
	if fingerprint == "" {
		httputil.HandleErrorGin(c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "fingerprint query parameter is required"),
			h.logger)
		return
	}

	token, err := h.tokenizationUseCase.FindTokenByFingerprint(
		c.Request.Context(),
		tenant,
		fingerprint,
		tenantHTTP.UserID(c),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapTokenToResponse(token)
	c.JSON(http.StatusOK, response)
}

// DeleteHandler removes a token and its ciphertext. Deletion is idempotent:
// deleting an already-deleted token also returns 204.
// DELETE /v1/tokens/:id
// Returns 204 No Content.
func (h *TokenHandler) DeleteHandler(c *gin.Context) {
	tenant, ok := tenantHTTP.GetTenant(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	tokenID, err := parseTokenID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if _, err := h.tokenizationUseCase.DeleteToken(
		c.Request.Context(),
		tenant,
		tokenID,
		tenantHTTP.UserID(c),
	); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListAuditLogsHandler retrieves a token's audit trail, newest first.
// GET /v1/tokens/:id/audit
// Returns 200 OK with the audit entries recorded before this call.
func (h *TokenHandler) ListAuditLogsHandler(c *gin.Context) {
	tenant, ok := tenantHTTP.GetTenant(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	tokenID, err := parseTokenID(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	auditLogs, err := h.tokenizationUseCase.ListAuditLogs(
		c.Request.Context(),
		tenant,
		tokenID,
		tenantHTTP.UserID(c),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapAuditLogsToListResponse(auditLogs)
	c.JSON(http.StatusOK, response)
}
