package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// handleServiceError maps service errors onto HTTP status codes and writes the
// response. fallback is the message shown for unexpected failures.
func handleServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var (
		balanceErr  *apperrors.BalanceError
		conflictErr *apperrors.ConflictError
	)
	switch {
	case errors.As(err, &balanceErr):
		logger.Warn("Unbalanced journal entry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       err.Error(),
			"totalDebit":  balanceErr.TotalDebit,
			"totalCredit": balanceErr.TotalCredit,
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &conflictErr):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		body := gin.H{"error": err.Error()}
		if conflictErr.ExistingID != "" {
			body["existingID"] = conflictErr.ExistingID
		}
		c.JSON(http.StatusConflict, body)
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Request conflicts with current state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindingError writes a 400 with field details when available.
func bindingError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	if details := middleware.FormatValidationErrors(err); len(details) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

// requestScope extracts the request logger, organization ID and acting user. It
// writes a 401 and returns ok=false when the user is missing.
func requestScope(c *gin.Context) (logger *slog.Logger, organizationID, userID string, ok bool) {
	logger = middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID = c.Param("orgId")
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return logger, organizationID, "", false
	}
	logger = logger.With(slog.String("organization_id", organizationID))
	return logger, organizationID, userID, true
}
