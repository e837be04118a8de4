package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexdesk/lexdesk/internal/models"
	"github.com/lexdesk/lexdesk/internal/tokens"
	"github.com/lexdesk/lexdesk/pkg/logger"
	"github.com/lexdesk/lexdesk/pkg/middleware"
)

// mustIdentity returns the identity set by the auth middleware. Handlers
// behind the middleware can rely on it being present.
func mustIdentity(c *gin.Context) *tokens.Identity {
	ident, _ := middleware.IdentityFrom(c)
	return ident
}

// writeDomainError maps the domain failure taxonomy onto HTTP responses.
// Unexpected failures are logged and surfaced as a generic server error so
// internals never leak.
func writeDomainError(c *gin.Context, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "fields": ve.Fields})
	case errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrDuplicateCaseNumber):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFoundOrUnauthorized),
		errors.Is(err, models.ErrCaseNotFound),
		errors.Is(err, models.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Errorf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
