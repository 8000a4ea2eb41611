package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"finance-ledger-go/internal/ledger"
)

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, ledger.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(kind, ledger.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(kind, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, ledger.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail writes err as {error}. Anything that is not a ledger.Error is
// logged and reported as a generic 500.
func (s *Server) fail(c *gin.Context, err error) {
	var le *ledger.Error
	if errors.As(err, &le) {
		c.AbortWithStatusJSON(statusFor(le.Kind), gin.H{"error": le.Message})
		return
	}
	s.log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("user_id", c.GetString(userIDKey)),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
