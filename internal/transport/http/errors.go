package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError — доменная ошибка → HTTP-статус и тело {"error": ...}.
// Внутренние детали наружу не отдаём, только в лог.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	ctx := c.Request.Context()
	var refErr *domain.ReferenceNotFoundError

	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &refErr):
		c.JSON(http.StatusNotFound, gin.H{"error": refErr.Error()})
	case errors.Is(err, domain.ErrReferenceNotFound), errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		h.log.Errorf(ctx, "%s failed: %v", op, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	default:
		h.log.Errorf(ctx, "%s failed: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// writeBindError — тело запроса не разобралось или не прошло binding-проверки.
func (h *Handler) writeBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}
