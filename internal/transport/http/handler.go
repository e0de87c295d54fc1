package rest

import (
	"context"
	"time"

	"github.com/Gunvolt24/shop/internal/ports"
	"github.com/gin-gonic/gin"
)

// Handler — HTTP-адаптер над сервисами каталога и заказов.
type Handler struct {
	catalog ports.CatalogService
	orders  ports.OrderService
	log     ports.Logger
	timeout time.Duration // 0 — без собственного дедлайна
}

// NewHandler — конструктор; timeout ограничивает обработку одного запроса.
func NewHandler(catalog ports.CatalogService, orders ports.OrderService, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{catalog: catalog, orders: orders, log: log, timeout: timeout}
}

// requestContext — контекст запроса с таймаутом хендлера.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}
