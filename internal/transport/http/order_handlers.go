package rest

import (
	"net/http"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/pkg/httpx"
	"github.com/gin-gonic/gin"
)

func (h *Handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.orders.CreateOrder(ctx, req.toDomain())
	if err != nil {
		h.writeError(c, "CreateOrder", err)
		return
	}
	c.JSON(http.StatusCreated, newOrderResponse(order))
}

func (h *Handler) listUserOrders(c *gin.Context) {
	userID := c.Param("user_id")
	limit, offset := httpx.ParseLimitOffset(c, domain.DefaultLimit, domain.MaxLimit)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	page, err := h.orders.GetUserOrders(ctx, userID, limit, offset)
	if err != nil {
		h.writeError(c, "GetUserOrders", err)
		return
	}

	resp := pageResponse[orderResponse]{Data: make([]orderResponse, 0, len(page.Data)), Page: page.Page}
	for _, o := range page.Data {
		resp.Data = append(resp.Data, newOrderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}
