package rest

import (
	"net/http"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/pkg/httpx"
	"github.com/gin-gonic/gin"
)

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	product, err := h.catalog.CreateProduct(ctx, req.Name, req.Price, req.sizes())
	if err != nil {
		h.writeError(c, "CreateProduct", err)
		return
	}
	c.JSON(http.StatusCreated, newProductResponse(product))
}

func (h *Handler) listProducts(c *gin.Context) {
	limit, offset := httpx.ParseLimitOffset(c, domain.DefaultLimit, domain.MaxLimit)
	filter := domain.ProductFilter{
		Name: httpx.TrimmedQuery(c, "name"),
		Size: httpx.TrimmedQuery(c, "size"),
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	page, err := h.catalog.ListProducts(ctx, filter, limit, offset)
	if err != nil {
		h.writeError(c, "ListProducts", err)
		return
	}

	resp := pageResponse[productResponse]{Data: make([]productResponse, 0, len(page.Data)), Page: page.Page}
	for _, p := range page.Data {
		resp.Data = append(resp.Data, newProductResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getProductByID(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := h.requestContext(c)
	defer cancel()

	product, err := h.catalog.GetProductByID(ctx, id)
	if err != nil {
		h.writeError(c, "GetProductByID", err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, newProductResponse(product))
}
