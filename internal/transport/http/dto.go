package rest

import (
	"time"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/shopspring/decimal"
)

// --- запросы ---

type sizeRequest struct {
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity" binding:"gte=0"`
}

type createProductRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"` // число или строка; > 0 проверяет валидатор каталога
	Sizes []sizeRequest   `json:"sizes" binding:"required,min=1,dive"`
}

func (r *createProductRequest) sizes() []domain.Size {
	out := make([]domain.Size, 0, len(r.Sizes))
	for _, s := range r.Sizes {
		out = append(out, domain.Size{Size: s.Size, Quantity: s.Quantity})
	}
	return out
}

type orderLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty" binding:"required,gt=0"`
}

type createOrderRequest struct {
	UserID string             `json:"userId" binding:"required"`
	Items  []orderLineRequest `json:"items" binding:"required,min=1,dive"`
}

func (r *createOrderRequest) toDomain() *domain.OrderRequest {
	req := &domain.OrderRequest{UserID: r.UserID, Items: make([]domain.OrderLine, 0, len(r.Items))}
	for _, it := range r.Items {
		req.Items = append(req.Items, domain.OrderLine{ProductID: it.ProductID, Qty: it.Qty})
	}
	return req
}

// --- ответы ---

type sizeResponse struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type productResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Price     float64        `json:"price"`
	Sizes     []sizeResponse `json:"sizes"`
	CreatedAt time.Time      `json:"createdAt"`
}

func newProductResponse(p *domain.Product) productResponse {
	sizes := make([]sizeResponse, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, sizeResponse{Size: s.Size, Quantity: s.Quantity})
	}
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		Sizes:     sizes,
		CreatedAt: p.CreatedAt,
	}
}

type productDetails struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type orderItemResponse struct {
	ProductDetails productDetails `json:"productDetails"`
	Qty            int            `json:"qty"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Items     []orderItemResponse `json:"items"`
	Total     float64             `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}

func newOrderResponse(o *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ProductDetails: productDetails{Name: it.Name, ID: it.ProductID},
			Qty:            it.Qty,
		})
	}
	return orderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Items:     items,
		Total:     o.Total.InexactFloat64(),
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}

// pageResponse — конверт списка {data, page}.
type pageResponse[T any] struct {
	Data []T             `json:"data"`
	Page domain.PageInfo `json:"page"`
}
