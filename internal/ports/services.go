package ports

import (
	"context"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductCatalog — чтение товара по ID (зависимость сервиса заказов).
type ProductCatalog interface {
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
}

// CatalogService — операции каталога для транспортного слоя.
type CatalogService interface {
	CreateProduct(ctx context.Context, name string, price decimal.Decimal, sizes []domain.Size) (*domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter, limit, offset int) (*domain.ProductPage, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
}

// OrderService — операции с заказами для транспортного слоя.
type OrderService interface {
	CreateOrder(ctx context.Context, req *domain.OrderRequest) (*domain.Order, error)
	GetUserOrders(ctx context.Context, userID string, limit, offset int) (*domain.OrderPage, error)
}
