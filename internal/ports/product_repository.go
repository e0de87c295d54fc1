package ports

import (
	"context"

	"github.com/Gunvolt24/shop/internal/domain"
)

// ProductRepository — хранилище каталога.
type ProductRepository interface {
	// Create — сохранить товар; проставляет ID, выданный хранилищем.
	Create(ctx context.Context, product *domain.Product) error
	// GetByID — (nil, nil), если id некорректен или товара нет.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// List — страница товаров по фильтру (сортировка по id по возрастанию) и общее число совпадений.
	List(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]*domain.Product, int64, error)
}
