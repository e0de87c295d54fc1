package ports

import (
	"context"

	"github.com/Gunvolt24/shop/internal/domain"
)

// ProductCache — кэш карточек товаров по ID.
// Требования к реализации: потокобезопасность; возврат копий сущности.
type ProductCache interface {
	// Get — (product, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, id string) (*domain.Product, bool)

	// Set — сохранить/обновить товар в кэше.
	Set(ctx context.Context, product *domain.Product) error
}
