package ports

import (
	"context"

	"github.com/Gunvolt24/shop/internal/domain"
)

// OrderRepository — хранилище заказов.
type OrderRepository interface {
	// Create сохраняет заказ одним документом и проставляет order.ID.
	Create(ctx context.Context, order *domain.Order) error
	// ListByUser — страница заказов пользователя, новые первыми, и общее число его заказов.
	// Нечитаемые записи пропускаются, total их учитывает.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error)
}
