package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/internal/ports"
	"github.com/Gunvolt24/shop/pkg/metrics"
)

var _ ports.OrderService = (*OrderService)(nil)

// OrderService — прикладная логика работы с заказами (без знаний о транспорте).
type OrderService struct {
	catalog   ports.ProductCatalog        // источник актуальных цен и имён
	repo      ports.OrderRepository       // хранилище заказов
	log       ports.Logger                // логгер
	validator ports.OrderRequestValidator // проверка запроса до обращения к каталогу
	now       func() time.Time
}

// NewOrderService — DI-конструктор.
func NewOrderService(
	catalog ports.ProductCatalog,
	repo ports.OrderRepository,
	log ports.Logger,
	validator ports.OrderRequestValidator,
) *OrderService {
	return &OrderService{
		catalog:   catalog,
		repo:      repo,
		log:       log,
		validator: validator,
		now:       time.Now,
	}
}

// CreateOrder — создать заказ.
// Все товары разрешаются до записи: первый отсутствующий прерывает заказ с ReferenceNotFoundError,
// и ничего не сохраняется. Цена и имя позиции фиксируются на момент заказа,
// сумма считается один раз и дальше не пересчитывается.
func (s *OrderService) CreateOrder(ctx context.Context, req *domain.OrderRequest) (*domain.Order, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		metrics.OrdersRejected.WithLabelValues("validation").Inc()
		s.log.Warnf(ctx, "order request rejected: %v", err)
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		productID := strings.TrimSpace(line.ProductID)

		product, err := s.catalog.GetProductByID(ctx, productID)
		if err != nil {
			s.log.Errorf(ctx, "catalog lookup failed product_id=%s err=%v", productID, err)
			return nil, fmt.Errorf("resolve product %s: %w", productID, err)
		}
		if product == nil {
			metrics.OrdersRejected.WithLabelValues("reference").Inc()
			s.log.Warnf(ctx, "order rejected user_id=%s: product %s not found", req.UserID, productID)
			return nil, &domain.ReferenceNotFoundError{ProductID: productID}
		}

		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Qty:       line.Qty,
			Price:     product.Price,
			Name:      product.Name,
		})
	}

	order := &domain.Order{
		UserID:    strings.TrimSpace(req.UserID),
		Items:     items,
		Total:     domain.ItemsTotal(items),
		Status:    domain.OrderStatusCreated,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.log.Errorf(ctx, "repo.Create failed user_id=%s err=%v", order.UserID, err)
		return nil, fmt.Errorf("create order: %w", err)
	}
	metrics.OrdersCreated.Inc()

	s.log.Infof(ctx, "order created id=%s user_id=%s items=%d total=%s",
		order.ID, order.UserID, len(order.Items), order.Total.StringFixed(2))
	return order, nil
}

// GetUserOrders — заказы пользователя (новые первыми) с метаданными пагинации.
// Пользователь без заказов — пустая страница, а не ошибка.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string, limit, offset int) (*domain.OrderPage, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	limit, offset = domain.NormalizeLimitOffset(limit, offset)

	orders, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Errorf(ctx, "repo.ListByUser failed user_id=%s err=%v", userID, err)
		}
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	return &domain.OrderPage{Data: orders, Page: domain.NewPageInfo(total, limit, offset)}, nil
}
