package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/internal/ports"
)

var _ ports.OrderRequestValidator = (*OrderRequestValidator)(nil)

// OrderRequestValidator — проверка запроса на создание заказа до обращения к каталогу.
type OrderRequestValidator struct{}

func NewOrderRequestValidator() *OrderRequestValidator { return &OrderRequestValidator{} }

// Validate — userId не пустой после trim, есть позиции, у каждой productId и qty > 0.
func (v *OrderRequestValidator) Validate(_ context.Context, req *domain.OrderRequest) error {
	if req == nil {
		return fmt.Errorf("%w: order request must not be nil", domain.ErrValidation)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: items must not be empty", domain.ErrValidation)
	}
	for i := range req.Items {
		if strings.TrimSpace(req.Items[i].ProductID) == "" {
			return fmt.Errorf("%w: items[%d].productId is required", domain.ErrValidation, i)
		}
		if req.Items[i].Qty <= 0 {
			return fmt.Errorf("%w: items[%d].qty must be greater than zero", domain.ErrValidation, i)
		}
	}
	return nil
}
