package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/internal/ports"
)

// Проверка, что ProductValidator удовлетворяет интерфейсу ProductValidator.
var _ ports.ProductValidator = (*ProductValidator)(nil)

// ProductValidator — правила карточки товара.
// Любая проблема возвращается как domain.ErrValidation с обёрнутой причиной.
type ProductValidator struct{}

// NewProductValidator — конструктор ProductValidator.
func NewProductValidator() *ProductValidator { return &ProductValidator{} }

// Validate — имя не пустое, цена > 0, хотя бы один размер, у размеров есть метка и неотрицательный остаток.
func (v *ProductValidator) Validate(_ context.Context, product *domain.Product) error {
	if product == nil {
		return fmt.Errorf("%w: product must not be nil", domain.ErrValidation)
	}
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !product.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", domain.ErrValidation)
	}
	return v.validateSizes(product.Sizes)
}

func (v *ProductValidator) validateSizes(sizes []domain.Size) error {
	if len(sizes) == 0 {
		return fmt.Errorf("%w: sizes must not be empty", domain.ErrValidation)
	}
	for i := range sizes {
		if strings.TrimSpace(sizes[i].Size) == "" {
			return fmt.Errorf("%w: sizes[%d].size is required", domain.ErrValidation, i)
		}
		if sizes[i].Quantity < 0 {
			return fmt.Errorf("%w: sizes[%d].quantity must be non-negative", domain.ErrValidation, i)
		}
	}
	return nil
}
