package ports

import (
	"context"

	"github.com/Gunvolt24/shop/internal/domain"
)

type ProductValidator interface {
	Validate(ctx context.Context, product *domain.Product) error
}

type OrderRequestValidator interface {
	Validate(ctx context.Context, req *domain.OrderRequest) error
}
