//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/shopspring/decimal"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// Мини-генератор валидного товара
func MakeProduct(opts ...func(*domain.Product)) domain.Product {
	p := domain.Product{
		Name:      "Product " + UniqSuffix(),
		Price:     decimal.RequireFromString("29.99"),
		Sizes:     []domain.Size{{Size: "S", Quantity: 10}, {Size: "M", Quantity: 5}},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	for _, fn := range opts {
		fn(&p)
	}
	return p
}

// WithName — переопределить имя товара
func WithName(name string) func(*domain.Product) {
	return func(p *domain.Product) { p.Name = name }
}

// WithPrice — переопределить цену товара
func WithPrice(price string) func(*domain.Product) {
	return func(p *domain.Product) { p.Price = decimal.RequireFromString(price) }
}

// WithSizes — заменить список размеров
func WithSizes(sizes ...string) func(*domain.Product) {
	return func(p *domain.Product) {
		p.Sizes = p.Sizes[:0]
		for _, s := range sizes {
			p.Sizes = append(p.Sizes, domain.Size{Size: s, Quantity: 1})
		}
	}
}

// MakeOrder — заказ пользователя из уже сохранённых товаров (по одной штуке каждого).
func MakeOrder(userID string, products ...domain.Product) domain.Order {
	o := domain.Order{
		UserID:    userID,
		Status:    domain.OrderStatusCreated,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	for _, p := range products {
		o.Items = append(o.Items, domain.OrderItem{ProductID: p.ID, Qty: 1, Price: p.Price, Name: p.Name})
	}
	o.Total = domain.ItemsTotal(o.Items)
	return o
}
