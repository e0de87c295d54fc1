package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusCreated — статус только что созданного заказа.
const OrderStatusCreated = "created"

// UnknownProductName — имя позиции, если в старой записи его нет.
const UnknownProductName = "Unknown Product"

// OrderItem — позиция заказа. Цена и имя фиксируются в момент создания заказа
// и дальше не зависят от каталога.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
}

// Subtotal — цена позиции с учётом количества.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Order — заказ пользователя.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ItemsTotal — сумма по позициям.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OrderLine — строка запроса на создание заказа.
type OrderLine struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// OrderRequest — входные данные CreateOrder.
type OrderRequest struct {
	UserID string      `json:"userId"`
	Items  []OrderLine `json:"items"`
}
