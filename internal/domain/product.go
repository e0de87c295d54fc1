package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Size — размер товара и остаток по нему.
type Size struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Product — карточка товара каталога. После создания не меняется.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Sizes     []Size          `json:"sizes"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ProductFilter — необязательные фильтры листинга (объединяются по AND).
type ProductFilter struct {
	Name string // подстрока имени без учёта регистра
	Size string // точное совпадение с одним из размеров
}
