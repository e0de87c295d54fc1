package domain

// Границы размера страницы.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageInfo — метаданные пагинации.
//
// Next/Previous — номера страниц (с единицы), а не смещения:
// next = offset/limit + 2, previous = offset/limit.
// Номер точен только при offset, кратном limit; иначе он получается усечением.
type PageInfo struct {
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
	Limit    int   `json:"limit"`
	Offset   int   `json:"offset"`
	Total    int64 `json:"total"`
}

// NormalizeLimitOffset — limit в [1, MaxLimit], offset >= 0.
func NormalizeLimitOffset(limit, offset int) (int, int) {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// NewPageInfo считает next/previous для total записей.
// limit и offset должны быть уже нормализованы.
func NewPageInfo(total int64, limit, offset int) PageInfo {
	info := PageInfo{Limit: limit, Offset: offset, Total: total}
	current := offset / limit
	// сравнение без offset+limit: offset из query может быть близок к MaxInt
	if int64(offset) < total-int64(limit) {
		next := current + 2
		info.Next = &next
	}
	if offset > 0 {
		prev := current
		info.Previous = &prev
	}
	return info
}

// ProductPage — страница каталога.
type ProductPage struct {
	Data []*Product `json:"data"`
	Page PageInfo   `json:"page"`
}

// OrderPage — страница истории заказов.
type OrderPage struct {
	Data []*Order `json:"data"`
	Page PageInfo `json:"page"`
}
