package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation — некорректные входные данные (4xx).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound — запрос ничего не нашёл.
	ErrNotFound = errors.New("not found")
	// ErrReferenceNotFound — заказ ссылается на несуществующий товар.
	ErrReferenceNotFound = errors.New("referenced product not found")
	// ErrStoreUnavailable — хранилище недоступно или не ответило вовремя (5xx, без ретраев).
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ReferenceNotFoundError — ErrReferenceNotFound с идентификатором товара.
type ReferenceNotFoundError struct {
	ProductID string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("product with id %s not found", e.ProductID)
}

// Is — errors.Is(err, ErrReferenceNotFound) == true.
func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}
