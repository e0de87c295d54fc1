package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/internal/ports"
	"github.com/shopspring/decimal"
)

// ProductPayload — внешний формат товара (тело POST /products, сообщение Kafka, строка JSONL).
type ProductPayload struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Sizes []domain.Size   `json:"sizes"`
}

// ToProduct — доменная сущность без ID и даты создания.
func (p *ProductPayload) ToProduct() *domain.Product {
	return &domain.Product{
		Name:  p.Name,
		Price: p.Price,
		Sizes: append([]domain.Size(nil), p.Sizes...),
	}
}

// DecodeProductPayload — строгий разбор JSON: неизвестные поля и данные после объекта — ошибка.
// Ошибки разбора тоже оборачивают domain.ErrValidation: повторная обработка их не исправит.
func DecodeProductPayload(raw []byte) (*ProductPayload, error) {
	var payload ProductPayload
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", domain.ErrValidation, err)
	}

	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", domain.ErrValidation)
	}
	return &payload, nil
}

// ValidateProductFromJSON — разбор и валидация товара из JSON.
func ValidateProductFromJSON(ctx context.Context, validator ports.ProductValidator, raw []byte) (*ProductPayload, error) {
	payload, err := DecodeProductPayload(raw)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, payload.ToProduct()); err != nil {
		return nil, err
	}
	return payload, nil
}
