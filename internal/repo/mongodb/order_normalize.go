package mongodb

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Альтернативные имена полей в записях заказов разных версий.
var (
	orderTotalKeys     = []string{"totalAmount", "total"}
	orderUserKeys      = []string{"userId", "user_id"}
	orderCreatedAtKeys = []string{"createdAt", "created_at"}
	itemProductKeys    = []string{"productId", "product_id", "productID"}
	itemNameKeys       = []string{"name", "productName", "product_name"}
	itemQtyKeys        = []string{"qty", "quantity"}
	itemPriceKeys      = []string{"price", "unitPrice"}
)

var errMalformedOrder = errors.New("malformed order record")

// normalizeOrder — приводит сохранённую запись любой известной формы к domain.Order.
// Отсутствующие необязательные поля получают значения по умолчанию;
// ошибка означает, что запись прочитать нельзя совсем.
func normalizeOrder(raw bson.M, requestedUserID string) (*domain.Order, error) {
	order := &domain.Order{
		UserID: requestedUserID,
		Status: domain.OrderStatusCreated,
		Total:  decimal.Zero,
		Items:  []domain.OrderItem{},
	}

	switch id := raw["_id"].(type) {
	case primitive.ObjectID:
		order.ID = id.Hex()
		order.CreatedAt = id.Timestamp().UTC()
	case string:
		order.ID = id
	default:
		return nil, fmt.Errorf("%w: _id has type %T", errMalformedOrder, raw["_id"])
	}

	if userID, ok := firstString(raw, orderUserKeys); ok {
		order.UserID = userID
	}
	if status, ok := firstString(raw, []string{"status"}); ok {
		order.Status = status
	}
	if createdAt, ok := firstTime(raw, orderCreatedAtKeys); ok {
		order.CreatedAt = createdAt
	}

	if v, ok := firstPresent(raw, orderTotalKeys); ok {
		total, ok := decimalFrom(v)
		if !ok {
			return nil, fmt.Errorf("%w: order %s: total %v is not a number", errMalformedOrder, order.ID, v)
		}
		order.Total = total
	}

	if rawItems, ok := raw["items"]; ok && rawItems != nil {
		list, ok := asArray(rawItems)
		if !ok {
			return nil, fmt.Errorf("%w: order %s: items has type %T", errMalformedOrder, order.ID, rawItems)
		}
		for i, rawItem := range list {
			item, err := normalizeOrderItem(rawItem)
			if err != nil {
				return nil, fmt.Errorf("%w: order %s: items[%d]: %v", errMalformedOrder, order.ID, i, err)
			}
			order.Items = append(order.Items, item)
		}
	}

	return order, nil
}

func normalizeOrderItem(v any) (domain.OrderItem, error) {
	doc, ok := asDocument(v)
	if !ok {
		return domain.OrderItem{}, fmt.Errorf("item has type %T", v)
	}

	var item domain.OrderItem

	// без ссылки на товар позиция остаётся в заказе с пустым id
	if productID, ok := firstID(doc, itemProductKeys); ok {
		item.ProductID = productID
	}

	item.Name = domain.UnknownProductName
	if name, ok := firstString(doc, itemNameKeys); ok && strings.TrimSpace(name) != "" {
		item.Name = name
	}

	rawQty, ok := firstPresent(doc, itemQtyKeys)
	if !ok {
		return domain.OrderItem{}, errors.New("qty is missing")
	}
	qty, ok := intFrom(rawQty)
	if !ok {
		return domain.OrderItem{}, fmt.Errorf("qty %v is not an integer", rawQty)
	}
	item.Qty = qty

	item.Price = decimal.Zero
	if rawPrice, ok := firstPresent(doc, itemPriceKeys); ok {
		price, ok := decimalFrom(rawPrice)
		if !ok {
			return domain.OrderItem{}, fmt.Errorf("price %v is not a number", rawPrice)
		}
		item.Price = price
	}

	return item, nil
}

// ---- доступ к полям bson.M ----

func firstPresent(doc bson.M, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := doc[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func firstString(doc bson.M, keys []string) (string, bool) {
	for _, k := range keys {
		if s, ok := doc[k].(string); ok {
			return s, true
		}
	}
	return "", false
}

// firstID — ссылка на товар: строка или ObjectID.
func firstID(doc bson.M, keys []string) (string, bool) {
	for _, k := range keys {
		switch id := doc[k].(type) {
		case string:
			if strings.TrimSpace(id) != "" {
				return id, true
			}
		case primitive.ObjectID:
			return id.Hex(), true
		}
	}
	return "", false
}

func firstTime(doc bson.M, keys []string) (time.Time, bool) {
	for _, k := range keys {
		switch t := doc[k].(type) {
		case primitive.DateTime:
			return t.Time().UTC(), true
		case time.Time:
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func asDocument(v any) (bson.M, bool) {
	switch d := v.(type) {
	case bson.M:
		return d, true
	case map[string]any:
		return bson.M(d), true
	case bson.D:
		return d.Map(), true
	default:
		return nil, false
	}
}

func asArray(v any) ([]any, bool) {
	switch a := v.(type) {
	case bson.A:
		return a, true
	case []any:
		return a, true
	default:
		return nil, false
	}
}
