package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/internal/ports"
	"github.com/Gunvolt24/shop/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — заказы в коллекции orders.
type OrderRepository struct {
	client *Client
	log    ports.Logger
}

// NewOrderRepository — конструктор OrderRepository.
func NewOrderRepository(client *Client, log ports.Logger) *OrderRepository {
	return &OrderRepository{client: client, log: log}
}

// Create — один документ на заказ; ID выдаёт хранилище.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}

	coll, err := r.client.Collection(ctx, ordersCollection)
	if err != nil {
		return wrapStoreError(ordersCollection, "insert", err)
	}

	res, err := coll.InsertOne(ctx, newOrderDocument(order))
	if err != nil {
		return wrapStoreError(ordersCollection, "insert", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("orders insert: unexpected id type %T", res.InsertedID)
	}
	order.ID = id.Hex()
	return nil
}

// ListByUser — заказы пользователя, новые первыми.
// Записи, которые не удалось прочитать, логируются и пропускаются; total их учитывает.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error) {
	coll, err := r.client.Collection(ctx, ordersCollection)
	if err != nil {
		return nil, 0, wrapStoreError(ordersCollection, "find", err)
	}

	query := userOrdersQuery(userID)

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, wrapStoreError(ordersCollection, "count", err)
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, wrapStoreError(ordersCollection, "find", err)
	}
	defer cursor.Close(ctx)

	orders := make([]*domain.Order, 0, max(limit, 0))
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			r.skip(ctx, userID, err)
			continue
		}
		order, err := normalizeOrder(raw, userID)
		if err != nil {
			r.skip(ctx, userID, err)
			continue
		}
		orders = append(orders, order)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, wrapStoreError(ordersCollection, "find", err)
	}

	return orders, total, nil
}

func (r *OrderRepository) skip(ctx context.Context, userID string, err error) {
	metrics.OrderRecordsSkipped.Inc()
	r.log.Warnf(ctx, "skip unreadable order record user_id=%s: %v", userID, err)
}

// userOrdersQuery — владелец записан в userId или (в старых записях) в user_id.
func userOrdersQuery(userID string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"userId": userID},
		bson.M{"user_id": userID},
	}}
}
