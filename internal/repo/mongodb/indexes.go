package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes — индексы под листинги: заказы пользователя (новые первыми) и поиск товаров по имени.
func EnsureIndexes(ctx context.Context, client *Client) error {
	orders, err := client.Collection(ctx, ordersCollection)
	if err != nil {
		return err
	}
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("userId_id_desc"),
	}); err != nil {
		return wrapStoreError(ordersCollection, "create_index", fmt.Errorf("orders.userId: %w", err))
	}

	products, err := client.Collection(ctx, productsCollection)
	if err != nil {
		return err
	}
	if _, err := products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("name_asc")},
		{Keys: bson.D{{Key: "sizes.size", Value: 1}}, Options: options.Index().SetName("sizes_size_asc")},
	}); err != nil {
		return wrapStoreError(productsCollection, "create_index", fmt.Errorf("products: %w", err))
	}
	return nil
}
