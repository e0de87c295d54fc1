package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/internal/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Проверка, что ProductRepository удовлетворяет интерфейсу ProductRepository.
var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository — каталог товаров в коллекции products.
type ProductRepository struct {
	client *Client
}

// NewProductRepository — конструктор ProductRepository.
func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{client: client}
}

// Create — вставка товара; ID выдаёт хранилище и он проставляется в product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product == nil {
		return errors.New("product is nil")
	}

	coll, err := r.client.Collection(ctx, productsCollection)
	if err != nil {
		return wrapStoreError(productsCollection, "insert", err)
	}

	res, err := coll.InsertOne(ctx, newProductDocument(product))
	if err != nil {
		return wrapStoreError(productsCollection, "insert", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("products insert: unexpected id type %T", res.InsertedID)
	}
	product.ID = id.Hex()
	return nil
}

// GetByID — товар по ID. Некорректный и отсутствующий ID дают (nil, nil).
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if !IsValidID(id) {
		return nil, nil
	}
	oid, _ := primitive.ObjectIDFromHex(id)

	coll, err := r.client.Collection(ctx, productsCollection)
	if err != nil {
		return nil, wrapStoreError(productsCollection, "find_one", err)
	}

	var doc productDocument
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, wrapStoreError(productsCollection, "find_one", err)
	}
	return doc.toDomain(), nil
}

// List — страница товаров по фильтру, сортировка по _id по возрастанию.
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]*domain.Product, int64, error) {
	coll, err := r.client.Collection(ctx, productsCollection)
	if err != nil {
		return nil, 0, wrapStoreError(productsCollection, "find", err)
	}

	query := productQuery(filter)

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, wrapStoreError(productsCollection, "count", err)
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, wrapStoreError(productsCollection, "find", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, wrapStoreError(productsCollection, "find", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toDomain())
	}
	return products, total, nil
}

// productQuery — имя: подстрока без учёта регистра (спецсимволы экранируются); размер: точное совпадение.
func productQuery(filter domain.ProductFilter) bson.M {
	query := bson.M{}
	if name := strings.TrimSpace(filter.Name); name != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(name), "$options": "i"}
	}
	if size := strings.TrimSpace(filter.Size); size != "" {
		query["sizes.size"] = size
	}
	return query
}
