package mongodb

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/shop/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

// Имена коллекций.
const (
	productsCollection = "products"
	ordersCollection   = "orders"
)

// Options — параметры подключения к MongoDB.
type Options struct {
	URI                    string
	Database               string
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	MaxPoolSize            uint64
	Tracing                bool // otelmongo-монитор команд
}

// DialFunc — открывает соединение; подменяется в тестах.
type DialFunc func(ctx context.Context, opts Options) (*mongo.Client, error)

// Client — клиент MongoDB с ленивым подключением.
// Первое обращение открывает соединение ровно один раз, даже при конкурентных вызовах:
// быстрый путь читает atomic.Pointer, медленный повторно проверяет его под мьютексом.
type Client struct {
	opts Options
	dial DialFunc

	mu     sync.Mutex
	client atomic.Pointer[mongo.Client]
}

// NewClient — конструктор Client. Соединение не открывается до Connect или первого запроса.
func NewClient(opts Options) *Client {
	return NewClientWithDial(opts, dialMongo)
}

// NewClientWithDial — то же, но со своей функцией подключения.
func NewClientWithDial(opts Options, dial DialFunc) *Client {
	return &Client{opts: opts, dial: dial}
}

// Connect — открыть соединение сейчас (fail fast при старте).
func (c *Client) Connect(ctx context.Context) error {
	_, err := c.acquire(ctx)
	return err
}

// Collection — коллекция базы; при необходимости открывает соединение.
func (c *Client) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	client, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(c.opts.Database).Collection(name), nil
}

// Ping — проверка доступности хранилища.
func (c *Client) Ping(ctx context.Context) error {
	client, err := c.acquire(ctx)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: ping: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Close — закрыть соединение; повторный вызов ничего не делает.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	client := c.client.Swap(nil)
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func (c *Client) acquire(ctx context.Context) (*mongo.Client, error) {
	if client := c.client.Load(); client != nil {
		return client, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if client := c.client.Load(); client != nil {
		return client, nil
	}

	client, err := c.dial(ctx, c.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", domain.ErrStoreUnavailable, err)
	}
	c.client.Store(client)
	return client, nil
}

// dialMongo — подключение с таймаутами из конфигурации и проверкой Ping.
func dialMongo(ctx context.Context, opts Options) (*mongo.Client, error) {
	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
	}
	if opts.ServerSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(opts.ServerSelectionTimeout)
	}
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}
	if opts.Tracing {
		clientOpts.SetMonitor(otelmongo.NewMonitor())
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}
