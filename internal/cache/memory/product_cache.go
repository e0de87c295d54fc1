package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/internal/ports"
	"github.com/Gunvolt24/shop/pkg/metrics"
)

// Проверка, что ProductCache удовлетворяет интерфейсу ProductCache.
var _ ports.ProductCache = (*ProductCache)(nil)

type entry struct {
	id        string
	product   *domain.Product
	expiresAt time.Time
}

// ProductCache — LRU-кэш карточек товаров с TTL.
// ttl <= 0 — записи не истекают, вытеснение только по ёмкости.
type ProductCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	ll    *list.List // голова — самый свежий
	index map[string]*list.Element
}

func NewProductCache(capacity int, ttl time.Duration) *ProductCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &ProductCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

// Get — копия товара при попадании. Истёкшая запись удаляется и считается промахом.
func (c *ProductCache) Get(_ context.Context, id string) (*domain.Product, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}

	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		c.removeElement(elem)
		metrics.CacheOps.WithLabelValues("expired").Inc()
		metrics.CacheSize.Set(float64(c.ll.Len()))
		return nil, false
	}

	c.ll.MoveToFront(elem)
	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneProduct(ent.product), true
}

// Set — сохранить копию товара. Товары без ID не кэшируются.
func (c *ProductCache) Set(_ context.Context, product *domain.Product) error {
	if product == nil || product.ID == "" {
		return nil
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[product.ID]; ok {
		ent := elem.Value.(*entry)
		ent.product = cloneProduct(product)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	c.index[product.ID] = c.ll.PushFront(&entry{
		id:        product.ID,
		product:   cloneProduct(product),
		expiresAt: c.expiryFrom(now),
	})
	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	metrics.CacheSize.Set(float64(c.ll.Len()))
	return nil
}

// Len — число записей (включая ещё не удалённые истёкшие).
func (c *ProductCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
