package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/pkg/metrics"
)

// evictLRU — удаляет наименее используемый элемент.
func (c *ProductCache) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

// removeElement — удаляет элемент из списка и индекса.
func (c *ProductCache) removeElement(elem *list.Element) {
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.id)
	}
	c.ll.Remove(elem)
}

func (c *ProductCache) isExpired(ent *entry, now time.Time) bool {
	return c.ttl > 0 && now.After(ent.expiresAt)
}

func (c *ProductCache) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — снимает истёкшие записи с хвоста до первой актуальной.
func (c *ProductCache) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		if !c.isExpired(back.Value.(*entry), now) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
}

// cloneProduct — копия со своим срезом размеров: изменения снаружи не попадают в кэш.
func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Sizes != nil {
		cp.Sizes = append([]domain.Size(nil), p.Sizes...)
	}
	return &cp
}
