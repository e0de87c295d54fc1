package mongodb

import (
	"time"

	"github.com/Gunvolt24/shop/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sizeDocument struct {
	Size     string `bson:"size"`
	Quantity int    `bson:"quantity"`
}

type productDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Price     decimalValue       `bson:"price"`
	Sizes     []sizeDocument     `bson:"sizes"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
}

func newProductDocument(p *domain.Product) productDocument {
	doc := productDocument{
		Name:      p.Name,
		Price:     decimalValue{p.Price},
		Sizes:     make([]sizeDocument, 0, len(p.Sizes)),
		CreatedAt: p.CreatedAt,
	}
	for _, s := range p.Sizes {
		doc.Sizes = append(doc.Sizes, sizeDocument{Size: s.Size, Quantity: s.Quantity})
	}
	return doc
}

func (d *productDocument) toDomain() *domain.Product {
	p := &domain.Product{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Price:     d.Price.Decimal,
		Sizes:     make([]domain.Size, 0, len(d.Sizes)),
		CreatedAt: d.CreatedAt,
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = d.ID.Timestamp().UTC()
	}
	for _, s := range d.Sizes {
		p.Sizes = append(p.Sizes, domain.Size{Size: s.Size, Quantity: s.Quantity})
	}
	return p
}

type orderItemDocument struct {
	ProductID string       `bson:"productId"`
	Qty       int          `bson:"qty"`
	Price     decimalValue `bson:"price"`
	Name      string       `bson:"name"`
}

// orderDocument — формат записи заказа. Сумма хранится только в totalAmount.
type orderDocument struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	UserID      string              `bson:"userId"`
	Items       []orderItemDocument `bson:"items"`
	TotalAmount decimalValue        `bson:"totalAmount"`
	Status      string              `bson:"status"`
	CreatedAt   time.Time           `bson:"createdAt"`
}

func newOrderDocument(o *domain.Order) orderDocument {
	doc := orderDocument{
		UserID:      o.UserID,
		Items:       make([]orderItemDocument, 0, len(o.Items)),
		TotalAmount: decimalValue{o.Total},
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
	}
	for _, it := range o.Items {
		doc.Items = append(doc.Items, orderItemDocument{
			ProductID: it.ProductID,
			Qty:       it.Qty,
			Price:     decimalValue{it.Price},
			Name:      it.Name,
		})
	}
	return doc
}
