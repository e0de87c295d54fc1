package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/internal/ports"
	"github.com/Gunvolt24/shop/pkg/metrics"
	"github.com/Gunvolt24/shop/pkg/validate"
	"github.com/shopspring/decimal"
)

// Проверка, что CatalogService удовлетворяет интерфейсам транспортного слоя и сервиса заказов.
var (
	_ ports.CatalogService = (*CatalogService)(nil)
	_ ports.ProductCatalog = (*CatalogService)(nil)
)

// CatalogService — каталог товаров: создание, листинг, чтение по ID через кэш.
type CatalogService struct {
	repo      ports.ProductRepository // хранилище товаров
	cache     ports.ProductCache      // кэш карточек по ID
	log       ports.Logger
	validator ports.ProductValidator
	now       func() time.Time
}

// NewCatalogService — DI-конструктор.
func NewCatalogService(
	repo ports.ProductRepository,
	cache ports.ProductCache,
	log ports.Logger,
	validator ports.ProductValidator,
) *CatalogService {
	return &CatalogService{
		repo:      repo,
		cache:     cache,
		log:       log,
		validator: validator,
		now:       time.Now,
	}
}

// CreateProduct — валидация, сохранение и запись в кэш.
func (s *CatalogService) CreateProduct(
	ctx context.Context,
	name string,
	price decimal.Decimal,
	sizes []domain.Size,
) (*domain.Product, error) {
	product := &domain.Product{
		Name:  strings.TrimSpace(name),
		Price: price,
		Sizes: append([]domain.Size(nil), sizes...),
		// точность хранилища — миллисекунды
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.validator.Validate(ctx, product); err != nil {
		s.log.Warnf(ctx, "product rejected name=%q: %v", name, err)
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.log.Errorf(ctx, "repo.Create failed product=%q err=%v", product.Name, err)
		return nil, fmt.Errorf("create product: %w", err)
	}
	metrics.ProductsCreated.Inc()

	if err := s.cache.Set(ctx, product); err != nil {
		s.log.Warnf(ctx, "cache.Set failed product_id=%s err=%v", product.ID, err)
	}

	s.log.Infof(ctx, "product created id=%s name=%q sizes=%d", product.ID, product.Name, len(product.Sizes))
	return product, nil
}

// ListProducts — страница каталога; limit/offset приводятся к допустимым границам.
func (s *CatalogService) ListProducts(
	ctx context.Context,
	filter domain.ProductFilter,
	limit, offset int,
) (*domain.ProductPage, error) {
	limit, offset = domain.NormalizeLimitOffset(limit, offset)

	items, total, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		s.log.Errorf(ctx, "repo.List failed name=%q size=%q err=%v", filter.Name, filter.Size, err)
		return nil, fmt.Errorf("list products: %w", err)
	}
	if items == nil {
		items = []*domain.Product{}
	}

	return &domain.ProductPage{Data: items, Page: domain.NewPageInfo(total, limit, offset)}, nil
}

// GetProductByID — сначала кэш, при промахе — хранилище с записью в кэш.
// Некорректный или неизвестный ID — (nil, nil).
func (s *CatalogService) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	if product, found := s.cache.Get(ctx, id); found {
		return product, nil
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed product_id=%s err=%v", id, err)
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if product == nil {
		return nil, nil
	}

	if err := s.cache.Set(ctx, product); err != nil {
		s.log.Warnf(ctx, "cache.Set failed product_id=%s err=%v", id, err)
	}
	return product, nil
}

// CreateFromMessage — товар из сообщения Kafka (raw JSON).
// Ошибки разбора и валидации оборачивают domain.ErrValidation — такие сообщения повторять бессмысленно.
func (s *CatalogService) CreateFromMessage(ctx context.Context, raw []byte) error {
	payload, err := validate.DecodeProductPayload(raw)
	if err != nil {
		s.log.Warnf(ctx, "product message rejected: %v", err)
		return err
	}

	if _, err := s.CreateProduct(ctx, payload.Name, payload.Price, payload.Sizes); err != nil {
		return err
	}
	return nil
}
