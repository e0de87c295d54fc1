//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/shop/internal/cache/memory"
	"github.com/Gunvolt24/shop/internal/domain"
	ikafka "github.com/Gunvolt24/shop/internal/kafka"
	"github.com/Gunvolt24/shop/internal/ports"
	"github.com/Gunvolt24/shop/internal/repo/mongodb"
	"github.com/Gunvolt24/shop/internal/testutil"
	"github.com/Gunvolt24/shop/internal/usecase"
	"github.com/Gunvolt24/shop/pkg/logger"
	"github.com/Gunvolt24/shop/pkg/validate"
)

// 1) Валидный товар из топика сохраняется в каталог
func TestKafka_Valid_Saved_TC(t *testing.T) {
	ctx, cancel, repo, logg, kf := newStack(t)
	defer cancel()

	topic, group := kf.CatalogTopic(ctx, t)

	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    "first",
		ProcessTimeout: 5 * time.Second,
		RetryInitial:   200 * time.Millisecond,
		RetryMax:       2 * time.Second,
	}, newCatalog(repo, logg), logg)
	defer consumer.Close()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() { _ = consumer.Run(runCtx) }()

	// даём консьюмеру присоединиться к группе/получить assignment
	time.Sleep(1500 * time.Millisecond)

	name := "Sneakers " + testutil.UniqSuffix()
	writeMsg(t, ctx, kf.Brokers, topic, productJSON(t, name, "59.90"))

	got := waitProduct(t, ctx, repo, name, 20*time.Second)
	require.True(t, decimal.RequireFromString("59.90").Equal(got.Price))
	require.Len(t, got.Sizes, 2)
}

// 2) Не-JSON сообщение пропускается, валидное после него — сохраняется
func TestKafka_Skip_InvalidJSON_Then_SaveValid_TC(t *testing.T) {
	ctx, cancel, repo, logg, kf := newStack(t)
	defer cancel()

	topic, group := kf.CatalogTopic(ctx, t)

	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    "first",
		ProcessTimeout: 3 * time.Second,
		RetryInitial:   200 * time.Millisecond,
		RetryMax:       2 * time.Second,
	}, newCatalog(repo, logg), logg)
	defer consumer.Close()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() { _ = consumer.Run(runCtx) }()

	time.Sleep(1500 * time.Millisecond)

	writeMsg(t, ctx, kf.Brokers, topic, []byte("not-a-json"))

	name := "Jacket " + testutil.UniqSuffix()
	writeMsg(t, ctx, kf.Brokers, topic, productJSON(t, name, "120.00"))

	waitProduct(t, ctx, repo, name, 20*time.Second)
}

// 3) Товар с нулевой ценой отклоняется валидатором и коммитится; следующий валидный — сохраняется
func TestKafka_Skip_ValidationError_Then_SaveValid_TC(t *testing.T) {
	ctx, cancel, repo, logg, kf := newStack(t)
	defer cancel()

	topic, group := kf.CatalogTopic(ctx, t)

	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    "first",
		ProcessTimeout: 3 * time.Second,
		RetryInitial:   200 * time.Millisecond,
		RetryMax:       2 * time.Second,
	}, newCatalog(repo, logg), logg)
	defer consumer.Close()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() { _ = consumer.Run(runCtx) }()

	time.Sleep(1500 * time.Millisecond)

	badName := "Broken " + testutil.UniqSuffix()
	writeMsg(t, ctx, kf.Brokers, topic, productJSON(t, badName, "0"))

	okName := "Hat " + testutil.UniqSuffix()
	writeMsg(t, ctx, kf.Brokers, topic, productJSON(t, okName, "15.00"))

	waitProduct(t, ctx, repo, okName, 20*time.Second)

	items, total, err := repo.List(ctx, domain.ProductFilter{Name: badName}, 10, 0)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, items)
}

// 4) StartOffset="last": сообщения, опубликованные до старта консьюмера, игнорируются
func TestKafka_StartOffset_Last_IgnoresOld_TC(t *testing.T) {
	ctx, cancel, repo, logg, kf := newStack(t)
	defer cancel()

	topic, group := kf.CatalogTopic(ctx, t)

	oldName := "Old " + testutil.UniqSuffix()
	writeMsg(t, ctx, kf.Brokers, topic, productJSON(t, oldName, "10.00"))

	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:     kf.Brokers,
		Topic:       topic,
		GroupID:     group,
		StartOffset: "last",
	}, newCatalog(repo, logg), logg)
	defer consumer.Close()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() { _ = consumer.Run(runCtx) }()

	// Публикуем новое несколько раз до появления в каталоге — одно из сообщений
	// гарантированно окажется после базовой позиции консьюмера.
	newName := "New " + testutil.UniqSuffix()
	raw := productJSON(t, newName, "11.00")

	deadline := time.Now().Add(20 * time.Second)
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for {
		writeMsg(t, ctx, kf.Brokers, topic, raw)

		if p := findProduct(t, ctx, repo, newName); p != nil {
			require.Nil(t, findProduct(t, ctx, repo, oldName))
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("product %q not saved in time", newName)
		}
		<-ticker.C
	}
}

// 5) At-least-once через рестарт: при временной ошибке оффсет не коммитится — передоставка после перезапуска
func TestKafka_Redelivery_AfterRestart_NoCommit_TC(t *testing.T) {
	ctx, cancel, repo, logg, kf := newStack(t)
	defer cancel()

	topic, group := kf.CatalogTopic(ctx, t)

	name := "Redelivered " + testutil.UniqSuffix()
	writeMsg(t, ctx, kf.Brokers, topic, productJSON(t, name, "42.00"))

	// Фаза 1: хранилище «недоступно» => оффсет НЕ коммитится
	consumerFail := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        kf.Brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    "first",
		ProcessTimeout: 300 * time.Millisecond,
		RetryInitial:   100 * time.Millisecond,
		RetryMax:       300 * time.Millisecond,
	}, unavailableIngestor{}, logg)

	runCtx1, cancelRun1 := context.WithCancel(ctx)
	go func() { _ = consumerFail.Run(runCtx1) }()

	time.Sleep(2 * time.Second)
	cancelRun1()
	_ = consumerFail.Close()

	// Фаза 2: та же группа и рабочий каталог — перехватываем некоммиченное
	consumerOK := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:     kf.Brokers,
		Topic:       topic,
		GroupID:     group,
		StartOffset: "first",
	}, newCatalog(repo, logg), logg)
	defer consumerOK.Close()

	runCtx2, cancelRun2 := context.WithCancel(ctx)
	defer cancelRun2()
	go func() { _ = consumerOK.Run(runCtx2) }()

	waitProduct(t, ctx, repo, name, 25*time.Second)
}

// -----------------функции-помощники-----------------

func newStack(t *testing.T) (
	ctx context.Context,
	cancel func(),
	repo *mongodb.ProductRepository,
	logg ports.Logger,
	kf *testutil.KafkaEnv,
) {
	t.Helper()

	env := testutil.StartMongo(t)
	kf = testutil.StartKafka(t, "products-itc")

	logg, closer, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	// Короткий контекст — сам тест
	ctx, cancel = context.WithTimeout(context.Background(), 60*time.Second)

	return ctx, cancel, mongodb.NewProductRepository(env.Client), logg, kf
}

func newCatalog(repo ports.ProductRepository, logg ports.Logger) *usecase.CatalogService {
	return usecase.NewCatalogService(repo, cachemem.NewProductCache(100, time.Minute), logg, validate.NewProductValidator())
}

func productJSON(t *testing.T, name, price string) []byte {
	t.Helper()
	raw, err := json.Marshal(validate.ProductPayload{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Sizes: []domain.Size{{Size: "S", Quantity: 3}, {Size: "M", Quantity: 1}},
	})
	require.NoError(t, err)
	return raw
}

func findProduct(t *testing.T, ctx context.Context, repo *mongodb.ProductRepository, name string) *domain.Product {
	t.Helper()
	items, _, err := repo.List(ctx, domain.ProductFilter{Name: name}, 10, 0)
	require.NoError(t, err)
	for _, p := range items {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func waitProduct(t *testing.T, ctx context.Context, repo *mongodb.ProductRepository, name string, within time.Duration) *domain.Product {
	t.Helper()
	deadline := time.Now().Add(within)
	for {
		if p := findProduct(t, ctx, repo, name); p != nil {
			require.NotEmpty(t, p.ID)
			return p
		}
		if time.Now().After(deadline) {
			t.Fatalf("product %q not saved in time", name)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func writeMsg(t *testing.T, ctx context.Context, brokers []string, topic string, payload []byte) {
	t.Helper()
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()
	require.NoError(t, w.WriteMessages(ctx, kafka.Message{Value: payload}))
}

// каталог-заглушка: хранилище всегда недоступно, оффсет не коммитится
type unavailableIngestor struct{}

func (unavailableIngestor) CreateFromMessage(context.Context, []byte) error {
	return fmt.Errorf("insert products: %w", domain.ErrStoreUnavailable)
}
