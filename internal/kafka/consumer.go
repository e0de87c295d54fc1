package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/shop/internal/ports"
	"github.com/Gunvolt24/shop/pkg/metrics"
)

var _ ports.IngestConsumer = (*Consumer)(nil)

// reader — часть kafka.Reader, нужная консьюмеру.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// productIngestor разбирает, валидирует и сохраняет товар из сообщения.
// Ошибка с domain.ErrValidation означает, что сообщение испорчено навсегда.
type productIngestor interface {
	CreateFromMessage(ctx context.Context, raw []byte) error
}

// maxRetryPause — потолок паузы после временного сбоя обработки.
const maxRetryPause = 500 * time.Millisecond

// Consumer наполняет каталог карточками товаров из топика.
// Оффсет коммитится, когда товар сохранён или отбракован; при временном сбое
// сообщение остаётся незакоммиченным и будет прочитано снова (at-least-once).
type Consumer struct {
	reader         reader
	service        productIngestor
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer — консьюмер поверх kafka.Reader с ручным коммитом.
func NewConsumer(cfg *ConsumerConfig, service productIngestor, log ports.Logger) *Consumer {
	c := cfg.withDefaults()
	return newConsumer(kafka.NewReader(c.ReaderConfig()), service, log, &c)
}

func newConsumer(r reader, service productIngestor, log ports.Logger, cfg *ConsumerConfig) *Consumer {
	return &Consumer{
		reader:         r,
		service:        service,
		log:            log,
		processTimeout: cfg.ProcessTimeout,
		retryInitial:   cfg.RetryInitial,
		retryMax:       cfg.RetryMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run читает топик до отмены ctx. Ошибки брокера не фатальны: чтение повторяется
// с экспоненциальной паузой.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "catalog consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	backoff := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			pause := c.withJitterEqual(backoff)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, pause)
			if !c.sleep(ctx, pause) {
				return ctx.Err()
			}
			backoff = c.nextBackoff(backoff)
			continue
		}
		backoff = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		switch c.process(ctx, rc.Topic, &msg) {
		case outcomeStored, outcomeRejected:
			c.commit(ctx, &msg)
		case outcomeRetry:
			if !c.sleep(ctx, c.withJitterEqual(min(c.retryInitial, maxRetryPause))) {
				return ctx.Err()
			}
		}
	}
}

// Close закрывает reader; повторные вызовы ничего не делают.
func (c *Consumer) Close() (err error) {
	c.closeOnce.Do(func() { err = c.reader.Close() })
	return err
}

func (c *Consumer) commit(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed partition=%d offset=%d: %v", msg.Partition, msg.Offset, err)
	}
}

// sleep ждёт d; false, если ctx отменён раньше.
func (c *Consumer) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff удваивает паузу, не выходя за retryMax.
func (c *Consumer) nextBackoff(d time.Duration) time.Duration {
	return min(2*d, c.retryMax)
}

// withJitterEqual — d/2 фиксировано, остаток случаен: паузы экземпляров расходятся.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(c.jitterRand.Int63n(int64(d-half)+1))
}
