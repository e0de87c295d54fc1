//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

var topicUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// CatalogTopic — свой топик карточек товаров и своя группа на каждый тест.
// Имя строится из BaseTopic, имени теста и случайного суффикса; топик создаётся заранее,
// чтобы консьюмер не ждал автосоздания.
func (e *KafkaEnv) CatalogTopic(ctx context.Context, t testing.TB) (topic, group string) {
	t.Helper()

	name := topicUnsafe.ReplaceAllString(t.Name(), "-")
	topic = fmt.Sprintf("%s-%s-%s", e.BaseTopic, strings.ToLower(name), UniqSuffix())
	group = topic + "-cg"

	if err := createTopic(ctx, e.Brokers[0], topic); err != nil {
		t.Fatalf("create topic %q: %v", topic, err)
	}
	return topic, group
}

// createTopic создаёт топик через контроллер кластера и ждёт его в метаданных.
func createTopic(ctx context.Context, broker, topic string) error {
	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return fmt.Errorf("dial %s: %w", broker, err)
	}
	ctrl, err := conn.Controller()
	_ = conn.Close()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}

	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return err
	}

	return waitPartitions(ctx, broker, topic, 5*time.Second)
}

func waitPartitions(ctx context.Context, broker, topic string, within time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, within)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var lastErr error
	for {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err == nil {
			var parts []kafka.Partition
			parts, err = conn.ReadPartitions(topic)
			_ = conn.Close()
			if err == nil && len(parts) > 0 {
				return nil
			}
		}
		if err != nil {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("topic %q not ready: %w", topic, lastErr)
			}
			return fmt.Errorf("topic %q not ready: %w", topic, ctx.Err())
		case <-tick.C:
		}
	}
}
