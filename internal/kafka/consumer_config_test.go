package kafka_test

import (
	"testing"
	"time"

	mykafka "github.com/Gunvolt24/shop/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestConsumerConfig_ReaderConfig_StartOffset(t *testing.T) {
	t.Parallel()

	cases := map[string]int64{
		"first":     kafkago.FirstOffset,
		"FIRST":     kafkago.FirstOffset,
		" FiRsT \n": kafkago.FirstOffset,
		"":          kafkago.LastOffset,
		"last":      kafkago.LastOffset,
		"earliest":  kafkago.LastOffset,
	}

	for in, want := range cases {
		in, want := in, want
		t.Run("offset="+in, func(t *testing.T) {
			t.Parallel()
			cfg := mykafka.ConsumerConfig{Topic: "products", StartOffset: in}
			assert.Equal(t, want, cfg.ReaderConfig().StartOffset)
		})
	}
}

func TestConsumerConfig_ReaderConfig_ManualCommit(t *testing.T) {
	cfg := mykafka.ConsumerConfig{
		Brokers:        []string{"k1:9092", "k2:9092"},
		Topic:          "products",
		GroupID:        "shop-catalog",
		ProcessTimeout: 3 * time.Second,
	}

	rc := cfg.ReaderConfig()

	assert.Equal(t, cfg.Brokers, rc.Brokers)
	assert.Equal(t, "products", rc.Topic)
	assert.Equal(t, "shop-catalog", rc.GroupID)
	assert.Zero(t, rc.CommitInterval, "offsets are committed explicitly after ingest")
}
