//go:build integration

package testutil

import (
	"context"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"

	mongorepo "github.com/Gunvolt24/shop/internal/repo/mongodb"
)

const (
	mongoImage    = "mongo:7"
	redpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"
	startTimeout  = 2 * time.Minute
)

// MongoEnv — mongod в контейнере и подключённый клиент к отдельной базе теста.
type MongoEnv struct {
	Container *mongodb.MongoDBContainer
	Client    *mongorepo.Client
	URI       string
	Database  string
}

// KafkaEnv — брокер Redpanda (Kafka API) в контейнере.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

// lifecycle пишет в лог теста старт и остановку контейнеров.
func lifecycle(tb testing.TB) tc.CustomizeRequestOption {
	short := func(c tc.Container) string {
		id := c.GetContainerID()
		return id[:min(12, len(id))]
	}
	return tc.WithLifecycleHooks(tc.ContainerLifecycleHooks{
		PostReadies: []tc.ContainerHook{func(_ context.Context, c tc.Container) error {
			tb.Logf("container ready id=%s", short(c))
			return nil
		}},
		PreTerminates: []tc.ContainerHook{func(_ context.Context, c tc.Container) error {
			tb.Logf("container terminating id=%s", short(c))
			return nil
		}},
	})
}

// StartMongo поднимает mongo:7, подключает клиент, создаёт индексы каталога и заказов.
// Остановка и отключение регистрируются в tb.Cleanup.
func StartMongo(tb testing.TB) *MongoEnv {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	mc, err := mongodb.Run(ctx, mongoImage, lifecycle(tb))
	if err != nil {
		tb.Fatalf("run mongo: %v", err)
	}
	tb.Cleanup(func() { _ = tc.TerminateContainer(mc) })

	uri, err := mc.ConnectionString(ctx)
	if err != nil {
		tb.Fatalf("mongo connection string: %v", err)
	}

	database := "shop_" + UniqSuffix()
	client := mongorepo.NewClient(mongorepo.Options{
		URI:                    uri,
		Database:               database,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 10 * time.Second,
		MaxPoolSize:            5,
	})
	if err := client.Connect(ctx); err != nil {
		tb.Fatalf("mongo connect: %v", err)
	}
	tb.Cleanup(func() { _ = client.Close(context.Background()) })

	if err := mongorepo.EnsureIndexes(ctx, client); err != nil {
		tb.Fatalf("ensure indexes: %v", err)
	}

	return &MongoEnv{Container: mc, Client: client, URI: uri, Database: database}
}

// StartKafka поднимает Redpanda с автосозданием топиков.
func StartKafka(tb testing.TB, baseTopic string) *KafkaEnv {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	rp, err := redpanda.Run(ctx, redpandaImage, lifecycle(tb), redpanda.WithAutoCreateTopics())
	if err != nil {
		tb.Fatalf("run redpanda: %v", err)
	}
	tb.Cleanup(func() { _ = tc.TerminateContainer(rp) })

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		tb.Fatalf("redpanda seed broker: %v", err)
	}

	return &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}
}
