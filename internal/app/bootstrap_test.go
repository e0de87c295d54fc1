package app_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/shop/config"
	"github.com/Gunvolt24/shop/internal/app"
)

// логгер-заглушка
type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// фейковый консьюмер, который ждёт отмены контекста
type fakeConsumer struct {
	runCalls   int32
	closeCalls int32
}

func (f *fakeConsumer) Run(ctx context.Context) error {
	atomic.AddInt32(&f.runCalls, 1)
	<-ctx.Done()
	return ctx.Err()
}
func (f *fakeConsumer) Close() error {
	atomic.AddInt32(&f.closeCalls, 1)
	return nil
}

// консьюмер, падающий сразу (брокер недоступен и т.п.)
type failingConsumer struct{}

func (failingConsumer) Run(context.Context) error { return errors.New("broker down") }
func (failingConsumer) Close() error              { return nil }

func TestAppRun_GracefulShutdown(t *testing.T) {
	// HTTP-сервер на случайном свободном порту
	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	fc := &fakeConsumer{}
	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    srv,
		KafkaConsumer: fc,
	}

	// Запуск и быстрая остановка
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if atomic.LoadInt32(&fc.runCalls) == 0 {
		t.Fatalf("consumer.Run should be called")
	}
	if atomic.LoadInt32(&fc.closeCalls) == 0 {
		t.Fatalf("consumer.Close should be called")
	}
}

func TestAppRun_WithoutConsumer_AndMetricsServer(t *testing.T) {
	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		MetricsServer: &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestAppRun_BackgroundErrorIsReturned(t *testing.T) {
	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		KafkaConsumer: failingConsumer{},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := a.Run(ctx)
	if err == nil || err.Error() != "broker down" {
		t.Fatalf("want broker error, got %v", err)
	}
}

func TestBootstrap_MongoUnreachable_FailsFast(t *testing.T) {
	// занятый и сразу закрытый порт — гарантированно никто не слушает
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	cfg, err := config.LoadWithPrefix("SHOP_BOOTSTRAP_TEST")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Mongo.URI = "mongodb://" + addr + "/?directConnection=true"
	cfg.Mongo.ConnectTimeout = 300 * time.Millisecond
	cfg.Mongo.ServerSelectionTimeout = 300 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err == nil {
		cleanup()
		t.Fatal("Bootstrap must fail when mongo is unreachable")
	}
	if a != nil {
		t.Fatalf("app must be nil on error, got %+v", a)
	}
	cleanup()
}
