package app

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type discardLogger struct{ warns int }

func (*discardLogger) Infof(context.Context, string, ...any)   {}
func (l *discardLogger) Warnf(context.Context, string, ...any) { l.warns++ }
func (*discardLogger) Errorf(context.Context, string, ...any)  {}

func TestApplyGinMode(t *testing.T) {
	defer gin.SetMode(gin.TestMode)

	cases := []struct {
		in        string
		wantMode  string
		wantWarns int
	}{
		{"release", gin.ReleaseMode, 0},
		{" TEST ", gin.TestMode, 0},
		{"", gin.DebugMode, 0},
		{"debug", gin.DebugMode, 0},
		{"verbose", gin.DebugMode, 1},
	}
	for _, tc := range cases {
		log := &discardLogger{}
		applyGinMode(context.Background(), tc.in, log)
		if gin.Mode() != tc.wantMode {
			t.Fatalf("mode %q: want %s, got %s", tc.in, tc.wantMode, gin.Mode())
		}
		if log.warns != tc.wantWarns {
			t.Fatalf("mode %q: want %d warnings, got %d", tc.in, tc.wantWarns, log.warns)
		}
	}
}

func TestNewMetricsServer(t *testing.T) {
	if newMetricsServer("  ", time.Second) != nil {
		t.Fatal("blank addr must disable the metrics listener")
	}
	srv := newMetricsServer(":2112", time.Second)
	if srv == nil || srv.Addr != ":2112" || srv.ReadHeaderTimeout != time.Second {
		t.Fatalf("unexpected metrics server: %+v", srv)
	}
}
