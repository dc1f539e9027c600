// internal/logger/logger_test.go

package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWritesDailyFile(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	dir := filepath.Join(t.TempDir(), "logs")
	log, err := New(Options{Dir: dir, Level: "debug"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debugw("daily file check", "k", "v")
	_ = log.Sync()

	name := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	raw, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"daily file check"`) || !strings.Contains(string(raw), `"level":"debug"`) {
		t.Fatalf("log file missing entry:\n%s", raw)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(Options{Dir: t.TempDir(), Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	scoped := zap.New(core).Sugar().With("request_id", "abc")

	ctx := WithContext(context.Background(), scoped)
	FromContext(ctx).Info("hello")

	if logs.Len() != 1 || logs.All()[0].ContextMap()["request_id"] != "abc" {
		t.Fatalf("entries = %+v", logs.All())
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext must fall back to the global logger")
	}
}
