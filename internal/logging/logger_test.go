package logging

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		if err := Init(env); err != nil {
			t.Fatalf("Init(%s): expected no error, got %v", env, err)
		}
		if GetLogger() == nil {
			t.Fatalf("Init(%s): expected a logger", env)
		}
	}
}

func TestWithRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))

	WithRequest("req-1", "GET", "/api/health").Infow("HTTP request completed", "status_code", 200)
	Debug("dropped below info")

	if logs.Len() != 1 {
		t.Fatalf("Expected 1 entry, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["request_id"] != "req-1" || fields["endpoint"] != "/api/health" {
		t.Errorf("Unexpected fields %v", fields)
	}
}

func TestHelpersReportCallerSite(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core, zap.AddCaller()))

	Info("info entry")
	Warn("warn entry", "key", "value")

	if logs.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", logs.Len())
	}
	for _, entry := range logs.All() {
		if !strings.HasSuffix(entry.Caller.File, "logger_test.go") {
			t.Errorf("%q: expected caller in logger_test.go, got %s", entry.Message, entry.Caller.File)
		}
	}
	if got := logs.All()[1].ContextMap()["key"]; got != "value" {
		t.Errorf("Expected key=value, got %v", got)
	}
}
