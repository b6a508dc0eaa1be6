package health

import (
	"context"
	"encoding/json"
	"regexp"
	"runtime"
	"testing"
	"time"

	"userhub/backend/internal/models/entities"
)

type stubProber struct {
	result entities.CheckResult
	calls  int
}

func (p *stubProber) Check(ctx context.Context) entities.CheckResult {
	p.calls++
	return p.result
}

var (
	upResult   = entities.CheckResult{Status: entities.StatusUp, ResponseTime: "3ms"}
	downResult = entities.CheckResult{Status: entities.StatusDown, Error: "connection refused"}
	testInfo   = entities.ServiceInfo{Name: "userhub-backend", Version: "1.0.0", Environment: "test", GoVersion: runtime.Version()}
)

func newTestAggregator(p Prober, started, now time.Time) *Aggregator {
	a := NewAggregator(p, testInfo, started)
	a.now = func() time.Time { return now }
	a.memory = func() MemorySnapshot {
		return MemorySnapshot{HeapUsed: 1572864, HeapTotal: 4 * 1048576, RSS: 10 * 1048576, External: 524288}
	}
	return a
}

func TestAggregator_LiveChecksNothing(t *testing.T) {
	p := &stubProber{result: downResult}
	now := time.Date(2026, 10, 15, 8, 30, 0, 123e6, time.UTC)
	a := newTestAggregator(p, now, now)

	got := a.Live()

	if got.Status != entities.StatusUp {
		t.Errorf("Expected UP, got %s", got.Status)
	}
	if got.Timestamp != "2026-10-15T08:30:00.123Z" {
		t.Errorf("Unexpected timestamp %q", got.Timestamp)
	}
	if got.Checks != nil || got.Service != nil || got.Memory != nil || got.Uptime != nil {
		t.Errorf("Expected bare liveness body, got %+v", got)
	}
	if p.calls != 0 {
		t.Errorf("Expected no probe calls, got %d", p.calls)
	}
}

func TestAggregator_Ready(t *testing.T) {
	tests := []struct {
		name   string
		result entities.CheckResult
		want   entities.Status
	}{
		{"database up", upResult, entities.StatusUp},
		{"database down", downResult, entities.StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProber{result: tt.result}
			now := time.Now()
			got := newTestAggregator(p, now, now).Ready(context.Background())

			if got.Status != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.Status)
			}
			if got.Checks[CheckDatabase] != tt.result {
				t.Errorf("Expected database check %+v, got %+v", tt.result, got.Checks[CheckDatabase])
			}
			if p.calls != 1 {
				t.Errorf("Expected exactly one probe, got %d", p.calls)
			}
			if got.Service != nil || got.Memory != nil {
				t.Error("Readiness must not include diagnostics")
			}
		})
	}
}

func TestAggregator_Comprehensive(t *testing.T) {
	started := time.Date(2026, 10, 14, 7, 29, 59, 0, time.UTC)
	now := started.Add(90061*time.Second + 400*time.Millisecond)

	for _, tc := range []struct {
		result entities.CheckResult
		want   entities.Status
	}{
		{upResult, entities.StatusUp},
		{downResult, entities.StatusDown},
	} {
		p := &stubProber{result: tc.result}
		got := newTestAggregator(p, started, now).Comprehensive(context.Background())

		if got.Status != tc.want {
			t.Errorf("Expected %s, got %s", tc.want, got.Status)
		}
		if (got.Status == entities.StatusDown) != (got.Checks[CheckDatabase].Status == entities.StatusDown) {
			t.Errorf("Overall status %s disagrees with database check %s", got.Status, got.Checks[CheckDatabase].Status)
		}
		if p.calls != 1 {
			t.Errorf("Expected exactly one probe, got %d", p.calls)
		}
		if got.Uptime == nil || got.Uptime.Seconds != 90061 || got.Uptime.Formatted != "1d 1h 1m 1s" {
			t.Errorf("Unexpected uptime %+v", got.Uptime)
		}
		if got.Memory == nil || got.Memory.HeapUsed != "1.50 MB" || got.Memory.External != "0.50 MB" {
			t.Errorf("Unexpected memory %+v", got.Memory)
		}
		if got.Service == nil || *got.Service != testInfo {
			t.Errorf("Unexpected service %+v", got.Service)
		}
	}
}

func TestAggregator_ComprehensiveRealMemory(t *testing.T) {
	a := NewAggregator(&stubProber{result: upResult}, testInfo, time.Now())

	got := a.Comprehensive(context.Background())

	mb := regexp.MustCompile(`^\d+\.\d{2} MB$`)
	for name, v := range map[string]string{
		"heapUsed":  got.Memory.HeapUsed,
		"heapTotal": got.Memory.HeapTotal,
		"rss":       got.Memory.RSS,
		"external":  got.Memory.External,
	} {
		if !mb.MatchString(v) {
			t.Errorf("%s = %q does not match MB format", name, v)
		}
	}
}

func TestAggregator_Idempotent(t *testing.T) {
	for _, result := range []entities.CheckResult{upResult, downResult} {
		a := NewAggregator(&stubProber{result: result}, testInfo, time.Now())
		ctx := context.Background()

		if a.Ready(ctx).Status != a.Ready(ctx).Status {
			t.Error("Ready status changed between identical calls")
		}
		if a.Comprehensive(ctx).Status != a.Comprehensive(ctx).Status {
			t.Error("Comprehensive status changed between identical calls")
		}
		if a.Live().Status != a.Live().Status {
			t.Error("Live status changed between identical calls")
		}
	}
}

func TestAggregator_JSONShape(t *testing.T) {
	now := time.Now()
	a := newTestAggregator(&stubProber{result: downResult}, now, now)

	body, err := json.Marshal(a.Ready(context.Background()))
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	db := decoded["checks"].(map[string]any)["database"].(map[string]any)
	if db["status"] != "DOWN" || db["error"] != "connection refused" {
		t.Errorf("Unexpected database check %v", db)
	}
	if _, ok := db["responseTime"]; ok {
		t.Error("responseTime must be absent when error is set")
	}
	if _, ok := decoded["memory"]; ok {
		t.Error("memory must be absent from readiness")
	}
}

func TestOverall(t *testing.T) {
	if Overall(nil) != entities.StatusUp {
		t.Error("Expected UP with no checks")
	}
	checks := map[string]entities.CheckResult{"a": upResult, "b": downResult}
	if Overall(checks) != entities.StatusDown {
		t.Error("Expected DOWN when any check is DOWN")
	}
}
