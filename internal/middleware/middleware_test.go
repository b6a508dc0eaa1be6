package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"userhub/backend/internal/metrics"
	"userhub/backend/internal/models/dtos"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("Expected request ID in context")
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Errorf("Expected response header %q, got %q", seen, rr.Header().Get(RequestIDHeader))
	}
}

func TestRequestIDMiddleware_KeepsIncomingID(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "abc-123" {
		t.Errorf("Expected abc-123, got %q", seen)
	}
}

func TestRateLimiter_RejectsAfterBurst(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	h := NewRateLimiter(0.001, 2, m).Middleware(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected [200 200 429], got %v", codes)
	}
	if got := testutil.ToFloat64(m.RateLimitedTotal); got != 1 {
		t.Errorf("Expected 1 rate-limited request, got %v", got)
	}

	// A different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for second client, got %d", rr.Code)
	}
}

func TestRateLimiter_DropsIdleClients(t *testing.T) {
	rl := newRateLimiter(0.001, 1, nil, 20*time.Millisecond)
	h := rl.Middleware(http.HandlerFunc(okHandler))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send("10.0.0.1:5555"); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if code := send("10.0.0.1:5555"); code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", code)
	}
	send("10.0.0.2:5555")

	time.Sleep(100 * time.Millisecond)

	if n := rl.limiters.ItemCount(); n != 0 {
		t.Errorf("Expected idle buckets to be evicted, %d left", n)
	}
	if code := send("10.0.0.1:5555"); code != http.StatusOK {
		t.Errorf("Expected fresh bucket after idling, got %d", code)
	}
}

func TestRecoverer(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	for _, tc := range []struct {
		exposeErr bool
		wantError string
	}{{false, ""}, {true, "boom"}} {
		rr := httptest.NewRecorder()
		Recoverer(tc.exposeErr)(panicking).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", rr.Code)
		}
		var resp dtos.APIResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Success || resp.Message != "Internal server error" || resp.Error != tc.wantError {
			t.Errorf("exposeErr=%v: unexpected response %+v", tc.exposeErr, resp)
		}
	}
}

func TestRecoverer_AfterHeadersWritten(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("partial"))
		panic("boom")
	})

	rr := httptest.NewRecorder()
	Recoverer(true)(panicking).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusAccepted {
		t.Errorf("Expected original status 202, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != "partial" {
		t.Errorf("Expected body to stay %q, got %q", "partial", body)
	}
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Get("/api/users/{id}", okHandler)

	for _, path := range []string{"/api/users/1", "/api/users/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/api/users/{id}", "GET", "200")); got != 2 {
		t.Errorf("Expected 2 requests on pattern, got %v", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("unknown", "GET", "404")); got != 1 {
		t.Errorf("Expected 1 unmatched request, got %v", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequestsInFlight); got != 0 {
		t.Errorf("Expected no requests in flight, got %v", got)
	}
}
