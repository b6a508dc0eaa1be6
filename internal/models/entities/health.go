package entities

// Status is the UP/DOWN state of a check or of the whole service.
type Status string

const (
	StatusUp   Status = "UP"
	StatusDown Status = "DOWN"
)

// CheckResult is the outcome of a single dependency check.
// Exactly one of ResponseTime and Error is set.
type CheckResult struct {
	Status       Status `json:"status"`
	ResponseTime string `json:"responseTime,omitempty"`
	Error        string `json:"error,omitempty"`
}

type ServiceInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	GoVersion   string `json:"goVersion"`
}

type UptimeInfo struct {
	Seconds   int64  `json:"seconds"`
	Formatted string `json:"formatted"`
}

type MemoryInfo struct {
	HeapUsed  string `json:"heapUsed"`
	HeapTotal string `json:"heapTotal"`
	RSS       string `json:"rss"`
	External  string `json:"external"`
}

// HealthStatus is the body of every health endpoint. Liveness fills only
// Status and Timestamp.
type HealthStatus struct {
	Status    Status                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Service   *ServiceInfo           `json:"service,omitempty"`
	Uptime    *UptimeInfo            `json:"uptime,omitempty"`
	Memory    *MemoryInfo            `json:"memory,omitempty"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}
