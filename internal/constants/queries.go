package constants

const (
	// HealthProbeQuery is the round trip used by the readiness probe.
	HealthProbeQuery = `SELECT 1`
)
