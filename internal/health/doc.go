// Package health computes the liveness, readiness and comprehensive
// health reports served under /api/health.
//
// Liveness never touches a dependency. Readiness and the comprehensive
// report run the database probe exactly once per call; a probe failure is
// reported as a DOWN check and never returned as an error.
package health
