// Package metrics exposes Prometheus counters for reconciliation runs.
//
// Counters are registered on a dedicated registry rather than the global
// default, so tests and multiple engines in one process do not collide.
// Serve mode mounts Handler at /metrics.
package metrics
