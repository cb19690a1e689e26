// Package metrics exposes generator and runtime measurements: a Prometheus
// recorder for the sequence generator and point-in-time memory snapshots.
package metrics
