// Package metrics owns the Prometheus gauge set the labeler exports.
//
// The set is fixed and statically known: node info, hardware gauges, and
// self-observability counters for the reconciliation loop. Update absorbs
// missing facts by defaulting, so projecting metrics can never fail a cycle.
package metrics
