// Package server exposes the labeler's metric state over HTTP.
//
// The server is a pull-based Prometheus exposition endpoint plus the
// liveness and readiness probes a DaemonSet needs. It never writes
// metrics; the reconciliation loop is the single writer and scrapes read
// the last-written state through the shared registry. Starting the server
// is a one-time setup action independent of the reconciliation loop.
package server
