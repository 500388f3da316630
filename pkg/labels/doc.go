// Package labels projects BCM facts onto Kubernetes node labels.
//
// Projection is allow-list driven: only facts with a known label mapping
// are exposed, which keeps the label surface bounded no matter what the
// BCM state file contains. Values are sanitized to satisfy the Kubernetes
// label value grammar before they ever reach the API.
package labels
