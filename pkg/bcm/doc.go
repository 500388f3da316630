// Package bcm adapts the local BCM agent state into the fact mapping
// consumed by the reconciliation loop.
//
// The BCM agent (cm-lite-daemon) maintains a JSON state file on the node.
// Source.Fetch reads it on demand and merges it over the base facts the
// labeler always knows (node identity and fetch timestamp). The file being
// absent is normal; everything else that prevents a read is surfaced as a
// SOURCE_UNAVAILABLE error and absorbed by the loop for that cycle.
package bcm
