// Package node applies projected label sets to the local Kubernetes node
// and resolves the node identity the labeler operates on.
package node
