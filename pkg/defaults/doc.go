// Package defaults centralizes timeout and configuration constants for the
// BCM node labeler. Keeping them in one place makes operational tuning
// reviewable and keeps magic numbers out of the packages that use them.
package defaults
