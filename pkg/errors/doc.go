// Package errors provides structured error types for better observability
// and programmatic error handling across the labeler.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeApplyFailure,
//	    "failed to patch node labels",
//	    patchErr,
//	    map[string]interface{}{
//	        "node":   nodeName,
//	        "labels": len(labels),
//	    },
//	)
package errors
