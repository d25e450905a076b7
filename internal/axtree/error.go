package axtree

import (
	"errors"
	"fmt"
)

// Status classifies why a platform accessibility read failed. Callers decide
// retry vs. abort vs. report based on the status, so the values must stay
// distinguishable.
type Status string

const (
	// StatusPermissionDisabled means the accessibility API is present but
	// the user has not granted (or has revoked) permission to use it.
	StatusPermissionDisabled Status = "permission-disabled"

	// StatusUnsupported means the target does not support introspection.
	StatusUnsupported Status = "unsupported"

	// StatusUnreachable means the target is temporarily unreachable, e.g.
	// still launching or busy; the call may succeed if retried later.
	StatusUnreachable Status = "unreachable"

	// StatusOther covers platform failures outside the taxonomy above.
	StatusOther Status = "other"
)

// AccessError reports a failed read against a platform accessibility API.
type AccessError struct {
	Status Status // failure classification
	Op     string // attribute or operation that failed, e.g. "children"
	Err    error  // underlying platform error, may be nil
}

func (e *AccessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("accessibility read %s: %s: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("accessibility read %s: %s", e.Op, e.Status)
}

func (e *AccessError) Unwrap() error { return e.Err }

// StatusOf extracts the platform status from err, if err is or wraps an
// AccessError.
func StatusOf(err error) (Status, bool) {
	var ae *AccessError
	if errors.As(err, &ae) {
		return ae.Status, true
	}
	return "", false
}
