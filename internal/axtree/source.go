package axtree

import (
	"fmt"
	"runtime"
)

// Source provides live accessibility trees for running applications.
type Source interface {
	// AppTree returns the root node of the accessibility tree for the
	// application with the given platform process identifier (bundle ID
	// on macOS, executable name elsewhere).
	AppTree(processIdentifier string) (Node, error)
}

// ErrUnsupported is returned where no platform source is registered.
var ErrUnsupported = fmt.Errorf("live accessibility access is not supported on %s/%s; query a snapshot file instead", runtime.GOOS, runtime.GOARCH)

// NewSourceFunc is set by platform-specific packages via init().
var NewSourceFunc func() (Source, error)

// NewSource returns the registered live Source for the current OS.
func NewSource() (Source, error) {
	if NewSourceFunc == nil {
		return nil, ErrUnsupported
	}
	return NewSourceFunc()
}
