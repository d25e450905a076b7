package locator

import (
	"errors"

	"github.com/axlocate/axlocate/internal/axtree"
)

// Error kinds surfaced by the configuration model and the engine. Callers
// discriminate with errors.Is; messages carry context, kinds carry meaning.
// "Pattern well formed but nothing matched" is not an error kind at all: it
// is a nil result (see Engine.Resolve).
var (
	// ErrAppConfigNotFound reports an app name absent from the model.
	ErrAppConfigNotFound = errors.New("app not configured")

	// ErrElementPathNotFound reports an element name absent from a known
	// app's configuration.
	ErrElementPathNotFound = errors.New("element not configured")

	// ErrIndexOutOfRange reports a pattern index that falls outside the
	// candidate list, in either direction.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrConfigSourceMissing reports that no locator document exists where
	// the loader looked. Distinct from a malformed document: the fix is to
	// create a file, not repair one.
	ErrConfigSourceMissing = errors.New("locator config not found")

	// ErrConfigSourceMalformed reports a locator document that exists but
	// cannot be parsed or validated into a model.
	ErrConfigSourceMalformed = errors.New("locator config malformed")
)

// Kind names err's classification with one stable token per kind in the
// taxonomy, for structured reports (CLI results, server tool output). It
// returns "" for nil and "error" for anything unclassified. Callers that
// need behavior rather than a name should use errors.Is and axtree.StatusOf
// directly.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAppConfigNotFound):
		return "app-config-not-found"
	case errors.Is(err, ErrElementPathNotFound):
		return "element-path-not-found"
	case errors.Is(err, ErrIndexOutOfRange):
		return "index-out-of-range"
	case errors.Is(err, ErrConfigSourceMissing):
		return "config-source-missing"
	case errors.Is(err, ErrConfigSourceMalformed):
		return "config-source-malformed"
	case errors.Is(err, axtree.ErrTreeTooDeep):
		return "tree-too-deep"
	case errors.Is(err, axtree.ErrUnsupported):
		return "live-source-unsupported"
	}
	if status, ok := axtree.StatusOf(err); ok {
		return "accessibility-" + string(status)
	}
	return "error"
}
