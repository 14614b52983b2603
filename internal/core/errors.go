package core

import "errors"

var (
	// ErrConfigNotFound reports an explicitly requested target configuration
	// that does not exist on disk.
	ErrConfigNotFound = errors.New("target configuration not found")

	// ErrConfigAmbiguous reports caller inputs that cannot be resolved to a
	// single target configuration.
	ErrConfigAmbiguous = errors.New("target configuration ambiguous")

	// ErrOptionNotFound reports a device option id the engine does not know.
	ErrOptionNotFound = errors.New("option not found")

	// ErrHardware reports an engine-side hardware failure, e.g. an XDS110
	// probe operation that did not complete.
	ErrHardware = errors.New("hardware error")
)
