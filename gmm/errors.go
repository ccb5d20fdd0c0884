package gmm

import (
	"errors"
	"fmt"
)

// Error taxonomy for the GMM engine. Load-time problems are fatal: a Catalog
// either initializes completely or not at all. Per-call problems surface
// synchronously from the Registry. Input values outside a model's Constraints
// are deliberately NOT errors; Constraints exist for discoverability and
// upstream validation only, and intentional extrapolation is supported.
var (
	// ErrResourceLoad wraps any malformed or missing coefficient or table
	// resource detected while building a Catalog.
	ErrResourceLoad = errors.New("resource load failed")

	// ErrUnsupportedPeriod is returned when a model instance is requested for
	// an intensity measure type the model has no data for. Recoverable: pick
	// another model or period, or bridge the gap with an InterpolatedGmm.
	ErrUnsupportedPeriod = errors.New("unsupported intensity measure type")

	// ErrConstruction wraps any other failure during lazy model
	// instantiation. These indicate configuration or programming defects.
	ErrConstruction = errors.New("model construction failed")
)

// unsupportedImt wraps ErrUnsupportedPeriod with the data source that lacks
// coverage for imt.
func unsupportedImt(source string, imt Imt) error {
	return fmt.Errorf("%s: %w: %s", source, ErrUnsupportedPeriod, imt)
}
