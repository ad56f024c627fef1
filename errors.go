package vergen

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is wrapped by failures to read HEAD or ref files and to write
	// output.
	ErrIO = errors.New("vergen: i/o failure")

	// ErrNoPackageVersion is wrapped by a semver derivation that could not
	// fall back to the package version.
	ErrNoPackageVersion = errors.New("vergen: package version is not set")

	// ErrMissingFact is wrapped when the version file misses a selected fact.
	ErrMissingFact = errors.New("vergen: selected fact could not be derived")
)

// DerivationError identifies the single fact whose derivation failed hard.
type DerivationError struct {
	Key Key
	Err error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("vergen: failed to derive %s: %v", e.Key, e.Err)
}

func (e *DerivationError) Unwrap() error { return e.Err }
