package api

import "fmt"

// Error helpers tagging failures with the operation that raised them.
// Kinds stay matchable via errors.Is.

// NewKind returns an op-tagged error of the given kind.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind returns an op-tagged error of the given kind carrying a cause.
func WrapKind(op string, kind, cause error) error {
	return fmt.Errorf("%s: %w: %v", op, kind, cause)
}

// Wrap returns an op-tagged error preserving the original kind.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
