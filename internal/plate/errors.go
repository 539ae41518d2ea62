package plate

import (
	"errors"
	"fmt"
)

// Domain errors for session operations.
var (
	// ErrUnknownParam indicates SetParam was given a name it does not know.
	ErrUnknownParam = errors.New("plate: unknown parameter")

	// ErrUnknownShape indicates a shape name other than rectangle, annulus or polygon.
	ErrUnknownShape = errors.New("plate: unknown shape")

	// ErrUnknownMaterial indicates a material missing from the material table.
	ErrUnknownMaterial = errors.New("plate: unknown material")

	// ErrUnknownPolygon indicates a polygon preset that does not exist.
	ErrUnknownPolygon = errors.New("plate: unknown polygon preset")

	// ErrInvalidGrainCount indicates a non-positive grain count.
	ErrInvalidGrainCount = errors.New("plate: grain count must be positive")

	// ErrInvalidPolicy indicates a boundary policy other than clamp or remove.
	ErrInvalidPolicy = errors.New("plate: unknown boundary policy")

	// ErrInvalidValue indicates a NaN, infinite or non-positive value where
	// a finite positive one is required.
	ErrInvalidValue = errors.New("plate: invalid parameter value")
)

// ParamError wraps an error with the parameter that caused it.
type ParamError struct {
	Name    string
	Value   any
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s (%s=%v)", e.Wrapped.Error(), e.Name, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
