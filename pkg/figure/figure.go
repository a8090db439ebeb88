// Package figure computes named geometric descriptions of plane figures.
// Each figure kind has its own creation operation; dispatch is always by
// kind, never by numeric argument type.
package figure

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeDimension is the sentinel wrapped by every DimensionError.
var ErrNegativeDimension = errors.New("negative dimension")

// DimensionError reports a caller-supplied dimension that violates a
// factory precondition.
type DimensionError struct {
	Kind  string  // figure kind being created
	Arg   string  // argument name, e.g. "diameter"
	Value float64 // the offending value
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s %v: %v", e.Kind, e.Arg, e.Value, ErrNegativeDimension)
}

// Unwrap lets errors.Is match ErrNegativeDimension.
func (e *DimensionError) Unwrap() error { return ErrNegativeDimension }

// Description is an immutable record of a figure's name and derived
// measures. It has no identity beyond its values.
type Description struct {
	Name      string
	Area      float64
	Perimeter float64
}

// Circle describes a circle from its diameter.
// Area is pi*r^2 and perimeter 2*pi*r with r = diameter/2.
func Circle(diameter float64) (Description, error) {
	if diameter < 0 {
		return Description{}, &DimensionError{Kind: "Circle", Arg: "diameter", Value: diameter}
	}
	radius := diameter / 2
	return Description{
		Name:      "Circle",
		Area:      math.Pi * radius * radius,
		Perimeter: 2 * math.Pi * radius,
	}, nil
}

// Square describes a square from its side length.
func Square(side float64) (Description, error) {
	if side < 0 {
		return Description{}, &DimensionError{Kind: "Square", Arg: "side", Value: side}
	}
	return Description{
		Name:      "Square",
		Area:      side * side,
		Perimeter: 4 * side,
	}, nil
}

// Factory produces descriptions for one figure kind from a single
// dimension. One implementation exists per kind.
type Factory interface {
	// Kind returns the name of the figure kind this factory produces.
	Kind() string
	// Create computes a description from the kind's single dimension
	// (diameter for circles, side length for squares).
	Create(dim float64) (Description, error)
}

// CircleFactory creates circle descriptions from a diameter.
type CircleFactory struct{}

func (CircleFactory) Kind() string { return "Circle" }

func (CircleFactory) Create(dim float64) (Description, error) {
	return Circle(dim)
}

// SquareFactory creates square descriptions from a side length.
type SquareFactory struct{}

func (SquareFactory) Kind() string { return "Square" }

func (SquareFactory) Create(dim float64) (Description, error) {
	return Square(dim)
}

// Compile-time interface checks.
var (
	_ Factory = CircleFactory{}
	_ Factory = SquareFactory{}
)
