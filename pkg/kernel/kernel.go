// Package kernel defines the abstract 2D geometry kernel interface.
// Implementations provide plane-figure profiles as signed distance
// fields behind this interface. The kernel abstraction allows swapping
// backends without changing the rest of the system.
package kernel

// Profile is an opaque handle to a 2D profile.
// Implementations wrap their internal representation.
type Profile interface {
	// Evaluate returns the signed distance from (x, y) to the profile
	// boundary: negative inside, positive outside.
	Evaluate(x, y float64) float64
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [2]float64)
}

// Kernel is the abstract 2D geometry kernel interface.
type Kernel interface {
	// Primitives
	Circle(diameter float64) Profile
	Square(side float64) Profile

	// Boolean operations
	Union(a, b Profile) Profile
	Difference(a, b Profile) Profile
	Intersection(a, b Profile) Profile

	// Transforms
	Translate(p Profile, x, y float64) Profile
	Rotate(p Profile, degrees float64) Profile
}
