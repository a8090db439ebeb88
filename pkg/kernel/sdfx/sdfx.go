// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/planar-kit/planar/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// sdfxProfile wraps an sdf.SDF2 to implement kernel.Profile.
type sdfxProfile struct {
	s sdf.SDF2
}

// Evaluate returns the signed distance from (x, y) to the boundary.
func (p *sdfxProfile) Evaluate(x, y float64) float64 {
	return p.s.Evaluate(v2.Vec{X: x, Y: y})
}

// BoundingBox returns the axis-aligned bounding box.
func (p *sdfxProfile) BoundingBox() (min, max [2]float64) {
	bb := p.s.BoundingBox()
	min = [2]float64{bb.Min.X, bb.Min.Y}
	max = [2]float64{bb.Max.X, bb.Max.Y}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF2 from a kernel.Profile.
func unwrap(p kernel.Profile) sdf.SDF2 {
	return p.(*sdfxProfile).s
}

// wrap creates a kernel.Profile from an sdf.SDF2.
func wrap(s sdf.SDF2) kernel.Profile {
	return &sdfxProfile{s: s}
}

// Circle creates a circular profile with the given diameter, centered at
// the origin.
func (k *SdfxKernel) Circle(diameter float64) kernel.Profile {
	s, err := sdf.Circle2D(diameter / 2)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Circle2D: %v", err))
	}
	return wrap(s)
}

// Square creates a square profile with the given side length. The profile
// has its minimum corner at the origin so that placement translations work
// intuitively. sdf.Box2D centers the box at the origin, so we translate by
// half the side.
func (k *SdfxKernel) Square(side float64) kernel.Profile {
	s := sdf.Box2D(v2.Vec{X: side, Y: side}, 0)
	// Shift from center-origin to min-corner-origin.
	m := sdf.Translate2d(v2.Vec{X: side / 2, Y: side / 2})
	return wrap(sdf.Transform2D(s, m))
}

// Union returns the union of two profiles.
func (k *SdfxKernel) Union(a, b kernel.Profile) kernel.Profile {
	return wrap(sdf.Union2D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Profile) kernel.Profile {
	return wrap(sdf.Difference2D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two profiles.
func (k *SdfxKernel) Intersection(a, b kernel.Profile) kernel.Profile {
	return wrap(sdf.Intersect2D(unwrap(a), unwrap(b)))
}

// Translate moves a profile by (x, y).
func (k *SdfxKernel) Translate(p kernel.Profile, x, y float64) kernel.Profile {
	m := sdf.Translate2d(v2.Vec{X: x, Y: y})
	return wrap(sdf.Transform2D(unwrap(p), m))
}

// Rotate rotates a profile counterclockwise by the given angle in degrees.
func (k *SdfxKernel) Rotate(p kernel.Profile, degrees float64) kernel.Profile {
	m := sdf.Rotate2d(degrees * math.Pi / 180.0)
	return wrap(sdf.Transform2D(unwrap(p), m))
}
