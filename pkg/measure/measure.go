// Package measure walks a figure sheet and numerically cross-checks each
// entry's analytic measures using a geometry kernel. One report is
// produced per figure.
package measure

import (
	"fmt"
	"math"

	"github.com/planar-kit/planar/pkg/kernel"
	"github.com/planar-kit/planar/pkg/sheet"
)

// Report is the numeric cross-check result for one figure.
type Report struct {
	Name        string     // entry name
	Kind        string     // figure kind
	Dimension   float64    // the single creating dimension
	Area        float64    // analytic area from the description
	Perimeter   float64    // analytic perimeter from the description
	SampledArea float64    // area estimated from the profile's distance field
	BoundsMin   [2]float64 // profile bounding box
	BoundsMax   [2]float64
}

// AreaDeviation returns the relative disagreement between the analytic
// and sampled areas. Zero-area figures deviate by zero.
func (r Report) AreaDeviation() float64 {
	if r.Area == 0 {
		return math.Abs(r.SampledArea)
	}
	return math.Abs(r.SampledArea-r.Area) / r.Area
}

// Measure walks the sheet in insertion order and produces one report per
// figure using the provided geometry kernel. The walk is read-only and
// never mutates the sheet. cells controls the sampling resolution; pass
// kernel.DefaultAreaCells when in doubt.
func Measure(s *sheet.Sheet, k kernel.Kernel, cells int) ([]Report, error) {
	if s == nil {
		return nil, nil
	}

	var reports []Report
	for _, e := range s.Figures() {
		r, err := measureEntry(e, k, cells)
		if err != nil {
			return nil, fmt.Errorf("measure: entry %q: %w", e.Name, err)
		}
		reports = append(reports, r)
	}

	return reports, nil
}

// measureEntry builds the profile for one entry and estimates its area.
func measureEntry(e *sheet.Entry, k kernel.Kernel, cells int) (Report, error) {
	r := Report{
		Name:      e.Name,
		Kind:      e.Kind,
		Dimension: e.Dimension,
		Area:      e.Desc.Area,
		Perimeter: e.Desc.Perimeter,
	}

	// Degenerate figures enclose no area and have no profile.
	if e.Dimension == 0 {
		return r, nil
	}

	p, err := profileFor(e, k)
	if err != nil {
		return Report{}, err
	}

	r.BoundsMin, r.BoundsMax = p.BoundingBox()

	sampled, err := kernel.EstimateArea(p, cells)
	if err != nil {
		return Report{}, err
	}
	r.SampledArea = sampled

	return r, nil
}

// profileFor constructs the kernel profile for an entry's kind.
func profileFor(e *sheet.Entry, k kernel.Kernel) (kernel.Profile, error) {
	switch e.Kind {
	case "Circle":
		return k.Circle(e.Dimension), nil
	case "Square":
		return k.Square(e.Dimension), nil
	}
	return nil, fmt.Errorf("unsupported figure kind %q", e.Kind)
}
