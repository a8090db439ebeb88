package kernel

import "fmt"

// DefaultAreaCells is the default grid resolution for area estimation.
const DefaultAreaCells = 400

// EstimateArea numerically estimates the enclosed area of a profile by
// sampling its signed distance field on a uniform cells-by-cells grid over
// the bounding box. Samples are taken at cell centers; a cell counts
// toward the area when its center is inside the profile.
//
// The estimate converges to the true area as cells grows. It is backend
// independent; only Profile.Evaluate and Profile.BoundingBox are used.
func EstimateArea(p Profile, cells int) (float64, error) {
	if p == nil {
		return 0, fmt.Errorf("estimate area: nil profile")
	}
	if cells <= 0 {
		return 0, fmt.Errorf("estimate area: cells must be positive, got %d", cells)
	}

	min, max := p.BoundingBox()
	width := max[0] - min[0]
	height := max[1] - min[1]
	if width <= 0 || height <= 0 {
		// Degenerate profile encloses no area.
		return 0, nil
	}

	dx := width / float64(cells)
	dy := height / float64(cells)
	cellArea := dx * dy

	inside := 0
	for iy := 0; iy < cells; iy++ {
		y := min[1] + (float64(iy)+0.5)*dy
		for ix := 0; ix < cells; ix++ {
			x := min[0] + (float64(ix)+0.5)*dx
			if p.Evaluate(x, y) <= 0 {
				inside++
			}
		}
	}

	return float64(inside) * cellArea, nil
}
