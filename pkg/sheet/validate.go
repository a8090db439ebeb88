package sheet

import (
	"fmt"
	"math"
)

// measureTolerance is the relative tolerance for derived-measure checks.
const measureTolerance = 1e-9

// Severity indicates whether a validation finding blocks use of the sheet
// or is merely informational.
type Severity int

const (
	SeverityError   Severity = iota // blocks use
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	EntryID  EntryID  // which entry has the problem (zero if sheet-level)
	Message  string   // human-readable description
	Severity Severity // error or warning
}

func (e ValidationError) Error() string {
	if e.EntryID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] entry %s: %s", e.Severity, e.EntryID.Short(), e.Message)
}

// Result bundles blocking errors and advisory warnings.
type Result struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether validation produced no blocking errors.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Validate runs all checks on a sheet and returns the findings separated
// by severity. It is read-only and never mutates the sheet.
func Validate(s *Sheet) Result {
	var findings []ValidationError
	findings = append(findings, validateOrder(s)...)
	findings = append(findings, validateNames(s)...)
	findings = append(findings, validateMeasures(s)...)

	var result Result
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, f)
		} else {
			result.Errors = append(result.Errors, f)
		}
	}
	return result
}

// validateOrder checks that every ID in the insertion order resolves to an
// entry and that no ID appears twice.
func validateOrder(s *Sheet) []ValidationError {
	var errs []ValidationError
	seen := make(map[EntryID]bool, len(s.Order))

	for _, id := range s.Order {
		if seen[id] {
			errs = append(errs, ValidationError{
				EntryID:  id,
				Message:  "entry appears twice in the sheet order",
				Severity: SeverityError,
			})
			continue
		}
		seen[id] = true
		if _, ok := s.Entries[id]; !ok {
			errs = append(errs, ValidationError{
				EntryID:  id,
				Message:  "ordered reference does not resolve to an entry",
				Severity: SeverityError,
			})
		}
	}

	// Entries missing from the order are unreachable by Figures().
	for id := range s.Entries {
		if !seen[id] {
			errs = append(errs, ValidationError{
				EntryID:  id,
				Message:  "entry is not present in the sheet order (orphan)",
				Severity: SeverityWarning,
			})
		}
	}

	return errs
}

// validateNames checks that the name index is injective and that every
// index entry points to an existing entry.
func validateNames(s *Sheet) []ValidationError {
	var errs []ValidationError

	for name, id := range s.NameIndex {
		if _, ok := s.Entries[id]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent entry %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}

	nameToEntries := make(map[string][]EntryID)
	for id, e := range s.Entries {
		if e.Name != "" {
			nameToEntries[e.Name] = append(nameToEntries[e.Name], id)
		}
	}
	for name, ids := range nameToEntries {
		if len(ids) > 1 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("duplicate name %q assigned to %d entries", name, len(ids)),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateMeasures checks that every entry's derived measures are finite,
// non-negative, and consistent with the formulas for its kind. The
// isoperimetric check is advisory only.
func validateMeasures(s *Sheet) []ValidationError {
	var errs []ValidationError

	for id, e := range s.Entries {
		area := e.Desc.Area
		perim := e.Desc.Perimeter

		if math.IsNaN(area) || math.IsInf(area, 0) || math.IsNaN(perim) || math.IsInf(perim, 0) {
			errs = append(errs, ValidationError{
				EntryID:  id,
				Message:  fmt.Sprintf("non-finite measures (area=%v, perimeter=%v)", area, perim),
				Severity: SeverityError,
			})
			continue
		}
		if area < 0 || perim < 0 {
			errs = append(errs, ValidationError{
				EntryID:  id,
				Message:  fmt.Sprintf("negative measures (area=%v, perimeter=%v)", area, perim),
				Severity: SeverityError,
			})
			continue
		}

		wantArea, wantPerim, known := expectedMeasures(e.Kind, e.Dimension)
		if !known {
			errs = append(errs, ValidationError{
				EntryID:  id,
				Message:  fmt.Sprintf("unknown figure kind %q", e.Kind),
				Severity: SeverityError,
			})
			continue
		}
		if !within(area, wantArea) || !within(perim, wantPerim) {
			errs = append(errs, ValidationError{
				EntryID: id,
				Message: fmt.Sprintf("measures disagree with %s formulas for dimension %v (area=%v want %v, perimeter=%v want %v)",
					e.Kind, e.Dimension, area, wantArea, perim, wantPerim),
				Severity: SeverityError,
			})
		}

		// No plane figure encloses more area than a circle of the same
		// perimeter, so P^2 must be at least 4*pi*A.
		if perim*perim < 4*math.Pi*area*(1-measureTolerance) {
			errs = append(errs, ValidationError{
				EntryID:  id,
				Message:  fmt.Sprintf("isoperimetric check failed (perimeter=%v, area=%v)", perim, area),
				Severity: SeverityWarning,
			})
		}
	}

	return errs
}

// expectedMeasures computes the reference area and perimeter for a kind
// and dimension. The third return is false for unknown kinds.
func expectedMeasures(kind string, dim float64) (area, perimeter float64, known bool) {
	switch kind {
	case "Circle":
		r := dim / 2
		return math.Pi * r * r, 2 * math.Pi * r, true
	case "Square":
		return dim * dim, 4 * dim, true
	}
	return 0, 0, false
}

// within reports whether got agrees with want to within the relative
// measure tolerance.
func within(got, want float64) bool {
	if got == want {
		return true
	}
	scale := math.Max(math.Abs(got), math.Abs(want))
	return math.Abs(got-want) <= measureTolerance*scale
}
