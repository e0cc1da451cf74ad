// Package sections models the length-wise subdivision of an assessment
// section into failure mechanism sections.
package sections

import (
	"fmt"
	"math"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/categories"
)

// ConsecutiveTolerance is the largest gap or overlap in meters allowed
// between two consecutive sections
const ConsecutiveTolerance = 0.01

// Section is the half-open interval [Start, End) in meters along the
// assessment section
type Section struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NewSection validates that the section has a finite, non-negative start and
// ends after it starts
func NewSection(start, end float64) (Section, error) {
	if math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(end) || math.IsInf(end, 0) ||
		start < 0 || end <= start {
		return Section{}, assemblyerr.New("section", assemblyerr.FailureMechanismSectionSectionStartEndInvalid)
	}
	return Section{Start: start, End: end}, nil
}

// Length returns End - Start
func (s Section) Length() float64 {
	return s.End - s.Start
}

// Center returns the midpoint of the section
func (s Section) Center() float64 {
	return (s.Start + s.End) / 2
}

// SameExtent reports whether both boundaries match within tol
func (s Section) SameExtent(o Section, tol float64) bool {
	return math.Abs(s.Start-o.Start) <= tol && math.Abs(s.End-o.End) <= tol
}

func (s Section) String() string {
	return fmt.Sprintf("[%.2f, %.2f)", s.Start, s.End)
}

// SectionWithCategory is a section carrying a result category
type SectionWithCategory struct {
	Section
	Category categories.SectionCategory `json:"category"`
}

// NewSectionWithCategory validates the extent and the category
func NewSectionWithCategory(start, end float64, category categories.SectionCategory) (SectionWithCategory, error) {
	s, err := NewSection(start, end)
	if err != nil {
		return SectionWithCategory{}, err
	}
	if !category.IsValid() {
		return SectionWithCategory{}, assemblyerr.New("category", assemblyerr.InvalidCategoryValue)
	}
	return SectionWithCategory{Section: s, Category: category}, nil
}
