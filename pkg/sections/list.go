package sections

import (
	"fmt"
	"math"
	"sort"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/categories"
)

// List is the validated, immutable subdivision of one failure mechanism (or
// of the common partition) into consecutive sections starting at 0. Either
// every section carries a category, all of the same kind, or none does.
type List struct {
	name         string
	sections     []SectionWithCategory
	withCategory bool
}

// NewList creates a list of sections without categories. The input may be
// unsorted; it is ordered by start.
func NewList(name string, secs []Section) (*List, error) {
	wrapped := make([]SectionWithCategory, len(secs))
	for i, s := range secs {
		wrapped[i] = SectionWithCategory{Section: s}
	}
	return newList(name, wrapped, false)
}

// NewListWithCategories creates a list of categorized sections
func NewListWithCategories(name string, secs []SectionWithCategory) (*List, error) {
	return newList(name, secs, true)
}

func newList(name string, secs []SectionWithCategory, withCategory bool) (*List, error) {
	if len(secs) == 0 {
		return nil, assemblyerr.New("sections", assemblyerr.EmptyResultsList)
	}

	sorted := make([]SectionWithCategory, len(secs))
	copy(sorted, secs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var errs error
	if math.Abs(sorted[0].Start) > ConsecutiveTolerance {
		errs = assemblyerr.Append(errs, assemblyerr.New("sections[0]", assemblyerr.FailureMechanismSectionSectionStartEndInvalid))
	}

	var kind categories.Kind
	for i, s := range sorted {
		field := fmt.Sprintf("sections[%d]", i)
		if _, err := NewSection(s.Start, s.End); err != nil {
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.FailureMechanismSectionSectionStartEndInvalid))
		}
		if i > 0 && math.Abs(s.Start-sorted[i-1].End) > ConsecutiveTolerance {
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.FailureMechanismSectionsNotConsecutive))
		}

		if !withCategory {
			continue
		}
		switch {
		case s.Category.IsZero():
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.SectionsWithoutCategory))
		case !s.Category.IsValid():
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.InvalidCategoryValue))
		case kind == 0:
			kind = s.Category.Kind()
		case s.Category.Kind() != kind:
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.InputNotTheSameType))
		}
	}
	if errs != nil {
		return nil, errs
	}

	return &List{name: name, sections: sorted, withCategory: withCategory}, nil
}

// Name identifies the failure mechanism the list belongs to
func (l *List) Name() string {
	return l.name
}

// Len returns the number of sections
func (l *List) Len() int {
	return len(l.sections)
}

// HasCategories reports whether the sections carry categories
func (l *List) HasCategories() bool {
	return l.withCategory
}

// Kind returns the category kind of the sections, 0 without categories
func (l *List) Kind() categories.Kind {
	if !l.withCategory {
		return 0
	}
	return l.sections[0].Category.Kind()
}

// TotalLength returns the end of the last section
func (l *List) TotalLength() float64 {
	return l.sections[len(l.sections)-1].End
}

// Sections returns a copy of the section extents
func (l *List) Sections() []Section {
	out := make([]Section, len(l.sections))
	for i, s := range l.sections {
		out[i] = s.Section
	}
	return out
}

// SectionsWithCategory returns a copy of the categorized sections
func (l *List) SectionsWithCategory() ([]SectionWithCategory, error) {
	if !l.withCategory {
		return nil, assemblyerr.New(l.name, assemblyerr.SectionsWithoutCategory)
	}
	out := make([]SectionWithCategory, len(l.sections))
	copy(out, l.sections)
	return out, nil
}

// SectionAt returns the section containing the given position along the
// assessment section; the last section also contains its end point
func (l *List) SectionAt(position float64) (SectionWithCategory, bool) {
	for i, s := range l.sections {
		if position >= s.Start && (position < s.End || i == len(l.sections)-1 && position <= s.End) {
			return s, true
		}
	}
	return SectionWithCategory{}, false
}
