package assembly

import (
	"fmt"
	"math"
	"sort"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/categories"
	"github.com/chrissnell/assemblykernel/pkg/sections"
)

const (
	// sliverLength is the shortest common section kept; shorter intervals
	// come from rounding in section boundaries and merge into the previous one
	sliverLength = 1e-4
	// sectionMatchTolerance is the allowed difference between boundaries that
	// are supposed to be identical
	sectionMatchTolerance = 1e-8
	// CommonSectionsName labels the merged partition
	CommonSectionsName = "common"
)

// FindGreatestCommonDenominatorSections merges the section boundaries of all
// failure mechanisms into one partition that is valid for every mechanism.
// Each mechanism must cover the assessment section length within 0.01 m.
func FindGreatestCommonDenominatorSections(lists []*sections.List, assessmentSectionLength float64) (*sections.List, error) {
	var errs error
	if math.IsNaN(assessmentSectionLength) || math.IsInf(assessmentSectionLength, 0) || assessmentSectionLength <= 0 {
		errs = assemblyerr.Append(errs, assemblyerr.New("assessmentSectionLength", assemblyerr.SectionLengthOutOfRange))
	}
	if len(lists) == 0 {
		errs = assemblyerr.Append(errs, assemblyerr.New("failureMechanismSectionLists", assemblyerr.EmptyResultsList))
	}
	for i, l := range lists {
		field := fmt.Sprintf("failureMechanismSectionLists[%d]", i)
		if l == nil {
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.ValueMayNotBeNull))
			continue
		}
		if math.Abs(l.TotalLength()-assessmentSectionLength) > sections.ConsecutiveTolerance {
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.FailureMechanismSectionLengthInvalid))
		}
	}
	if errs != nil {
		return nil, errs
	}

	seen := make(map[float64]struct{})
	var limits []float64
	for _, l := range lists {
		for _, s := range l.Sections() {
			if _, ok := seen[s.End]; ok {
				continue
			}
			seen[s.End] = struct{}{}
			limits = append(limits, s.End)
		}
	}
	sort.Float64s(limits)

	common := make([]sections.Section, 0, len(limits))
	previousEnd := 0.0
	for _, limit := range limits {
		if limit-previousEnd < sliverLength {
			if n := len(common); n > 0 {
				common[n-1].End = limit
				previousEnd = limit
			}
			continue
		}
		common = append(common, sections.Section{Start: previousEnd, End: limit})
		previousEnd = limit
	}

	return sections.NewList(CommonSectionsName, common)
}

// TranslateFailureMechanismResultsToCommonSections assigns to each common
// section the category of the failure mechanism section containing its
// center point.
func TranslateFailureMechanismResultsToCommonSections(failureMechanismSections *sections.List, commonSections *sections.List) (*sections.List, error) {
	var errs error
	if failureMechanismSections == nil {
		errs = assemblyerr.Append(errs, assemblyerr.New("failureMechanismSections", assemblyerr.ValueMayNotBeNull))
	}
	if commonSections == nil {
		errs = assemblyerr.Append(errs, assemblyerr.New("commonSections", assemblyerr.ValueMayNotBeNull))
	}
	if errs != nil {
		return nil, errs
	}

	if math.Abs(failureMechanismSections.TotalLength()-commonSections.TotalLength()) > sectionMatchTolerance {
		errs = assemblyerr.Append(errs, assemblyerr.New("commonSections", assemblyerr.CommonSectionsInvalid))
	}
	source, err := failureMechanismSections.SectionsWithCategory()
	if err != nil {
		errs = assemblyerr.Append(errs, assemblyerr.New("failureMechanismSections", assemblyerr.SectionsWithoutCategory))
	}
	if errs != nil {
		return nil, errs
	}

	targets := commonSections.Sections()
	translated := make([]sections.SectionWithCategory, 0, len(targets))
	for _, target := range targets {
		center := target.Center()
		var match *sections.SectionWithCategory
		for i := range source {
			if source[i].End >= center {
				match = &source[i]
				break
			}
		}
		if match == nil {
			return nil, assemblyerr.New("commonSections", assemblyerr.CommonSectionsInvalid)
		}
		translated = append(translated, sections.SectionWithCategory{Section: target, Category: match.Category})
	}

	return sections.NewListWithCategories(failureMechanismSections.Name(), translated)
}

// DetermineCombinedResultPerCommonSection combines, per common section, the
// categories of all failure mechanisms; the worst category wins. All lists
// must share the same common sections.
//
// Without partial assembly a dominant or no-result section makes the
// combined section no-result and stops the scan for that section. With partialAssembly,
// interpretation sections that are dominant or no-result (and direct or
// indirect no-result sections) are skipped.
func DetermineCombinedResultPerCommonSection(results []*sections.List, partialAssembly bool) (*sections.List, error) {
	if len(results) == 0 {
		return nil, assemblyerr.New("failureMechanismResults", assemblyerr.EmptyResultsList)
	}

	var errs error
	perMechanism := make([][]sections.SectionWithCategory, len(results))
	for i, l := range results {
		field := fmt.Sprintf("failureMechanismResults[%d]", i)
		if l == nil {
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.ValueMayNotBeNull))
			continue
		}
		secs, err := l.SectionsWithCategory()
		if err != nil {
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.SectionsWithoutCategory))
			continue
		}
		perMechanism[i] = secs
	}
	if errs != nil {
		return nil, errs
	}

	first := perMechanism[0]
	kind := results[0].Kind()
	for i, secs := range perMechanism[1:] {
		field := fmt.Sprintf("failureMechanismResults[%d]", i+1)
		if len(secs) != len(first) {
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.UnequalCommonFailureMechanismSectionLists))
		}
		if results[i+1].Kind() != kind {
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.InputNotTheSameType))
		}
	}
	if errs != nil {
		return nil, errs
	}

	combined := make([]sections.SectionWithCategory, len(first))
	for iSection, reference := range first {
		current := sections.SectionWithCategory{Section: reference.Section, Category: categories.Best(kind)}
		for _, secs := range perMechanism {
			section := secs[iSection]
			if !section.SameExtent(current.Section, sectionMatchTolerance) {
				return nil, assemblyerr.New("failureMechanismResults", assemblyerr.CommonFailureMechanismSectionsDoNotHaveEqualStartsOrEnds)
			}
			if section.Category.IsSkippableInPartialAssembly() {
				if partialAssembly {
					continue
				}
				current.Category = categories.Worst(kind)
				break
			}
			current.Category = current.Category.Worse(section.Category)
		}
		combined[iSection] = current
	}

	return sections.NewListWithCategories(CommonSectionsName, combined)
}

// CommonSectionsResult holds every stage of the common section assembly
type CommonSectionsResult struct {
	CommonSections *sections.List
	PerMechanism   []*sections.List
	Combined       *sections.List
}

// AssembleCommonFailureMechanismSections runs the three common section
// stages in order: find the common partition, translate every mechanism onto
// it and combine the results per common section.
func AssembleCommonFailureMechanismSections(lists []*sections.List, assessmentSectionLength float64, partialAssembly bool) (*CommonSectionsResult, error) {
	common, err := FindGreatestCommonDenominatorSections(lists, assessmentSectionLength)
	if err != nil {
		return nil, err
	}

	var errs error
	perMechanism := make([]*sections.List, len(lists))
	for i, l := range lists {
		translated, err := TranslateFailureMechanismResultsToCommonSections(l, common)
		if err != nil {
			errs = assemblyerr.Append(errs, err)
			continue
		}
		perMechanism[i] = translated
	}
	if errs != nil {
		return nil, errs
	}

	combined, err := DetermineCombinedResultPerCommonSection(perMechanism, partialAssembly)
	if err != nil {
		return nil, err
	}
	return &CommonSectionsResult{CommonSections: common, PerMechanism: perMechanism, Combined: combined}, nil
}
