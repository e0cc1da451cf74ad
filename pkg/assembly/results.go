package assembly

import (
	"fmt"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/categories"
	"github.com/chrissnell/assemblykernel/pkg/probability"
)

// SectionResult is the translated result of one failure mechanism section
type SectionResult struct {
	Probability probability.Probability           `json:"probability"`
	Category    categories.InterpretationCategory `json:"category"`
}

// NewSectionResult checks that the probability fits the category: not
// relevant and not dominant sections have probability 0, dominant and
// no-result sections have no probability, band categories need one.
func NewSectionResult(p probability.Probability, category categories.InterpretationCategory) (SectionResult, error) {
	if err := checkProbabilityForCategory("probability", p, category); err != nil {
		return SectionResult{}, err
	}
	return SectionResult{Probability: p, Category: category}, nil
}

func checkProbabilityForCategory(field string, p probability.Probability, category categories.InterpretationCategory) error {
	switch {
	case category == categories.InterpretationNotRelevant, category == categories.InterpretationNotDominant:
		if !p.Equal(probability.Zero) {
			return assemblyerr.New(field, assemblyerr.NonMatchingProbabilityValue)
		}
	case category == categories.InterpretationDominant, category == categories.InterpretationNoResult:
		if p.IsDefined() {
			return assemblyerr.New(field, assemblyerr.NonMatchingProbabilityValue)
		}
	case category.IsProbabilistic():
		if !p.IsDefined() {
			return assemblyerr.New(field, assemblyerr.UndefinedProbability)
		}
	default:
		return assemblyerr.New("category", assemblyerr.InvalidCategoryValue)
	}
	return nil
}

func (r SectionResult) String() string {
	return fmt.Sprintf("%s (%s)", r.Category, r.Probability)
}

// SectionResultWithLengthEffect carries both the probability of a
// representative cross section (profile) and of the whole section
type SectionResultWithLengthEffect struct {
	ProfileProbability probability.Probability           `json:"profile_probability"`
	SectionProbability probability.Probability           `json:"section_probability"`
	Category           categories.InterpretationCategory `json:"category"`
}

// NewSectionResultWithLengthEffect validates both probabilities against the
// category and rejects a profile probability above the section probability
func NewSectionResultWithLengthEffect(profile, section probability.Probability, category categories.InterpretationCategory) (SectionResultWithLengthEffect, error) {
	if !category.IsValid() {
		return SectionResultWithLengthEffect{}, assemblyerr.New("category", assemblyerr.InvalidCategoryValue)
	}
	errs := assemblyerr.Combine(
		checkProbabilityForCategory("profileProbability", profile, category),
		checkProbabilityForCategory("sectionProbability", section, category),
	)
	if profile.Greater(section) {
		errs = assemblyerr.Append(errs, assemblyerr.New("profileProbability", assemblyerr.ProfileProbabilityHigherThanSectionProbability))
	}
	if errs != nil {
		return SectionResultWithLengthEffect{}, errs
	}
	return SectionResultWithLengthEffect{ProfileProbability: profile, SectionProbability: section, Category: category}, nil
}

// LengthEffectFactor returns section/profile; 1 when both are zero and NaN
// when either is undefined
func (r SectionResultWithLengthEffect) LengthEffectFactor() float64 {
	if r.ProfileProbability.Equal(probability.Zero) && r.SectionProbability.Equal(probability.Zero) {
		return 1
	}
	return r.SectionProbability.Div(r.ProfileProbability)
}

// SectionResult drops the profile probability
func (r SectionResultWithLengthEffect) SectionResult() SectionResult {
	return SectionResult{Probability: r.SectionProbability, Category: r.Category}
}

// Method records which combination assumption produced a failure mechanism
// probability
type Method int

const (
	MethodCorrelated Method = iota + 1
	MethodUncorrelated
)

func (m Method) String() string {
	switch m {
	case MethodCorrelated:
		return "Correlated"
	case MethodUncorrelated:
		return "Uncorrelated"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// FailureMechanismResult is the assembled probability of one failure mechanism
type FailureMechanismResult struct {
	Probability probability.Probability `json:"probability"`
	Method      Method                  `json:"method"`
}

// AssessmentSectionResult is the assembled probability and grade of the
// assessment section
type AssessmentSectionResult struct {
	Probability probability.Probability    `json:"probability"`
	Grade       categories.AssessmentGrade `json:"grade"`
}
