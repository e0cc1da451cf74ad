package assembly

import (
	"math"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/categories"
	"github.com/chrissnell/assemblykernel/pkg/probability"
)

// InterpretationCategories is the band table used to classify section probabilities
type InterpretationCategories = categories.CategoriesList[categories.InterpretationCategory]

// TranslateAssessmentResult turns the raw assessment inputs of one section
// into a probability and an interpretation category. When a probability was
// estimated, the refined probability is representative if the refinement was
// performed and the initial mechanism probability otherwise.
func TranslateAssessmentResult(
	relevance Relevance,
	initialSectionProbability probability.Probability,
	refinement RefinementStatus,
	refinedSectionProbability probability.Probability,
	cats *InterpretationCategories,
) (SectionResult, error) {
	state, err := DetermineAnalysisState(relevance, refinement)
	if err != nil {
		return SectionResult{}, err
	}

	if state != StateProbabilityEstimated {
		category, err := DetermineInterpretationCategoryWithoutProbabilityEstimation(state)
		if err != nil {
			return SectionResult{}, err
		}
		p, err := TranslateInterpretationCategoryToProbability(category)
		if err != nil {
			return SectionResult{}, err
		}
		return NewSectionResult(p, category)
	}

	if cats == nil {
		return SectionResult{}, assemblyerr.New("categories", assemblyerr.ValueMayNotBeNull)
	}

	p := initialSectionProbability
	if refinement == RefinementPerformed {
		p = refinedSectionProbability
	}
	if !p.IsDefined() {
		return NewSectionResult(probability.Undefined(), categories.InterpretationNoResult)
	}

	category, err := DetermineInterpretationCategoryFromProbability(p, cats)
	if err != nil {
		return SectionResult{}, err
	}
	return NewSectionResult(p, category)
}

// TranslateAssessmentResultWithLengthEffect is TranslateAssessmentResult for
// mechanisms with a length effect. It carries both the profile and the
// section probability; the category follows from the section probability.
func TranslateAssessmentResultWithLengthEffect(
	relevance Relevance,
	initialProfileProbability probability.Probability,
	initialSectionProbability probability.Probability,
	refinement RefinementStatus,
	refinedProfileProbability probability.Probability,
	refinedSectionProbability probability.Probability,
	cats *InterpretationCategories,
) (SectionResultWithLengthEffect, error) {
	state, err := DetermineAnalysisState(relevance, refinement)
	if err != nil {
		return SectionResultWithLengthEffect{}, err
	}

	if state != StateProbabilityEstimated {
		category, err := DetermineInterpretationCategoryWithoutProbabilityEstimation(state)
		if err != nil {
			return SectionResultWithLengthEffect{}, err
		}
		p, err := TranslateInterpretationCategoryToProbability(category)
		if err != nil {
			return SectionResultWithLengthEffect{}, err
		}
		return NewSectionResultWithLengthEffect(p, p, category)
	}

	if cats == nil {
		return SectionResultWithLengthEffect{}, assemblyerr.New("categories", assemblyerr.ValueMayNotBeNull)
	}

	profile, section := initialProfileProbability, initialSectionProbability
	if refinement == RefinementPerformed {
		profile, section = refinedProfileProbability, refinedSectionProbability
	}
	if !profile.IsDefined() || !section.IsDefined() {
		u := probability.Undefined()
		return NewSectionResultWithLengthEffect(u, u, categories.InterpretationNoResult)
	}

	category, err := DetermineInterpretationCategoryFromProbability(section, cats)
	if err != nil {
		return SectionResultWithLengthEffect{}, err
	}
	return NewSectionResultWithLengthEffect(profile, section, category)
}

// DetermineInterpretationCategoryFromProbability looks up the band containing p
func DetermineInterpretationCategoryFromProbability(p probability.Probability, cats *InterpretationCategories) (categories.InterpretationCategory, error) {
	if cats == nil {
		return 0, assemblyerr.New("categories", assemblyerr.ValueMayNotBeNull)
	}
	c, err := cats.GetCategoryForProbability(p)
	if err != nil {
		return 0, err
	}
	return c.Label, nil
}

// DetermineInterpretationCategoryWithoutProbabilityEstimation returns the
// category of a section for which no probability is estimated
func DetermineInterpretationCategoryWithoutProbabilityEstimation(state AnalysisState) (categories.InterpretationCategory, error) {
	switch state {
	case StateNotRelevant:
		return categories.InterpretationNotRelevant, nil
	case StateNoProbabilityEstimationNecessary:
		return categories.InterpretationNotDominant, nil
	case StateProbabilityEstimationNecessary:
		return categories.InterpretationDominant, nil
	}
	return 0, assemblyerr.New("analysisState", assemblyerr.InvalidEnumValue)
}

// TranslateInterpretationCategoryToProbability returns the probability that
// belongs to a category without a probability band
func TranslateInterpretationCategoryToProbability(category categories.InterpretationCategory) (probability.Probability, error) {
	switch category {
	case categories.InterpretationNotRelevant, categories.InterpretationNotDominant:
		return probability.Zero, nil
	case categories.InterpretationDominant, categories.InterpretationNoResult:
		return probability.Undefined(), nil
	}
	return probability.Probability{}, assemblyerr.New("category", assemblyerr.InvalidCategoryValue)
}

// CalculateSectionProbabilityFromProfileProbability returns min(p*N, 1)
func CalculateSectionProbabilityFromProfileProbability(profile probability.Probability, lengthEffectFactor float64) (probability.Probability, error) {
	if err := validateLengthEffectFactor(lengthEffectFactor); err != nil {
		return probability.Probability{}, err
	}
	if !profile.IsDefined() {
		return probability.Probability{}, assemblyerr.New("profileProbability", assemblyerr.UndefinedProbability)
	}
	return profile.MulFactor(lengthEffectFactor), nil
}

// CalculateProfileProbabilityFromSectionProbability returns p/N
func CalculateProfileProbabilityFromSectionProbability(section probability.Probability, lengthEffectFactor float64) (probability.Probability, error) {
	if err := validateLengthEffectFactor(lengthEffectFactor); err != nil {
		return probability.Probability{}, err
	}
	if !section.IsDefined() {
		return probability.Probability{}, assemblyerr.New("sectionProbability", assemblyerr.UndefinedProbability)
	}
	return section.DivFactor(lengthEffectFactor), nil
}

func validateLengthEffectFactor(n float64) error {
	if math.IsNaN(n) || n < 1 {
		return assemblyerr.New("lengthEffectFactor", assemblyerr.LengthEffectFactorOutOfRange)
	}
	return nil
}
