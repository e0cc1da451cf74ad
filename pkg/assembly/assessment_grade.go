package assembly

import (
	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/categories"
	"github.com/chrissnell/assemblykernel/pkg/probability"
)

// AssessmentSectionCategories is the band table of the assessment grades
type AssessmentSectionCategories = categories.CategoriesList[categories.AssessmentGrade]

// CalculateAssessmentSectionFailureProbability combines the failure mechanism
// probabilities as independent events: 1 - prod(1 - p).
//
// With partialAssembly, undefined probabilities are left out and a set
// without any defined probability yields 0. Otherwise an empty set or an
// undefined probability is an error.
func CalculateAssessmentSectionFailureProbability(failureMechanismProbabilities []probability.Probability, partialAssembly bool) (probability.Probability, error) {
	if len(failureMechanismProbabilities) == 0 {
		if partialAssembly {
			return probability.Zero, nil
		}
		return probability.Probability{}, assemblyerr.New("failureMechanismProbabilities", assemblyerr.EmptyResultsList)
	}

	values, err := definedValues("failureMechanismProbabilities", failureMechanismProbabilities, 1, partialAssembly)
	if err != nil {
		return probability.Probability{}, err
	}
	if len(values) == 0 {
		return probability.Zero, nil
	}
	return probability.New(uncorrelatedUnion(values))
}

// DetermineAssessmentGradeFromProbability looks up the grade of p. An
// undefined probability is always an error, partial assembly or not.
func DetermineAssessmentGradeFromProbability(p probability.Probability, cats *AssessmentSectionCategories) (categories.AssessmentGrade, error) {
	if cats == nil {
		return 0, assemblyerr.New("categories", assemblyerr.ValueMayNotBeNull)
	}
	if !p.IsDefined() {
		return 0, assemblyerr.New("failureProbability", assemblyerr.UndefinedProbability)
	}
	c, err := cats.GetCategoryForProbability(p)
	if err != nil {
		return 0, err
	}
	return c.Label, nil
}

// AssembleAssessmentSection combines the failure mechanism probabilities and
// grades the result
func AssembleAssessmentSection(failureMechanismProbabilities []probability.Probability, cats *AssessmentSectionCategories, partialAssembly bool) (AssessmentSectionResult, error) {
	p, err := CalculateAssessmentSectionFailureProbability(failureMechanismProbabilities, partialAssembly)
	if err != nil {
		return AssessmentSectionResult{}, err
	}
	grade, err := DetermineAssessmentGradeFromProbability(p, cats)
	if err != nil {
		return AssessmentSectionResult{}, err
	}
	return AssessmentSectionResult{Probability: p, Grade: grade}, nil
}
