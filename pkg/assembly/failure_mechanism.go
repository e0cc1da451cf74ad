package assembly

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/categories"
	"github.com/chrissnell/assemblykernel/pkg/probability"
)

// CalculateFailureMechanismFailureProbability combines the section
// probabilities of one failure mechanism. Two estimates are made: correlated
// (the largest section probability times the length effect factor) and
// uncorrelated (1 - prod(1 - p)). The smaller one is the result.
//
// With partialAssembly, undefined section probabilities are left out and a
// mechanism without any defined probability yields 0. Otherwise an undefined
// probability is an error.
func CalculateFailureMechanismFailureProbability(lengthEffectFactor float64, sectionProbabilities []probability.Probability, partialAssembly bool) (FailureMechanismResult, error) {
	values, err := definedValues("sectionProbabilities", sectionProbabilities, lengthEffectFactor, partialAssembly)
	if err != nil {
		return FailureMechanismResult{}, err
	}
	if len(values) == 0 {
		return FailureMechanismResult{Probability: probability.Zero, Method: MethodCorrelated}, nil
	}
	return combineSections(floats.Max(values), values, lengthEffectFactor)
}

// CalculateFailureMechanismFailureProbabilityWithLengthEffect combines
// section results that carry a profile probability. The correlated estimate
// uses the largest profile probability times the length effect factor, the
// uncorrelated estimate the section probabilities.
func CalculateFailureMechanismFailureProbabilityWithLengthEffect(lengthEffectFactor float64, results []SectionResultWithLengthEffect, partialAssembly bool) (FailureMechanismResult, error) {
	if err := validateLengthEffectFactor(lengthEffectFactor); err != nil {
		return FailureMechanismResult{}, err
	}
	if len(results) == 0 {
		return FailureMechanismResult{}, assemblyerr.New("results", assemblyerr.EmptyResultsList)
	}

	var errs error
	profiles := make([]float64, 0, len(results))
	sections := make([]float64, 0, len(results))
	for i, r := range results {
		if !r.ProfileProbability.IsDefined() || !r.SectionProbability.IsDefined() {
			if !partialAssembly {
				errs = assemblyerr.Append(errs, assemblyerr.New(fmt.Sprintf("results[%d]", i), assemblyerr.UndefinedProbability))
			}
			continue
		}
		profiles = append(profiles, r.ProfileProbability.Value())
		sections = append(sections, r.SectionProbability.Value())
	}
	if errs != nil {
		return FailureMechanismResult{}, errs
	}
	if len(sections) == 0 {
		return FailureMechanismResult{Probability: probability.Zero, Method: MethodCorrelated}, nil
	}
	return combineSections(floats.Max(profiles), sections, lengthEffectFactor)
}

// DetermineFailureMechanismCategory returns the failure mechanism category
// matching the worst direct section category. With partialAssembly, sections
// without a result are ignored.
func DetermineFailureMechanismCategory(sectionCategories []categories.DirectCategory, partialAssembly bool) (categories.FailureMechanismCategory, error) {
	if len(sectionCategories) == 0 {
		return 0, assemblyerr.New("sectionCategories", assemblyerr.EmptyResultsList)
	}

	worst := categories.DirectNotApplicable
	var errs error
	for i, c := range sectionCategories {
		if !c.IsValid() {
			errs = assemblyerr.Append(errs, assemblyerr.New(fmt.Sprintf("sectionCategories[%d]", i), assemblyerr.InvalidCategoryValue))
			continue
		}
		if partialAssembly && c == categories.DirectNoResult {
			continue
		}
		if c.Rank() > worst.Rank() {
			worst = c
		}
	}
	if errs != nil {
		return 0, errs
	}

	m, _ := worst.ToFailureMechanismCategory()
	return m, nil
}

// definedValues validates the shared inputs and returns the defined values
func definedValues(field string, ps []probability.Probability, lengthEffectFactor float64, partialAssembly bool) ([]float64, error) {
	var errs error
	if err := validateLengthEffectFactor(lengthEffectFactor); err != nil {
		errs = assemblyerr.Append(errs, err)
	}
	if len(ps) == 0 {
		errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.EmptyResultsList))
	}

	values := make([]float64, 0, len(ps))
	for i, p := range ps {
		if !p.IsDefined() {
			if !partialAssembly {
				errs = assemblyerr.Append(errs, assemblyerr.New(fmt.Sprintf("%s[%d]", field, i), assemblyerr.UndefinedProbability))
			}
			continue
		}
		values = append(values, p.Value())
	}
	if errs != nil {
		return nil, errs
	}
	return values, nil
}

func combineSections(maxProbability float64, sectionValues []float64, lengthEffectFactor float64) (FailureMechanismResult, error) {
	correlated := maxProbability * lengthEffectFactor
	uncorrelated := uncorrelatedUnion(sectionValues)

	if len(sectionValues) < 2 || correlated > uncorrelated {
		p, err := probability.New(uncorrelated)
		return FailureMechanismResult{Probability: p, Method: MethodUncorrelated}, err
	}
	p, err := probability.New(correlated)
	return FailureMechanismResult{Probability: p, Method: MethodCorrelated}, err
}

// uncorrelatedUnion returns 1 - prod(1 - p) evaluated in log space so that
// very small probabilities keep their precision
func uncorrelatedUnion(values []float64) float64 {
	logs := make([]float64, len(values))
	for i, v := range values {
		logs[i] = math.Log1p(-v)
	}
	return math.Min(1, math.Max(0, -math.Expm1(floats.Sum(logs))))
}
