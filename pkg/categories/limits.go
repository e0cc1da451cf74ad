package categories

import (
	"fmt"
	"math"
	"strings"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/probability"
)

// InterpretationScheme selects the band layout of the interpretation categories
type InterpretationScheme int

const (
	// SchemeSevenBands ends the -III band at 1
	SchemeSevenBands InterpretationScheme = iota
	// SchemeEightBands splits the top of the scale at ten times the lower
	// limit into -III and -IV
	SchemeEightBands
)

func (s InterpretationScheme) String() string {
	switch s {
	case SchemeSevenBands:
		return "seven-bands"
	case SchemeEightBands:
		return "eight-bands"
	}
	return fmt.Sprintf("InterpretationScheme(%d)", int(s))
}

// ParseInterpretationScheme accepts "seven-bands"/"7" and "eight-bands"/"8".
// An empty string selects the seven band scheme.
func ParseInterpretationScheme(s string) (InterpretationScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "7", "seven-bands":
		return SchemeSevenBands, nil
	case "8", "eight-bands":
		return SchemeEightBands, nil
	}
	return 0, fmt.Errorf("unknown interpretation scheme %q", s)
}

// band is a category label with its upper limit as a plain number
type band[T fmt.Stringer] struct {
	label T
	upper float64
}

// CalculateAssessmentSectionCategoryLimits derives the assessment grade bands
// from the signalling and lower limit norms:
//
//	A+  [0, s/30]
//	A   [s/30, s]
//	B   [s, l]
//	C   [l, min(30l, 1)]
//	D   [min(30l, 1), 1]
func CalculateAssessmentSectionCategoryLimits(signalling, lower probability.Probability) (*CategoriesList[AssessmentGrade], error) {
	if err := validateNorms(signalling, lower); err != nil {
		return nil, err
	}
	s, l := signalling.Value(), lower.Value()

	return buildList([]band[AssessmentGrade]{
		{GradeAPlus, s / 30},
		{GradeA, s},
		{GradeB, l},
		{GradeC, l * 30},
		{GradeD, 1},
	})
}

// CalculateInterpretationCategoryLimits derives the interpretation category
// bands from the signalling and lower limit norms:
//
//	+III [0, s/30]
//	+II  [s/30, s/10]
//	+I   [s/10, s/3]
//	0    [s/3, s]
//	-I   [s, l]
//	-II  [l, min(3l, 1)]
//	-III [min(3l, 1), 1]           seven band scheme
//	-III [min(3l, 1), min(10l, 1)] eight band scheme
//	-IV  [min(10l, 1), 1]          eight band scheme
func CalculateInterpretationCategoryLimits(signalling, lower probability.Probability, scheme InterpretationScheme) (*CategoriesList[InterpretationCategory], error) {
	if err := validateNorms(signalling, lower); err != nil {
		return nil, err
	}
	s, l := signalling.Value(), lower.Value()

	bands := []band[InterpretationCategory]{
		{InterpretationIIIPlus, s / 30},
		{InterpretationIIPlus, s / 10},
		{InterpretationIPlus, s / 3},
		{InterpretationZero, s},
		{InterpretationIMin, l},
		{InterpretationIIMin, l * 3},
	}
	switch scheme {
	case SchemeSevenBands:
		bands = append(bands, band[InterpretationCategory]{InterpretationIIIMin, 1})
	case SchemeEightBands:
		bands = append(bands,
			band[InterpretationCategory]{InterpretationIIIMin, l * 10},
			band[InterpretationCategory]{InterpretationIVMin, 1})
	default:
		return nil, assemblyerr.New("scheme", assemblyerr.InvalidEnumValue)
	}
	return buildList(bands)
}

func validateNorms(signalling, lower probability.Probability) error {
	var errs error
	if !signalling.IsDefined() {
		errs = assemblyerr.Append(errs, assemblyerr.New("signallingLimit", assemblyerr.UndefinedProbability))
	}
	if !lower.IsDefined() {
		errs = assemblyerr.Append(errs, assemblyerr.New("lowerLimit", assemblyerr.UndefinedProbability))
	}
	if errs != nil {
		return errs
	}
	if signalling.Greater(lower) {
		return assemblyerr.New("signallingLimit", assemblyerr.SignallingLimitAboveLowerLimit)
	}
	return nil
}

// buildList turns ascending upper limits into contiguous categories. Limits
// above 1 are capped; bands left without width are omitted, except that the
// last band always closes the list at 1.
func buildList[T fmt.Stringer](bands []band[T]) (*CategoriesList[T], error) {
	cats := make([]Category[T], 0, len(bands))
	lowerLimit := 0.0
	for i, b := range bands {
		upper := math.Min(b.upper, 1)
		last := i == len(bands)-1
		if upper <= lowerLimit && !(last && len(cats) == 0) {
			continue
		}
		lo, err := probability.New(lowerLimit)
		if err != nil {
			return nil, err
		}
		up, err := probability.New(upper)
		if err != nil {
			return nil, err
		}
		cats = append(cats, Category[T]{Label: b.label, Lower: lo, Upper: up})
		lowerLimit = upper
	}
	return NewCategoriesList(cats)
}
