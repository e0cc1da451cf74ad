package categories

import (
	"fmt"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/probability"
)

// Category is one probability band of a CategoriesList
type Category[T fmt.Stringer] struct {
	Label T                       `json:"category"`
	Lower probability.Probability `json:"lower_limit"`
	Upper probability.Probability `json:"upper_limit"`
}

// Contains reports whether p lies in [Lower, Upper]
func (c Category[T]) Contains(p probability.Probability) bool {
	return c.Lower.LessOrEqual(p) && p.LessOrEqual(c.Upper)
}

// CategoriesList is an immutable sequence of contiguous probability bands
// covering [0,1]
type CategoriesList[T fmt.Stringer] struct {
	categories []Category[T]
}

// NewCategoriesList validates the bands: the first starts at 0, the last ends
// at 1 and every band starts where the previous one ends. All violations are
// reported together.
func NewCategoriesList[T fmt.Stringer](cats []Category[T]) (*CategoriesList[T], error) {
	if len(cats) == 0 {
		return nil, assemblyerr.New("categories", assemblyerr.EmptyResultsList)
	}

	var errs error
	if !cats[0].Lower.IsNegligibleDifference(probability.Zero) {
		errs = assemblyerr.Append(errs, assemblyerr.New("categories", assemblyerr.InvalidCategoryLimits))
	}
	if !cats[len(cats)-1].Upper.IsNegligibleDifference(probability.One) {
		errs = assemblyerr.Append(errs, assemblyerr.New("categories", assemblyerr.InvalidCategoryLimits))
	}

	for i, c := range cats {
		field := fmt.Sprintf("categories[%d]", i)
		if !c.Lower.IsDefined() || !c.Upper.IsDefined() {
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.UndefinedProbability))
			continue
		}
		if c.Upper.Less(c.Lower) {
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.InvalidCategoryLimits))
		}
		if i > 0 && !c.Lower.IsNegligibleDifference(cats[i-1].Upper) {
			errs = assemblyerr.Append(errs, assemblyerr.New(field, assemblyerr.InvalidCategoryLimits))
		}
	}
	if errs != nil {
		return nil, errs
	}

	out := make([]Category[T], len(cats))
	copy(out, cats)
	return &CategoriesList[T]{categories: out}, nil
}

// Categories returns a copy of the bands in ascending order
func (l *CategoriesList[T]) Categories() []Category[T] {
	out := make([]Category[T], len(l.categories))
	copy(out, l.categories)
	return out
}

// Len returns the number of bands
func (l *CategoriesList[T]) Len() int {
	return len(l.categories)
}

// GetCategoryForProbability returns the band containing p. A probability on a
// boundary belongs to the band whose upper limit it equals.
func (l *CategoriesList[T]) GetCategoryForProbability(p probability.Probability) (Category[T], error) {
	if !p.IsDefined() {
		return Category[T]{}, assemblyerr.New("probability", assemblyerr.UndefinedProbability)
	}
	for _, c := range l.categories {
		if p.LessOrEqual(c.Upper) {
			return c, nil
		}
	}
	// p within rounding of 1 above the last upper limit
	return l.categories[len(l.categories)-1], nil
}
