package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/probability"
)

func TestCalculateAssessmentSectionCategoryLimits(t *testing.T) {
	signalling := probability.MustNew(1.0 / 3000)
	lower := probability.MustNew(1.0 / 1000)

	list, err := CalculateAssessmentSectionCategoryLimits(signalling, lower)
	require.NoError(t, err)

	expected := []struct {
		grade        AssessmentGrade
		lower, upper float64
	}{
		{GradeAPlus, 0, (1.0 / 3000) / 30},
		{GradeA, (1.0 / 3000) / 30, 1.0 / 3000},
		{GradeB, 1.0 / 3000, 1.0 / 1000},
		{GradeC, 1.0 / 1000, (1.0 / 1000) * 30},
		{GradeD, (1.0 / 1000) * 30, 1},
	}

	cats := list.Categories()
	require.Len(t, cats, len(expected))
	for i, e := range expected {
		assert.Equal(t, e.grade, cats[i].Label, "band %d", i)
		assert.InDelta(t, e.lower, cats[i].Lower.Value(), 1e-15, "band %d lower", i)
		assert.InDelta(t, e.upper, cats[i].Upper.Value(), 1e-15, "band %d upper", i)
	}
}

func TestAssessmentSectionLimitsCappedAtOne(t *testing.T) {
	list, err := CalculateAssessmentSectionCategoryLimits(probability.MustNew(0.01), probability.MustNew(0.1))
	require.NoError(t, err)

	cats := list.Categories()
	require.Len(t, cats, 4)
	assert.Equal(t, GradeC, cats[3].Label)
	assert.Equal(t, 1.0, cats[3].Upper.Value())
}

func TestCalculateInterpretationCategoryLimits(t *testing.T) {
	s, l := 1.0/10000, 1.0/3000

	tests := []struct {
		name     string
		scheme   InterpretationScheme
		labels   []InterpretationCategory
		boundary []float64
	}{
		{
			name:   "seven bands",
			scheme: SchemeSevenBands,
			labels: []InterpretationCategory{
				InterpretationIIIPlus, InterpretationIIPlus, InterpretationIPlus, InterpretationZero,
				InterpretationIMin, InterpretationIIMin, InterpretationIIIMin,
			},
			boundary: []float64{0, s / 30, s / 10, s / 3, s, l, 3 * l, 1},
		},
		{
			name:   "eight bands",
			scheme: SchemeEightBands,
			labels: []InterpretationCategory{
				InterpretationIIIPlus, InterpretationIIPlus, InterpretationIPlus, InterpretationZero,
				InterpretationIMin, InterpretationIIMin, InterpretationIIIMin, InterpretationIVMin,
			},
			boundary: []float64{0, s / 30, s / 10, s / 3, s, l, 3 * l, 10 * l, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := CalculateInterpretationCategoryLimits(probability.MustNew(s), probability.MustNew(l), tt.scheme)
			require.NoError(t, err)

			cats := list.Categories()
			require.Len(t, cats, len(tt.labels))
			for i, c := range cats {
				assert.Equal(t, tt.labels[i], c.Label)
				assert.InDelta(t, tt.boundary[i], c.Lower.Value(), 1e-15)
				assert.InDelta(t, tt.boundary[i+1], c.Upper.Value(), 1e-15)
			}
		})
	}
}

func TestInterpretationLimitsDropCappedBands(t *testing.T) {
	list, err := CalculateInterpretationCategoryLimits(probability.MustNew(0.1), probability.MustNew(0.5), SchemeEightBands)
	require.NoError(t, err)

	cats := list.Categories()
	require.Len(t, cats, 6)
	assert.Equal(t, InterpretationIIMin, cats[5].Label)
	assert.Equal(t, 1.0, cats[5].Upper.Value())
}

func TestCategoryLimitsValidation(t *testing.T) {
	_, err := CalculateAssessmentSectionCategoryLimits(probability.MustNew(0.01), probability.MustNew(0.001))
	assert.True(t, assemblyerr.HasCode(err, assemblyerr.SignallingLimitAboveLowerLimit))

	_, err = CalculateInterpretationCategoryLimits(probability.Undefined(), probability.Undefined(), SchemeSevenBands)
	require.Error(t, err)
	assert.Len(t, assemblyerr.Errors(err), 2)

	_, err = CalculateInterpretationCategoryLimits(probability.MustNew(0.001), probability.MustNew(0.01), InterpretationScheme(7))
	assert.True(t, assemblyerr.HasCode(err, assemblyerr.InvalidEnumValue))
}

func TestParseInterpretationScheme(t *testing.T) {
	for in, want := range map[string]InterpretationScheme{
		"":            SchemeSevenBands,
		"7":           SchemeSevenBands,
		"eight-bands": SchemeEightBands,
		"8":           SchemeEightBands,
	} {
		got, err := ParseInterpretationScheme(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseInterpretationScheme("nine")
	assert.Error(t, err)
}
