package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/categories"
	"github.com/chrissnell/assemblykernel/pkg/probability"
)

func TestCalculateFailureMechanismFailureProbability(t *testing.T) {
	u := probability.Undefined()

	tests := []struct {
		name    string
		n       float64
		probs   []probability.Probability
		partial bool
		want    float64
		method  Method
	}{
		{
			name:   "uncorrelated is smaller",
			n:      14.4,
			probs:  []probability.Probability{p(0.0005), p(0.00005)},
			want:   0.000549975,
			method: MethodUncorrelated,
		},
		{
			name:   "correlated is smaller",
			n:      2,
			probs:  []probability.Probability{p(1e-4), p(1e-4), p(1e-4)},
			want:   2e-4,
			method: MethodCorrelated,
		},
		{
			name:   "single section",
			n:      5,
			probs:  []probability.Probability{p(0.01)},
			want:   0.01,
			method: MethodUncorrelated,
		},
		{
			name:    "partial skips undefined",
			n:       1,
			probs:   []probability.Probability{p(0.0005), u},
			partial: true,
			want:    0.0005,
			method:  MethodUncorrelated,
		},
		{
			name:    "partial without defined probabilities",
			n:       3,
			probs:   []probability.Probability{u, u},
			partial: true,
			want:    0,
			method:  MethodCorrelated,
		},
		{
			name:   "certain failure",
			n:      1,
			probs:  []probability.Probability{p(1), p(0.2)},
			want:   1,
			method: MethodCorrelated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateFailureMechanismFailureProbability(tt.n, tt.probs, tt.partial)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Probability.Value(), 1e-12)
			assert.Equal(t, tt.method, got.Method)
		})
	}
}

func TestCalculateFailureMechanismFailureProbabilityErrors(t *testing.T) {
	tests := []struct {
		name  string
		n     float64
		probs []probability.Probability
		codes []assemblyerr.Code
	}{
		{"empty", 1, nil, []assemblyerr.Code{assemblyerr.EmptyResultsList}},
		{"undefined", 1, []probability.Probability{p(0.1), probability.Undefined()}, []assemblyerr.Code{assemblyerr.UndefinedProbability}},
		{"factor below one", 0.5, []probability.Probability{p(0.1)}, []assemblyerr.Code{assemblyerr.LengthEffectFactorOutOfRange}},
		{
			"all problems reported",
			0,
			[]probability.Probability{probability.Undefined()},
			[]assemblyerr.Code{assemblyerr.LengthEffectFactorOutOfRange, assemblyerr.UndefinedProbability},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateFailureMechanismFailureProbability(tt.n, tt.probs, false)
			require.Error(t, err)
			assert.ElementsMatch(t, tt.codes, assemblyerr.Codes(err))
		})
	}
}

func TestCalculateFailureMechanismFailureProbabilityWithLengthEffect(t *testing.T) {
	results := []SectionResultWithLengthEffect{
		{ProfileProbability: p(1e-5), SectionProbability: p(5e-5), Category: categories.InterpretationIMin},
		{ProfileProbability: p(2e-5), SectionProbability: p(4e-5), Category: categories.InterpretationIMin},
	}

	got, err := CalculateFailureMechanismFailureProbabilityWithLengthEffect(3, results, false)
	require.NoError(t, err)
	assert.Equal(t, MethodCorrelated, got.Method)
	assert.InDelta(t, 6e-5, got.Probability.Value(), 1e-15)

	got, err = CalculateFailureMechanismFailureProbabilityWithLengthEffect(10, results, false)
	require.NoError(t, err)
	assert.Equal(t, MethodUncorrelated, got.Method)
	assert.InDelta(t, 1-(1-5e-5)*(1-4e-5), got.Probability.Value(), 1e-15)

	withUndefined := append(results, SectionResultWithLengthEffect{
		ProfileProbability: probability.Undefined(),
		SectionProbability: probability.Undefined(),
		Category:           categories.InterpretationDominant,
	})
	_, err = CalculateFailureMechanismFailureProbabilityWithLengthEffect(3, withUndefined, false)
	assert.True(t, assemblyerr.HasCode(err, assemblyerr.UndefinedProbability))

	got, err = CalculateFailureMechanismFailureProbabilityWithLengthEffect(3, withUndefined, true)
	require.NoError(t, err)
	assert.InDelta(t, 6e-5, got.Probability.Value(), 1e-15)

	_, err = CalculateFailureMechanismFailureProbabilityWithLengthEffect(3, nil, false)
	assert.True(t, assemblyerr.HasCode(err, assemblyerr.EmptyResultsList))
}

func TestDetermineFailureMechanismCategory(t *testing.T) {
	tests := []struct {
		name    string
		cats    []categories.DirectCategory
		partial bool
		want    categories.FailureMechanismCategory
	}{
		{"worst wins", []categories.DirectCategory{categories.DirectIv, categories.DirectIIIv, categories.DirectIIv}, false, categories.MechanismIIIt},
		{"no result", []categories.DirectCategory{categories.DirectIv, categories.DirectNoResult}, false, categories.MechanismNoResult},
		{"partial skips no result", []categories.DirectCategory{categories.DirectIv, categories.DirectNoResult}, true, categories.MechanismIt},
		{"partial without results", []categories.DirectCategory{categories.DirectNoResult}, true, categories.MechanismNotApplicable},
		{"not applicable", []categories.DirectCategory{categories.DirectNotApplicable}, false, categories.MechanismNotApplicable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetermineFailureMechanismCategory(tt.cats, tt.partial)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DetermineFailureMechanismCategory(nil, false)
	assert.True(t, assemblyerr.HasCode(err, assemblyerr.EmptyResultsList))
	_, err = DetermineFailureMechanismCategory([]categories.DirectCategory{categories.DirectCategory(99)}, false)
	assert.True(t, assemblyerr.HasCode(err, assemblyerr.InvalidCategoryValue))
}

func TestUncorrelatedUnionKeepsSmallProbabilities(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = 1e-12
	}
	assert.InDelta(t, 1e-9, uncorrelatedUnion(values), 1e-15)
}
