package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chrissnell/assemblykernel/internal/input"
	"github.com/chrissnell/assemblykernel/pkg/assembly"
	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/categories"
	"github.com/chrissnell/assemblykernel/pkg/probability"
	"github.com/chrissnell/assemblykernel/pkg/responseformat"
)

func p(v float64) probability.Probability {
	return probability.MustNew(v)
}

func testAssessment() *input.AssessmentData {
	u := probability.Undefined()
	return &input.AssessmentData{
		Name:            "traject 10-1",
		SignallingLimit: p(1.0 / 30000),
		LowerLimit:      p(1.0 / 10000),
		Length:          1000,
		Scheme:          categories.SchemeSevenBands,
		Mechanisms: []input.MechanismData{
			{
				Name:               "STPH",
				LengthEffectFactor: 14.4,
				Sections: []input.SectionData{
					{
						Start: 0, End: 400,
						Relevance:                 assembly.RelevantWithProbabilitySpecification,
						Refinement:                assembly.RefinementNotNecessary,
						InitialProfileProbability: p(5e-7),
						InitialSectionProbability: p(5e-6),
						RefinedProfileProbability: u,
						RefinedSectionProbability: u,
					},
					{
						Start: 400, End: 1000,
						Relevance:                 assembly.RelevantWithProbabilitySpecification,
						Refinement:                assembly.RefinementPerformed,
						InitialProfileProbability: p(5e-7),
						InitialSectionProbability: p(5e-6),
						RefinedProfileProbability: p(2e-6),
						RefinedSectionProbability: p(2e-5),
					},
				},
			},
			{
				Name:               "GEKB",
				LengthEffectFactor: 1,
				Sections: []input.SectionData{
					{
						Start: 0, End: 250,
						Relevance:                 assembly.NotRelevant,
						Refinement:                assembly.RefinementNotNecessary,
						InitialProfileProbability: u, InitialSectionProbability: u,
						RefinedProfileProbability: u, RefinedSectionProbability: u,
					},
					{
						Start: 250, End: 600,
						Relevance:                 assembly.RelevantWithProbabilitySpecification,
						Refinement:                assembly.RefinementNotNecessary,
						InitialProfileProbability: u, InitialSectionProbability: p(2e-5),
						RefinedProfileProbability: u, RefinedSectionProbability: u,
					},
					{
						Start: 600, End: 1000,
						Relevance:                 assembly.RelevantNoProbabilitySpecification,
						Refinement:                assembly.RefinementNotNecessary,
						InitialProfileProbability: u, InitialSectionProbability: u,
						RefinedProfileProbability: u, RefinedSectionProbability: u,
					},
				},
			},
		},
	}
}

func TestRun(t *testing.T) {
	report, err := New(zap.NewNop().Sugar(), WithWorkers(2)).Run(context.Background(), testAssessment())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "traject 10-1", report.Name)
	require.Len(t, report.Mechanisms, 2)

	stph := report.Mechanisms[0]
	assert.Equal(t, "STPH", stph.Name)
	assert.Equal(t, "Uncorrelated", stph.Method)
	assert.InDelta(t, 1-(1-5e-6)*(1-2e-5), stph.Probability.Value(), 1e-15)
	require.Len(t, stph.Sections, 2)
	assert.Equal(t, "+I", stph.Sections[0].Category)
	assert.Equal(t, "0", stph.Sections[1].Category)
	require.NotNil(t, stph.Sections[1].ProfileProbability)
	assert.Equal(t, 2e-6, stph.Sections[1].ProfileProbability.Value())

	gekb := report.Mechanisms[1]
	assert.InDelta(t, 2e-5, gekb.Probability.Value(), 1e-15)
	assert.Equal(t, []string{"NotRelevant", "0", "NotDominant"},
		[]string{gekb.Sections[0].Category, gekb.Sections[1].Category, gekb.Sections[2].Category})
	assert.Nil(t, gekb.Sections[0].ProfileProbability)

	require.Len(t, report.CommonSections, 4)
	wantCommon := []struct {
		start, end float64
		combined   string
		stph, gekb string
	}{
		{0, 250, "+I", "+I", "NotRelevant"},
		{250, 400, "0", "+I", "0"},
		{400, 600, "0", "0", "0"},
		{600, 1000, "0", "0", "NotDominant"},
	}
	for i, want := range wantCommon {
		got := report.CommonSections[i]
		assert.Equal(t, want.start, got.Start)
		assert.Equal(t, want.end, got.End)
		assert.Equal(t, want.combined, got.Category, "common section %d", i)
		assert.Equal(t, want.stph, got.PerMechanism["STPH"])
		assert.Equal(t, want.gekb, got.PerMechanism["GEKB"])
	}

	assert.InDelta(t, 1-(1-stph.Probability.Value())*(1-gekb.Probability.Value()), report.Probability.Value(), 1e-15)
	assert.Equal(t, "B", report.Grade)
}

func TestRunPartialAssembly(t *testing.T) {
	data := testAssessment()
	// GEKB section needing further analysis has no probability
	data.Mechanisms[1].Sections[1].Refinement = assembly.RefinementNecessary

	_, err := New(nil).Run(context.Background(), data)
	require.Error(t, err)
	assert.True(t, assemblyerr.HasCode(err, assemblyerr.UndefinedProbability))
	assert.Contains(t, err.Error(), "failure mechanism GEKB")

	data.PartialAssembly = true
	report, err := New(nil).Run(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Mechanisms[1].Probability.Value())
	assert.Equal(t, "Dominant", report.Mechanisms[1].Sections[1].Category)
	assert.Equal(t, "+I", report.CommonSections[1].Category)
}

func TestRunErrors(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		_, err := New(nil).Run(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("invalid norms", func(t *testing.T) {
		data := testAssessment()
		data.SignallingLimit, data.LowerLimit = data.LowerLimit, data.SignallingLimit
		_, err := New(nil).Run(context.Background(), data)
		assert.True(t, assemblyerr.HasCode(err, assemblyerr.SignallingLimitAboveLowerLimit))
	})

	t.Run("length mismatch", func(t *testing.T) {
		data := testAssessment()
		data.Length = 900
		_, err := New(nil).Run(context.Background(), data)
		assert.True(t, assemblyerr.HasCode(err, assemblyerr.FailureMechanismSectionLengthInvalid))
	})

	t.Run("zero length effect factor", func(t *testing.T) {
		data := testAssessment()
		data.Mechanisms[1].LengthEffectFactor = 0
		_, err := New(nil).Run(context.Background(), data)
		assert.True(t, assemblyerr.HasCode(err, assemblyerr.LengthEffectFactorOutOfRange))
	})

	t.Run("mechanism without sections", func(t *testing.T) {
		data := testAssessment()
		data.Mechanisms[0].Sections = nil
		_, err := New(nil).Run(context.Background(), data)
		assert.ErrorContains(t, err, "failure mechanism STPH")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(nil).Run(ctx, testAssessment())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestReportTables(t *testing.T) {
	report, err := New(nil).Run(context.Background(), testAssessment())
	require.NoError(t, err)

	tables := report.Tables()
	require.Len(t, tables, 2)
	assert.Len(t, tables[0].Rows, 3)
	assert.Equal(t, []string{"Start", "End", "Combined", "GEKB", "STPH"}, tables[1].Header)
	assert.Len(t, tables[1].Rows, 4)

	var buf bytes.Buffer
	require.NoError(t, responseformat.NewFormatter().Write(&buf, responseformat.FormatTable, report))
	assert.Contains(t, buf.String(), "NotDominant")
}
