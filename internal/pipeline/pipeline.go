// Package pipeline runs the complete assembly of one assessment section:
// section translation, failure mechanism assembly, common sections and the
// final grade.
package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chrissnell/assemblykernel/internal/input"
	"github.com/chrissnell/assemblykernel/pkg/assembly"
	"github.com/chrissnell/assemblykernel/pkg/categories"
	"github.com/chrissnell/assemblykernel/pkg/probability"
	"github.com/chrissnell/assemblykernel/pkg/sections"
)

// Runner assembles assessment sections. Independent failure mechanisms are
// assembled concurrently.
type Runner struct {
	logger  *zap.SugaredLogger
	workers int
}

// Option configures a Runner
type Option func(*Runner)

// WithWorkers limits the number of failure mechanisms assembled at once
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// New creates a Runner logging to logger
func New(logger *zap.SugaredLogger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	r := &Runner{logger: logger, workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// mechanismOutcome is the assembled state of one failure mechanism
type mechanismOutcome struct {
	report  MechanismReport
	results *sections.List
}

// Run assembles the assessment described by data
func (r *Runner) Run(ctx context.Context, data *input.AssessmentData) (*Report, error) {
	if data == nil {
		return nil, fmt.Errorf("no assessment input")
	}

	runID := uuid.New().String()
	logger := r.logger.With("run_id", runID, "assessment", data.Name)
	logger.Infow("starting assembly",
		"failure_mechanisms", len(data.Mechanisms),
		"partial_assembly", data.PartialAssembly,
		"scheme", data.Scheme.String())

	interpretation, err := categories.CalculateInterpretationCategoryLimits(data.SignallingLimit, data.LowerLimit, data.Scheme)
	if err != nil {
		return nil, fmt.Errorf("interpretation categories: %w", err)
	}
	grades, err := categories.CalculateAssessmentSectionCategoryLimits(data.SignallingLimit, data.LowerLimit)
	if err != nil {
		return nil, fmt.Errorf("assessment section categories: %w", err)
	}

	outcomes := make([]mechanismOutcome, len(data.Mechanisms))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, m := range data.Mechanisms {
		i, m := i, m
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			outcome, err := assembleMechanism(m, interpretation, data.PartialAssembly)
			if err != nil {
				return fmt.Errorf("failure mechanism %s: %w", m.Name, err)
			}
			logger.Debugw("assembled failure mechanism",
				"name", m.Name,
				"sections", len(m.Sections),
				"probability", outcome.report.Probability.String(),
				"method", outcome.report.Method)
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:           runID,
		Name:            data.Name,
		PartialAssembly: data.PartialAssembly,
		Mechanisms:      make([]MechanismReport, len(outcomes)),
	}
	lists := make([]*sections.List, len(outcomes))
	probs := make([]probability.Probability, len(outcomes))
	for i, o := range outcomes {
		report.Mechanisms[i] = o.report
		lists[i] = o.results
		probs[i] = o.report.Probability
	}

	common, err := assembly.AssembleCommonFailureMechanismSections(lists, data.Length, data.PartialAssembly)
	if err != nil {
		return nil, fmt.Errorf("common sections: %w", err)
	}
	report.CommonSections, err = commonSectionReports(common)
	if err != nil {
		return nil, err
	}
	logger.Debugw("assembled common sections", "sections", len(report.CommonSections))

	result, err := assembly.AssembleAssessmentSection(probs, grades, data.PartialAssembly)
	if err != nil {
		return nil, fmt.Errorf("assessment section: %w", err)
	}
	report.Probability = result.Probability
	report.Grade = result.Grade.String()

	logger.Infow("assembly complete",
		"probability", result.Probability.String(),
		"grade", report.Grade)
	return report, nil
}

// assembleMechanism translates the sections of one failure mechanism and
// combines them into the mechanism probability
func assembleMechanism(m input.MechanismData, cats *assembly.InterpretationCategories, partialAssembly bool) (mechanismOutcome, error) {
	if len(m.Sections) == 0 {
		return mechanismOutcome{}, fmt.Errorf("no sections")
	}

	report := MechanismReport{
		Name:               m.Name,
		LengthEffectFactor: m.LengthEffectFactor,
		Sections:           make([]SectionReport, len(m.Sections)),
	}
	categorized := make([]sections.SectionWithCategory, len(m.Sections))

	var result assembly.FailureMechanismResult
	if m.HasLengthEffect() {
		translated := make([]assembly.SectionResultWithLengthEffect, len(m.Sections))
		for i, s := range m.Sections {
			t, err := assembly.TranslateAssessmentResultWithLengthEffect(
				s.Relevance,
				s.InitialProfileProbability, s.InitialSectionProbability,
				s.Refinement,
				s.RefinedProfileProbability, s.RefinedSectionProbability,
				cats)
			if err != nil {
				return mechanismOutcome{}, fmt.Errorf("section %d: %w", i, err)
			}
			translated[i] = t
			profile := t.ProfileProbability
			report.Sections[i] = SectionReport{
				Start:              s.Start,
				End:                s.End,
				ProfileProbability: &profile,
				Probability:        t.SectionProbability,
				Category:           t.Category.String(),
			}
			categorized[i] = sections.SectionWithCategory{
				Section:  sections.Section{Start: s.Start, End: s.End},
				Category: categories.Interpretation(t.Category),
			}
		}
		var err error
		result, err = assembly.CalculateFailureMechanismFailureProbabilityWithLengthEffect(m.LengthEffectFactor, translated, partialAssembly)
		if err != nil {
			return mechanismOutcome{}, err
		}
	} else {
		probs := make([]probability.Probability, len(m.Sections))
		for i, s := range m.Sections {
			t, err := assembly.TranslateAssessmentResult(s.Relevance, s.InitialSectionProbability, s.Refinement, s.RefinedSectionProbability, cats)
			if err != nil {
				return mechanismOutcome{}, fmt.Errorf("section %d: %w", i, err)
			}
			probs[i] = t.Probability
			report.Sections[i] = SectionReport{
				Start:       s.Start,
				End:         s.End,
				Probability: t.Probability,
				Category:    t.Category.String(),
			}
			categorized[i] = sections.SectionWithCategory{
				Section:  sections.Section{Start: s.Start, End: s.End},
				Category: categories.Interpretation(t.Category),
			}
		}
		var err error
		result, err = assembly.CalculateFailureMechanismFailureProbability(m.LengthEffectFactor, probs, partialAssembly)
		if err != nil {
			return mechanismOutcome{}, err
		}
	}

	list, err := sections.NewListWithCategories(m.Name, categorized)
	if err != nil {
		return mechanismOutcome{}, err
	}

	report.Probability = result.Probability
	report.Method = result.Method.String()
	return mechanismOutcome{report: report, results: list}, nil
}

func commonSectionReports(common *assembly.CommonSectionsResult) ([]CommonSectionReport, error) {
	combined, err := common.Combined.SectionsWithCategory()
	if err != nil {
		return nil, err
	}

	perMechanism := make([][]sections.SectionWithCategory, len(common.PerMechanism))
	for i, l := range common.PerMechanism {
		if perMechanism[i], err = l.SectionsWithCategory(); err != nil {
			return nil, err
		}
	}

	reports := make([]CommonSectionReport, len(combined))
	for i, c := range combined {
		mechanisms := make(map[string]string, len(perMechanism))
		for j, secs := range perMechanism {
			mechanisms[common.PerMechanism[j].Name()] = secs[i].Category.String()
		}
		reports[i] = CommonSectionReport{
			Start:        c.Start,
			End:          c.End,
			Category:     c.Category.String(),
			PerMechanism: mechanisms,
		}
	}
	return reports, nil
}
