// Package assembly implements the assembly rules that turn section-level
// flood defense assessment results into failure mechanism probabilities,
// combined common-section categories and the assessment section grade.
//
// Every function is a pure calculation over its arguments. Independent
// failure mechanisms may be assembled concurrently by the caller.
package assembly

import (
	"fmt"
	"strings"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
)

// Relevance states whether a section is relevant for the initial mechanism
// and whether a probability was specified for it
type Relevance int

const (
	NotRelevant Relevance = iota + 1
	RelevantNoProbabilitySpecification
	RelevantWithProbabilitySpecification
)

var relevanceNames = map[Relevance]string{
	NotRelevant:                          "NotRelevant",
	RelevantNoProbabilitySpecification:   "RelevantNoProbabilitySpecification",
	RelevantWithProbabilitySpecification: "RelevantWithProbabilitySpecification",
}

func (r Relevance) String() string {
	if n, ok := relevanceNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Relevance(%d)", int(r))
}

// ParseRelevance accepts the names produced by String, case-insensitively
func ParseRelevance(s string) (Relevance, error) {
	for r, n := range relevanceNames {
		if strings.EqualFold(n, s) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown relevance %q", s)
}

// RefinementStatus states whether a refined analysis is needed or was done
type RefinementStatus int

const (
	RefinementNotNecessary RefinementStatus = iota + 1
	RefinementNecessary
	RefinementPerformed
)

var refinementNames = map[RefinementStatus]string{
	RefinementNotNecessary: "NotNecessary",
	RefinementNecessary:    "Necessary",
	RefinementPerformed:    "Performed",
}

func (r RefinementStatus) String() string {
	if n, ok := refinementNames[r]; ok {
		return n
	}
	return fmt.Sprintf("RefinementStatus(%d)", int(r))
}

func ParseRefinementStatus(s string) (RefinementStatus, error) {
	for r, n := range refinementNames {
		if strings.EqualFold(n, s) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown refinement status %q", s)
}

// AnalysisState is the outcome of the relevance/refinement decision table
type AnalysisState int

const (
	StateNotRelevant AnalysisState = iota + 1
	StateNoProbabilityEstimationNecessary
	StateProbabilityEstimationNecessary
	StateProbabilityEstimated
)

func (s AnalysisState) String() string {
	switch s {
	case StateNotRelevant:
		return "NotRelevant"
	case StateNoProbabilityEstimationNecessary:
		return "NoProbabilityEstimationNecessary"
	case StateProbabilityEstimationNecessary:
		return "ProbabilityEstimationNecessary"
	case StateProbabilityEstimated:
		return "ProbabilityEstimated"
	}
	return fmt.Sprintf("AnalysisState(%d)", int(s))
}

// DetermineAnalysisState applies the decision table
//
//	relevance                        refinement     state
//	NotRelevant                      any            NotRelevant
//	RelevantNoProbabilitySpec.       NotNecessary   NoProbabilityEstimationNecessary
//	RelevantNoProbabilitySpec.       Necessary      ProbabilityEstimationNecessary
//	RelevantNoProbabilitySpec.       Performed      ProbabilityEstimated
//	RelevantWithProbabilitySpec.     NotNecessary   ProbabilityEstimated
//	RelevantWithProbabilitySpec.     Necessary      ProbabilityEstimationNecessary
//	RelevantWithProbabilitySpec.     Performed      ProbabilityEstimated
func DetermineAnalysisState(relevance Relevance, refinement RefinementStatus) (AnalysisState, error) {
	if _, ok := refinementNames[refinement]; !ok {
		return 0, assemblyerr.New("refinementStatus", assemblyerr.InvalidEnumValue)
	}

	switch relevance {
	case NotRelevant:
		return StateNotRelevant, nil
	case RelevantNoProbabilitySpecification:
		switch refinement {
		case RefinementNotNecessary:
			return StateNoProbabilityEstimationNecessary, nil
		case RefinementNecessary:
			return StateProbabilityEstimationNecessary, nil
		case RefinementPerformed:
			return StateProbabilityEstimated, nil
		}
	case RelevantWithProbabilitySpecification:
		switch refinement {
		case RefinementNotNecessary, RefinementPerformed:
			return StateProbabilityEstimated, nil
		case RefinementNecessary:
			return StateProbabilityEstimationNecessary, nil
		}
	default:
		return 0, assemblyerr.New("relevance", assemblyerr.InvalidEnumValue)
	}
	return 0, assemblyerr.New("refinementStatus", assemblyerr.InvalidEnumValue)
}
