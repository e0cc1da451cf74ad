package input

import (
	"github.com/chrissnell/assemblykernel/pkg/assembly"
	"github.com/chrissnell/assemblykernel/pkg/categories"
	"github.com/chrissnell/assemblykernel/pkg/probability"
)

// Provider defines the interface for assessment input sources
type Provider interface {
	// LoadAssessment reads and validates the complete assessment input
	LoadAssessment() (*AssessmentData, error)
}

// AssessmentData is the raw input of one assessment section
type AssessmentData struct {
	Name            string                          `json:"name"`
	SignallingLimit probability.Probability         `json:"signalling_limit"`
	LowerLimit      probability.Probability         `json:"lower_limit"`
	Length          float64                         `json:"length"`
	PartialAssembly bool                            `json:"partial_assembly"`
	Scheme          categories.InterpretationScheme `json:"interpretation_scheme"`
	Mechanisms      []MechanismData                 `json:"failure_mechanisms"`
}

// MechanismData holds the section inputs of one failure mechanism
type MechanismData struct {
	Name               string        `json:"name"`
	LengthEffectFactor float64       `json:"length_effect_factor"`
	Sections           []SectionData `json:"sections"`
}

// HasLengthEffect reports whether any section specifies profile
// probabilities, in which case the mechanism is assembled with the length
// effect variants
func (m MechanismData) HasLengthEffect() bool {
	for _, s := range m.Sections {
		if s.InitialProfileProbability.IsDefined() || s.RefinedProfileProbability.IsDefined() {
			return true
		}
	}
	return false
}

// SectionData holds the assessment inputs of one failure mechanism section.
// Probabilities that were not given are undefined.
type SectionData struct {
	Start                     float64                   `json:"start"`
	End                       float64                   `json:"end"`
	Relevance                 assembly.Relevance        `json:"relevance"`
	Refinement                assembly.RefinementStatus `json:"refinement"`
	InitialProfileProbability probability.Probability   `json:"initial_profile_probability"`
	InitialSectionProbability probability.Probability   `json:"initial_section_probability"`
	RefinedProfileProbability probability.Probability   `json:"refined_profile_probability"`
	RefinedSectionProbability probability.Probability   `json:"refined_section_probability"`
}
