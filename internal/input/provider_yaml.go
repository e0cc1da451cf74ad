// Package input reads assessment section inputs for the assembly pipeline.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chrissnell/assemblykernel/pkg/assembly"
	"github.com/chrissnell/assemblykernel/pkg/categories"
	"github.com/chrissnell/assemblykernel/pkg/probability"
)

// YAMLProvider implements Provider for YAML assessment files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML input provider. A filename of "-"
// reads from standard input.
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadAssessment loads the assessment from the YAML file
func (y *YAMLProvider) LoadAssessment() (*AssessmentData, error) {
	if y.filename == "-" {
		return DecodeYAML(os.Stdin)
	}

	f, err := os.Open(y.filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeYAML(f)
}

// assessmentYAML mirrors the file layout
type assessmentYAML struct {
	Name                 string          `yaml:"name"`
	SignallingLimit      yamlProbability `yaml:"signalling_limit"`
	LowerLimit           yamlProbability `yaml:"lower_limit"`
	Length               float64         `yaml:"length"`
	PartialAssembly      bool            `yaml:"partial_assembly,omitempty"`
	InterpretationScheme string          `yaml:"interpretation_scheme,omitempty"`
	Mechanisms           []mechanismYAML `yaml:"failure_mechanisms"`
}

type mechanismYAML struct {
	Name               string        `yaml:"name"`
	LengthEffectFactor *float64      `yaml:"length_effect_factor,omitempty"`
	Sections           []sectionYAML `yaml:"sections"`
}

type sectionYAML struct {
	Start                     float64         `yaml:"start"`
	End                       float64         `yaml:"end"`
	Relevance                 string          `yaml:"relevance"`
	Refinement                string          `yaml:"refinement"`
	InitialProfileProbability yamlProbability `yaml:"initial_profile_probability,omitempty"`
	InitialSectionProbability yamlProbability `yaml:"initial_section_probability,omitempty"`
	RefinedProfileProbability yamlProbability `yaml:"refined_profile_probability,omitempty"`
	RefinedSectionProbability yamlProbability `yaml:"refined_section_probability,omitempty"`
}

// yamlProbability accepts a plain number, a return period written as "1/N"
// or "undefined". A missing or null value is undefined.
type yamlProbability struct {
	value probability.Probability
	set   bool
}

func (p *yamlProbability) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		p.value, p.set = probability.Undefined(), false
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseProbability(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	p.value, p.set = v, true
	return nil
}

func (p yamlProbability) resolve() probability.Probability {
	if !p.set {
		return probability.Undefined()
	}
	return p.value
}

// ParseProbability parses "0.001", "1/1000" or "undefined"
func ParseProbability(s string) (probability.Probability, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "undefined") {
		return probability.Undefined(), nil
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return probability.Probability{}, fmt.Errorf("invalid probability %q: %w", s, err)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil {
			return probability.Probability{}, fmt.Errorf("invalid probability %q: %w", s, err)
		}
		if n == 1 {
			return probability.FromReturnPeriod(d)
		}
		if d == 0 {
			return probability.Probability{}, fmt.Errorf("invalid probability %q: division by zero", s)
		}
		return probability.New(n / d)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return probability.Probability{}, fmt.Errorf("invalid probability %q: %w", s, err)
	}
	return probability.New(v)
}

// DecodeYAML reads an assessment from r and converts it to AssessmentData
func DecodeYAML(r io.Reader) (*AssessmentData, error) {
	var doc assessmentYAML
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty assessment input")
		}
		return nil, err
	}

	scheme, err := categories.ParseInterpretationScheme(doc.InterpretationScheme)
	if err != nil {
		return nil, err
	}
	if len(doc.Mechanisms) == 0 {
		return nil, fmt.Errorf("assessment %q has no failure mechanisms", doc.Name)
	}

	data := &AssessmentData{
		Name:            doc.Name,
		SignallingLimit: doc.SignallingLimit.resolve(),
		LowerLimit:      doc.LowerLimit.resolve(),
		Length:          doc.Length,
		PartialAssembly: doc.PartialAssembly,
		Scheme:          scheme,
		Mechanisms:      make([]MechanismData, len(doc.Mechanisms)),
	}

	for i, m := range doc.Mechanisms {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("mechanism-%d", i+1)
		}
		lengthEffectFactor := 1.0
		if m.LengthEffectFactor != nil {
			lengthEffectFactor = *m.LengthEffectFactor
		}

		mech := MechanismData{
			Name:               name,
			LengthEffectFactor: lengthEffectFactor,
			Sections:           make([]SectionData, len(m.Sections)),
		}
		for j, s := range m.Sections {
			relevance, err := assembly.ParseRelevance(s.Relevance)
			if err != nil {
				return nil, fmt.Errorf("failure mechanism %s, section %d: %w", name, j, err)
			}
			refinement, err := assembly.ParseRefinementStatus(s.Refinement)
			if err != nil {
				return nil, fmt.Errorf("failure mechanism %s, section %d: %w", name, j, err)
			}
			mech.Sections[j] = SectionData{
				Start:                     s.Start,
				End:                       s.End,
				Relevance:                 relevance,
				Refinement:                refinement,
				InitialProfileProbability: s.InitialProfileProbability.resolve(),
				InitialSectionProbability: s.InitialSectionProbability.resolve(),
				RefinedProfileProbability: s.RefinedProfileProbability.resolve(),
				RefinedSectionProbability: s.RefinedSectionProbability.resolve(),
			}
		}
		data.Mechanisms[i] = mech
	}

	return data, nil
}
