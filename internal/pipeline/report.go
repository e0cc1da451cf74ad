package pipeline

import (
	"fmt"
	"sort"

	"github.com/chrissnell/assemblykernel/pkg/probability"
	"github.com/chrissnell/assemblykernel/pkg/responseformat"
)

// Report is the outcome of one assembly run
type Report struct {
	RunID           string                  `json:"run_id"`
	Name            string                  `json:"name"`
	PartialAssembly bool                    `json:"partial_assembly"`
	Mechanisms      []MechanismReport       `json:"failure_mechanisms"`
	CommonSections  []CommonSectionReport   `json:"common_sections"`
	Probability     probability.Probability `json:"probability"`
	Grade           string                  `json:"grade"`
}

// MechanismReport holds the translated sections and assembled probability of
// one failure mechanism
type MechanismReport struct {
	Name               string                  `json:"name"`
	LengthEffectFactor float64                 `json:"length_effect_factor"`
	Sections           []SectionReport         `json:"sections"`
	Probability        probability.Probability `json:"probability"`
	Method             string                  `json:"method"`
}

type SectionReport struct {
	Start              float64                  `json:"start"`
	End                float64                  `json:"end"`
	ProfileProbability *probability.Probability `json:"profile_probability,omitempty"`
	Probability        probability.Probability  `json:"probability"`
	Category           string                   `json:"category"`
}

// CommonSectionReport is one common section with the combined category and
// the category of every failure mechanism on it
type CommonSectionReport struct {
	Start        float64           `json:"start"`
	End          float64           `json:"end"`
	Category     string            `json:"category"`
	PerMechanism map[string]string `json:"per_mechanism"`
}

// Tables lays the report out as text tables
func (r *Report) Tables() []responseformat.Table {
	summary := responseformat.Table{
		Title:  fmt.Sprintf("Assessment section %s", r.Name),
		Header: []string{"Failure mechanism", "N", "Probability", "Method"},
	}
	for _, m := range r.Mechanisms {
		summary.Rows = append(summary.Rows, []any{m.Name, m.LengthEffectFactor, m.Probability.String(), m.Method})
	}
	summary.Rows = append(summary.Rows, []any{"Assessment section", "", r.Probability.String(), r.Grade})

	names := make([]string, 0, len(r.Mechanisms))
	for _, m := range r.Mechanisms {
		names = append(names, m.Name)
	}
	sort.Strings(names)

	common := responseformat.Table{
		Title:  "Common sections",
		Header: append([]string{"Start", "End", "Combined"}, names...),
	}
	for _, c := range r.CommonSections {
		row := []any{fmt.Sprintf("%.2f", c.Start), fmt.Sprintf("%.2f", c.End), c.Category}
		for _, n := range names {
			row = append(row, c.PerMechanism[n])
		}
		common.Rows = append(common.Rows, row)
	}

	return []responseformat.Table{summary, common}
}
