package categories

import (
	"fmt"
	"strings"
)

// AssessmentGrade is the final safety grade of an assessment section
type AssessmentGrade int

const (
	GradeNotAssessed AssessmentGrade = iota + 1
	GradeAPlus
	GradeA
	GradeB
	GradeC
	GradeD
	GradeNoResult
)

var gradeRanks = map[AssessmentGrade]int{
	GradeNotAssessed: 0,
	GradeAPlus:       1,
	GradeA:           2,
	GradeB:           3,
	GradeC:           4,
	GradeD:           5,
	GradeNoResult:    6,
}

var gradeNames = map[AssessmentGrade]string{
	GradeNotAssessed: "NotAssessed",
	GradeAPlus:       "A+",
	GradeA:           "A",
	GradeB:           "B",
	GradeC:           "C",
	GradeD:           "D",
	GradeNoResult:    "NoResult",
}

func (g AssessmentGrade) IsValid() bool {
	_, ok := gradeRanks[g]
	return ok
}

func (g AssessmentGrade) Rank() int {
	if r, ok := gradeRanks[g]; ok {
		return r
	}
	return -1
}

func (g AssessmentGrade) String() string {
	if n, ok := gradeNames[g]; ok {
		return n
	}
	return fmt.Sprintf("AssessmentGrade(%d)", int(g))
}

func (g AssessmentGrade) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("invalid assessment grade %d", int(g))
	}
	return []byte(g.String()), nil
}

func (g *AssessmentGrade) UnmarshalText(b []byte) error {
	for v, n := range gradeNames {
		if strings.EqualFold(n, string(b)) {
			*g = v
			return nil
		}
	}
	return fmt.Errorf("unknown assessment grade %q", string(b))
}

// FailureMechanismCategory is the category of a complete failure mechanism
type FailureMechanismCategory int

const (
	MechanismNotApplicable FailureMechanismCategory = iota + 1
	MechanismIt
	MechanismIIt
	MechanismIIIt
	MechanismIVt
	MechanismVt
	MechanismVIt
	MechanismVIIt
	MechanismNoResult
)

var mechanismRanks = map[FailureMechanismCategory]int{
	MechanismNotApplicable: 0,
	MechanismIt:            1,
	MechanismIIt:           2,
	MechanismIIIt:          3,
	MechanismIVt:           4,
	MechanismVt:            5,
	MechanismVIt:           6,
	MechanismVIIt:          7,
	MechanismNoResult:      8,
}

var mechanismNames = map[FailureMechanismCategory]string{
	MechanismNotApplicable: "NotApplicable",
	MechanismIt:            "It",
	MechanismIIt:           "IIt",
	MechanismIIIt:          "IIIt",
	MechanismIVt:           "IVt",
	MechanismVt:            "Vt",
	MechanismVIt:           "VIt",
	MechanismVIIt:          "VIIt",
	MechanismNoResult:      "NoResult",
}

func (c FailureMechanismCategory) IsValid() bool {
	_, ok := mechanismRanks[c]
	return ok
}

func (c FailureMechanismCategory) Rank() int {
	if r, ok := mechanismRanks[c]; ok {
		return r
	}
	return -1
}

func (c FailureMechanismCategory) String() string {
	if n, ok := mechanismNames[c]; ok {
		return n
	}
	return fmt.Sprintf("FailureMechanismCategory(%d)", int(c))
}

func (c FailureMechanismCategory) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid failure mechanism category %d", int(c))
	}
	return []byte(c.String()), nil
}

// DirectCategory is the result category of a section assessed with a direct
// (quantitative) assessment
type DirectCategory int

const (
	DirectNotApplicable DirectCategory = iota + 1
	DirectIv
	DirectIIv
	DirectIIIv
	DirectIVv
	DirectVv
	DirectVIv
	DirectVIIv
	DirectNoResult
)

var directRanks = map[DirectCategory]int{
	DirectNotApplicable: 0,
	DirectIv:            1,
	DirectIIv:           2,
	DirectIIIv:          3,
	DirectIVv:           4,
	DirectVv:            5,
	DirectVIv:           6,
	DirectVIIv:          7,
	DirectNoResult:      8,
}

var directNames = map[DirectCategory]string{
	DirectNotApplicable: "NotApplicable",
	DirectIv:            "Iv",
	DirectIIv:           "IIv",
	DirectIIIv:          "IIIv",
	DirectIVv:           "IVv",
	DirectVv:            "Vv",
	DirectVIv:           "VIv",
	DirectVIIv:          "VIIv",
	DirectNoResult:      "NoResult",
}

// directToMechanism maps a section category onto the failure mechanism scale
var directToMechanism = map[DirectCategory]FailureMechanismCategory{
	DirectNotApplicable: MechanismNotApplicable,
	DirectIv:            MechanismIt,
	DirectIIv:           MechanismIIt,
	DirectIIIv:          MechanismIIIt,
	DirectIVv:           MechanismIVt,
	DirectVv:            MechanismVt,
	DirectVIv:           MechanismVIt,
	DirectVIIv:          MechanismVIIt,
	DirectNoResult:      MechanismNoResult,
}

func (c DirectCategory) IsValid() bool {
	_, ok := directRanks[c]
	return ok
}

func (c DirectCategory) Rank() int {
	if r, ok := directRanks[c]; ok {
		return r
	}
	return -1
}

// ToFailureMechanismCategory returns the matching failure mechanism category
func (c DirectCategory) ToFailureMechanismCategory() (FailureMechanismCategory, bool) {
	m, ok := directToMechanism[c]
	return m, ok
}

func (c DirectCategory) String() string {
	if n, ok := directNames[c]; ok {
		return n
	}
	return fmt.Sprintf("DirectCategory(%d)", int(c))
}

func ParseDirectCategory(s string) (DirectCategory, error) {
	for c, n := range directNames {
		if strings.EqualFold(n, s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown direct category %q", s)
}

// IndirectCategory is the result of a section assessed without a probability
type IndirectCategory int

const (
	IndirectNotApplicable IndirectCategory = iota + 1
	IndirectFactoredInOtherFailureMechanism
	IndirectFvEt
	IndirectFvGt
	IndirectFvTom
	IndirectNgo
	IndirectNoResult
)

var indirectRanks = map[IndirectCategory]int{
	IndirectNotApplicable:                   0,
	IndirectFactoredInOtherFailureMechanism: 1,
	IndirectFvEt:                            2,
	IndirectFvGt:                            3,
	IndirectFvTom:                           4,
	IndirectNgo:                             5,
	IndirectNoResult:                        6,
}

var indirectNames = map[IndirectCategory]string{
	IndirectNotApplicable:                   "NotApplicable",
	IndirectFactoredInOtherFailureMechanism: "FactoredInOtherFailureMechanism",
	IndirectFvEt:                            "FvEt",
	IndirectFvGt:                            "FvGt",
	IndirectFvTom:                           "FvTom",
	IndirectNgo:                             "Ngo",
	IndirectNoResult:                        "NoResult",
}

func (c IndirectCategory) IsValid() bool {
	_, ok := indirectRanks[c]
	return ok
}

func (c IndirectCategory) Rank() int {
	if r, ok := indirectRanks[c]; ok {
		return r
	}
	return -1
}

func (c IndirectCategory) String() string {
	if n, ok := indirectNames[c]; ok {
		return n
	}
	return fmt.Sprintf("IndirectCategory(%d)", int(c))
}

func ParseIndirectCategory(s string) (IndirectCategory, error) {
	for c, n := range indirectNames {
		if strings.EqualFold(n, s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown indirect category %q", s)
}
