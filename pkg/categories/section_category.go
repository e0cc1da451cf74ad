package categories

import (
	"encoding/json"
	"fmt"
)

// Kind tags which enumeration a SectionCategory holds
type Kind int

const (
	KindInterpretation Kind = iota + 1
	KindDirect
	KindIndirect
)

func (k Kind) String() string {
	switch k {
	case KindInterpretation:
		return "interpretation"
	case KindDirect:
		return "direct"
	case KindIndirect:
		return "indirect"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SectionCategory is the result category attached to a failure mechanism
// section. It holds exactly one of an interpretation, direct or indirect
// category; all behavior dispatches on Kind. The zero value holds nothing.
type SectionCategory struct {
	kind           Kind
	interpretation InterpretationCategory
	direct         DirectCategory
	indirect       IndirectCategory
}

func Interpretation(c InterpretationCategory) SectionCategory {
	return SectionCategory{kind: KindInterpretation, interpretation: c}
}

func Direct(c DirectCategory) SectionCategory {
	return SectionCategory{kind: KindDirect, direct: c}
}

func Indirect(c IndirectCategory) SectionCategory {
	return SectionCategory{kind: KindIndirect, indirect: c}
}

// Best returns the best category of a kind, the starting point when
// combining results
func Best(k Kind) SectionCategory {
	switch k {
	case KindDirect:
		return Direct(DirectNotApplicable)
	case KindIndirect:
		return Indirect(IndirectNotApplicable)
	}
	return Interpretation(InterpretationNotRelevant)
}

// Worst returns the no-result category of a kind
func Worst(k Kind) SectionCategory {
	switch k {
	case KindDirect:
		return Direct(DirectNoResult)
	case KindIndirect:
		return Indirect(IndirectNoResult)
	}
	return Interpretation(InterpretationNoResult)
}

// Kind returns the tag; 0 for the zero value
func (c SectionCategory) Kind() Kind {
	return c.kind
}

// IsZero reports whether c holds no category
func (c SectionCategory) IsZero() bool {
	return c.kind == 0
}

func (c SectionCategory) Interpretation() (InterpretationCategory, bool) {
	return c.interpretation, c.kind == KindInterpretation
}

func (c SectionCategory) Direct() (DirectCategory, bool) {
	return c.direct, c.kind == KindDirect
}

func (c SectionCategory) Indirect() (IndirectCategory, bool) {
	return c.indirect, c.kind == KindIndirect
}

// IsValid reports whether the held category is a member of its enumeration
func (c SectionCategory) IsValid() bool {
	switch c.kind {
	case KindInterpretation:
		return c.interpretation.IsValid()
	case KindDirect:
		return c.direct.IsValid()
	case KindIndirect:
		return c.indirect.IsValid()
	}
	return false
}

// Rank is the position in the best-to-worst ordering of the held enumeration
func (c SectionCategory) Rank() int {
	switch c.kind {
	case KindInterpretation:
		return c.interpretation.Rank()
	case KindDirect:
		return c.direct.Rank()
	case KindIndirect:
		return c.indirect.Rank()
	}
	return -1
}

// IsWorst reports whether c is the no-result category of its kind
func (c SectionCategory) IsWorst() bool {
	switch c.kind {
	case KindInterpretation:
		return c.interpretation == InterpretationNoResult
	case KindDirect:
		return c.direct == DirectNoResult
	case KindIndirect:
		return c.indirect == IndirectNoResult
	}
	return false
}

// IsSkippableInPartialAssembly reports whether a partial assembly ignores
// this category when combining sections
func (c SectionCategory) IsSkippableInPartialAssembly() bool {
	if c.kind == KindInterpretation && c.interpretation == InterpretationDominant {
		return true
	}
	return c.IsWorst()
}

// Worse returns whichever of c and o ranks worse. Both must be of the same kind.
func (c SectionCategory) Worse(o SectionCategory) SectionCategory {
	if o.Rank() > c.Rank() {
		return o
	}
	return c
}

func (c SectionCategory) Equal(o SectionCategory) bool {
	return c == o
}

func (c SectionCategory) String() string {
	switch c.kind {
	case KindInterpretation:
		return c.interpretation.String()
	case KindDirect:
		return c.direct.String()
	case KindIndirect:
		return c.indirect.String()
	}
	return ""
}

type sectionCategoryJSON struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
}

func (c SectionCategory) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(sectionCategoryJSON{Kind: c.kind.String(), Category: c.String()})
}
