package categories

import (
	"fmt"
	"strings"
)

// InterpretationCategory classifies a failure mechanism section result
type InterpretationCategory int

const (
	InterpretationNotRelevant InterpretationCategory = iota + 1
	InterpretationNotDominant
	InterpretationIIIPlus
	InterpretationIIPlus
	InterpretationIPlus
	InterpretationZero
	InterpretationIMin
	InterpretationIIMin
	InterpretationIIIMin
	InterpretationIVMin
	InterpretationDominant
	InterpretationNoResult
)

// interpretationRanks orders the categories from best (lowest) to worst
var interpretationRanks = map[InterpretationCategory]int{
	InterpretationNotRelevant: 0,
	InterpretationNotDominant: 1,
	InterpretationIIIPlus:     2,
	InterpretationIIPlus:      3,
	InterpretationIPlus:       4,
	InterpretationZero:        5,
	InterpretationIMin:        6,
	InterpretationIIMin:       7,
	InterpretationIIIMin:      8,
	InterpretationIVMin:       9,
	InterpretationDominant:    10,
	InterpretationNoResult:    11,
}

var interpretationNames = map[InterpretationCategory]string{
	InterpretationNotRelevant: "NotRelevant",
	InterpretationNotDominant: "NotDominant",
	InterpretationIIIPlus:     "+III",
	InterpretationIIPlus:      "+II",
	InterpretationIPlus:       "+I",
	InterpretationZero:        "0",
	InterpretationIMin:        "-I",
	InterpretationIIMin:       "-II",
	InterpretationIIIMin:      "-III",
	InterpretationIVMin:       "-IV",
	InterpretationDominant:    "Dominant",
	InterpretationNoResult:    "NoResult",
}

// IsValid reports whether c is a member of the enumeration
func (c InterpretationCategory) IsValid() bool {
	_, ok := interpretationRanks[c]
	return ok
}

// Rank returns the position of c in the best-to-worst ordering, -1 if invalid
func (c InterpretationCategory) Rank() int {
	if r, ok := interpretationRanks[c]; ok {
		return r
	}
	return -1
}

// IsProbabilistic reports whether c is derived from a probability
// (one of the +III .. -IV bands)
func (c InterpretationCategory) IsProbabilistic() bool {
	switch c {
	case InterpretationIIIPlus, InterpretationIIPlus, InterpretationIPlus, InterpretationZero,
		InterpretationIMin, InterpretationIIMin, InterpretationIIIMin, InterpretationIVMin:
		return true
	}
	return false
}

func (c InterpretationCategory) String() string {
	if n, ok := interpretationNames[c]; ok {
		return n
	}
	return fmt.Sprintf("InterpretationCategory(%d)", int(c))
}

// ParseInterpretationCategory accepts the names produced by String, case-insensitively
func ParseInterpretationCategory(s string) (InterpretationCategory, error) {
	for c, n := range interpretationNames {
		if strings.EqualFold(n, s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown interpretation category %q", s)
}

func (c InterpretationCategory) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid interpretation category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *InterpretationCategory) UnmarshalText(b []byte) error {
	v, err := ParseInterpretationCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
