// Package assemblyerr provides the structured errors returned by the assembly
// kernel. Every validation failure carries the name of the offending field and
// a stable error code. Independent failures found in the same call are
// aggregated into one error with go.uber.org/multierr so callers see all of
// them at once.
package assemblyerr

import (
	"fmt"

	"go.uber.org/multierr"
)

// Code identifies the kind of validation failure
type Code string

const (
	ValueMayNotBeNull                                        Code = "ValueMayNotBeNull"
	EmptyResultsList                                         Code = "EmptyResultsList"
	ProbabilityMayNotBeSmallerThanZero                       Code = "ProbabilityMayNotBeSmallerThanZero"
	ProbabilityMayNotBeLargerThanOne                         Code = "ProbabilityMayNotBeLargerThanOne"
	UndefinedProbability                                     Code = "UndefinedProbability"
	InvalidEnumValue                                         Code = "InvalidEnumValue"
	InvalidCategoryValue                                     Code = "InvalidCategoryValue"
	NonMatchingProbabilityValue                              Code = "NonMatchingProbabilityValue"
	LengthEffectFactorOutOfRange                             Code = "LengthEffectFactorOutOfRange"
	SignallingLimitAboveLowerLimit                           Code = "SignallingLimitAboveLowerLimit"
	InvalidCategoryLimits                                    Code = "InvalidCategoryLimits"
	ProfileProbabilityHigherThanSectionProbability           Code = "ProfileProbabilityHigherThanSectionProbability"
	SectionLengthOutOfRange                                  Code = "SectionLengthOutOfRange"
	FailureMechanismSectionLengthInvalid                     Code = "FailureMechanismSectionLengthInvalid"
	FailureMechanismSectionsNotConsecutive                   Code = "FailureMechanismSectionsNotConsecutive"
	FailureMechanismSectionSectionStartEndInvalid            Code = "FailureMechanismSectionSectionStartEndInvalid"
	CommonSectionsInvalid                                    Code = "CommonSectionsInvalid"
	SectionsWithoutCategory                                  Code = "SectionsWithoutCategory"
	InputNotTheSameType                                      Code = "InputNotTheSameType"
	UnequalCommonFailureMechanismSectionLists                Code = "UnequalCommonFailureMechanismSectionLists"
	CommonFailureMechanismSectionsDoNotHaveEqualStartsOrEnds Code = "CommonFailureMechanismSectionsDoNotHaveEqualStartsOrEnds"
)

// Error is a single validation failure
type Error struct {
	Field string
	Code  Code
}

// New returns a validation error for the given field and code
func New(field string, code Code) *Error {
	return &Error{Field: field, Code: code}
}

func (e *Error) Error() string {
	if e.Field == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Code)
}

// Is reports a match when target is an *Error with the same code. An empty
// field on the target matches any field.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Field == "" || t.Field == e.Field)
}

// Append adds err to the aggregate. Nil errors are ignored.
func Append(agg error, err error) error {
	return multierr.Append(agg, err)
}

// Combine aggregates any number of errors, skipping nils
func Combine(errs ...error) error {
	return multierr.Combine(errs...)
}

// Errors flattens an aggregate into the individual validation failures,
// looking through wrapped errors. Other errors are skipped.
func Errors(err error) []*Error {
	var out []*Error
	collect(err, &out)
	return out
}

func collect(err error, out *[]*Error) {
	switch e := err.(type) {
	case nil:
	case *Error:
		*out = append(*out, e)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			collect(inner, out)
		}
	case interface{ Unwrap() error }:
		collect(e.Unwrap(), out)
	}
}

// Codes returns the codes of all validation failures in err
func Codes(err error) []Code {
	errs := Errors(err)
	codes := make([]Code, 0, len(errs))
	for _, e := range errs {
		codes = append(codes, e.Code)
	}
	return codes
}

// HasCode reports whether err contains a failure with the given code
func HasCode(err error, code Code) bool {
	for _, e := range Errors(err) {
		if e.Code == code {
			return true
		}
	}
	return false
}
