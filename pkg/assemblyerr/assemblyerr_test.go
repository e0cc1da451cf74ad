package assemblyerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregation(t *testing.T) {
	var err error
	err = Append(err, New("a", EmptyResultsList))
	err = Append(err, nil)
	err = Append(err, New("b", UndefinedProbability))

	assert.Equal(t, []Code{EmptyResultsList, UndefinedProbability}, Codes(err))
	assert.True(t, HasCode(err, UndefinedProbability))
	assert.False(t, HasCode(err, InvalidEnumValue))
	assert.EqualError(t, err, "a: EmptyResultsList; b: UndefinedProbability")
}

func TestErrorsLooksThroughWrapping(t *testing.T) {
	agg := Combine(New("a", EmptyResultsList), fmt.Errorf("plain"), New("b", InvalidCategoryValue))
	wrapped := fmt.Errorf("stage: %w", agg)

	errs := Errors(wrapped)
	assert.Len(t, errs, 2)
	assert.Equal(t, "b", errs[1].Field)
	assert.True(t, HasCode(wrapped, InvalidCategoryValue))
	assert.Nil(t, Errors(nil))
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", New("sections[1]", FailureMechanismSectionsNotConsecutive))

	assert.True(t, errors.Is(err, &Error{Code: FailureMechanismSectionsNotConsecutive}))
	assert.True(t, errors.Is(err, New("sections[1]", FailureMechanismSectionsNotConsecutive)))
	assert.False(t, errors.Is(err, New("sections[2]", FailureMechanismSectionsNotConsecutive)))
	assert.False(t, errors.Is(err, &Error{Code: EmptyResultsList}))
	assert.Equal(t, "EmptyResultsList", New("", EmptyResultsList).Error())
}
