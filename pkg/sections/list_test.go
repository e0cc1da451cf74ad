package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrissnell/assemblykernel/pkg/assemblyerr"
	"github.com/chrissnell/assemblykernel/pkg/categories"
)

func TestNewSection(t *testing.T) {
	s, err := NewSection(10, 25)
	require.NoError(t, err)
	assert.Equal(t, 15.0, s.Length())
	assert.Equal(t, 17.5, s.Center())

	for _, bad := range [][2]float64{{-1, 5}, {5, 5}, {5, 4}} {
		_, err := NewSection(bad[0], bad[1])
		assert.True(t, assemblyerr.HasCode(err, assemblyerr.FailureMechanismSectionSectionStartEndInvalid), "%v", bad)
	}

	_, err = NewSectionWithCategory(0, 5, categories.SectionCategory{})
	assert.True(t, assemblyerr.HasCode(err, assemblyerr.InvalidCategoryValue))
}

func TestNewListSortsInput(t *testing.T) {
	l, err := NewList("STPH", []Section{{Start: 20, End: 30}, {Start: 0, End: 10}, {Start: 10, End: 20}})
	require.NoError(t, err)

	assert.Equal(t, "STPH", l.Name())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 30.0, l.TotalLength())
	assert.Equal(t, []Section{{0, 10}, {10, 20}, {20, 30}}, l.Sections())
	assert.False(t, l.HasCategories())

	_, err = l.SectionsWithCategory()
	assert.True(t, assemblyerr.HasCode(err, assemblyerr.SectionsWithoutCategory))
}

func TestNewListTolerance(t *testing.T) {
	_, err := NewList("GEKB", []Section{{0, 10}, {10.005, 20}})
	assert.NoError(t, err)

	_, err = NewList("GEKB", []Section{{0.005, 10}, {10, 20}})
	assert.NoError(t, err)
}

func TestNewListValidation(t *testing.T) {
	tests := []struct {
		name  string
		secs  []SectionWithCategory
		codes []assemblyerr.Code
	}{
		{
			name:  "empty",
			codes: []assemblyerr.Code{assemblyerr.EmptyResultsList},
		},
		{
			name: "does not start at zero",
			secs: []SectionWithCategory{
				{Section{5, 10}, categories.Interpretation(categories.InterpretationZero)},
			},
			codes: []assemblyerr.Code{assemblyerr.FailureMechanismSectionSectionStartEndInvalid},
		},
		{
			name: "gap and missing category together",
			secs: []SectionWithCategory{
				{Section{0, 10}, categories.Interpretation(categories.InterpretationZero)},
				{Section{11, 20}, categories.SectionCategory{}},
			},
			codes: []assemblyerr.Code{
				assemblyerr.FailureMechanismSectionsNotConsecutive,
				assemblyerr.SectionsWithoutCategory,
			},
		},
		{
			name: "mixed kinds",
			secs: []SectionWithCategory{
				{Section{0, 10}, categories.Interpretation(categories.InterpretationZero)},
				{Section{10, 20}, categories.Direct(categories.DirectIIv)},
			},
			codes: []assemblyerr.Code{assemblyerr.InputNotTheSameType},
		},
		{
			name: "overlap",
			secs: []SectionWithCategory{
				{Section{0, 10}, categories.Direct(categories.DirectIv)},
				{Section{5, 20}, categories.Direct(categories.DirectIIv)},
			},
			codes: []assemblyerr.Code{assemblyerr.FailureMechanismSectionsNotConsecutive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewListWithCategories("fm", tt.secs)
			require.Error(t, err)
			assert.ElementsMatch(t, tt.codes, assemblyerr.Codes(err))
		})
	}
}

func TestListWithCategories(t *testing.T) {
	l, err := NewListWithCategories("STBI", []SectionWithCategory{
		{Section{0, 10}, categories.Indirect(categories.IndirectFvEt)},
		{Section{10, 20}, categories.Indirect(categories.IndirectNgo)},
	})
	require.NoError(t, err)
	assert.Equal(t, categories.KindIndirect, l.Kind())

	secs, err := l.SectionsWithCategory()
	require.NoError(t, err)
	secs[0].Category = categories.Indirect(categories.IndirectNoResult)

	again, _ := l.SectionsWithCategory()
	assert.Equal(t, categories.Indirect(categories.IndirectFvEt), again[0].Category, "list must not be mutated through a copy")

	s, ok := l.SectionAt(20)
	require.True(t, ok)
	assert.Equal(t, 10.0, s.Start)
	s, ok = l.SectionAt(10)
	require.True(t, ok)
	assert.Equal(t, 10.0, s.Start)
	_, ok = l.SectionAt(21)
	assert.False(t, ok)
}
