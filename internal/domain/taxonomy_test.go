package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCategory(t *testing.T) {
	section, category, err := LookupCategory("software-hardware", "daws")
	require.NoError(t, err)
	assert.Equal(t, "Essential Software & Hardware Links", section.Name)
	assert.Equal(t, "DAWs (FL Studio, Ableton, Logic)", category.Name)

	_, _, err = LookupCategory("software-hardware", "find-venues")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, KindCategory, nf.Kind)

	_, _, err = LookupCategory("nope", "daws")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, KindSection, nf.Kind)
}

func TestSections_ReturnsCopy(t *testing.T) {
	s := Sections()
	require.Len(t, s, 5)
	s[0].Categories[0].Name = "changed"

	assert.Equal(t, "Discord Setup", Sections()[0].Categories[0].Name)
}

func TestValidateCategory(t *testing.T) {
	for _, s := range Sections() {
		for _, c := range s.Categories {
			assert.NoError(t, ValidateCategory(s.Key, c.Key), "%s/%s", s.Key, c.Key)
		}
	}

	var vErr *ValidationError
	require.ErrorAs(t, ValidateCategory("local-performance", "daws"), &vErr)
	assert.Equal(t, "category", vErr.Field)
}
