package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twogether/pkg/apperror"
)

func TestNewDetail(t *testing.T) {
	_, err := NewDetail("", "", false)
	assert.ErrorIs(t, err, apperror.ErrEmptyContent)

	_, err = NewDetail("  ", " \n", false)
	assert.ErrorIs(t, err, apperror.ErrEmptyContent)

	d, err := NewDetail("", "only description", false)
	require.NoError(t, err)
	assert.Equal(t, "only description", d.Description)

	d, err = NewDetail(" title ", "", true)
	require.NoError(t, err)
	assert.Equal(t, "title", d.Title)
	assert.True(t, d.Completed)

	_, err = NewDetail(strings.Repeat("a", MaxTitleLength+1), "", false)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestPerspectiveViewedBy(t *testing.T) {
	assert.Equal(t, PerspectiveMe, PerspectiveMe.ViewedBy(true))
	assert.Equal(t, PerspectivePartner, PerspectiveMe.ViewedBy(false))
	assert.Equal(t, PerspectiveMe, PerspectivePartner.ViewedBy(false))
	assert.Equal(t, PerspectiveUs, PerspectiveUs.ViewedBy(false))

	p, ok := ParsePerspective("partner")
	assert.True(t, ok)
	assert.Equal(t, PerspectivePartner, p)
	_, ok = ParsePerspective("THEM")
	assert.False(t, ok)
}

func TestVisibility(t *testing.T) {
	c := New(1, TypeMemo, Detail{Title: "t"}, PerspectiveMe)
	partner := uint64(1)
	stranger := uint64(3)
	assert.True(t, c.IsVisibleTo(1, nil))
	assert.True(t, c.IsVisibleTo(2, &partner))
	assert.False(t, c.IsVisibleTo(2, nil))
	assert.False(t, c.IsVisibleTo(2, &stranger))
}
