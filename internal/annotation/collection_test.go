package annotation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-annotator/pkg/geometry"
)

func TestCollectionAppendAndPage(t *testing.T) {
	c := NewCollection()
	a := validDraw()
	b := validDraw()
	require.NoError(t, c.Append(a))
	require.NoError(t, c.Append(b))

	got := c.Page(0)
	require.Len(t, got, 2)
	if diff := cmp.Diff(a, got[0]); diff != "" {
		t.Errorf("stored record mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, b.ID, got[1].ID)
	assert.Empty(t, c.Page(1))
}

func TestCollectionAppendValidates(t *testing.T) {
	c := NewCollection()
	bad := New(KindDraw, 0, geometry.NewRect(0, 0, 1, 1))
	assert.Error(t, c.Append(bad))
	assert.Zero(t, c.Count(0))
}

func TestCollectionUpdateReplacesRecord(t *testing.T) {
	c := NewCollection()
	a := validDraw()
	require.NoError(t, c.Append(a))

	updated, err := c.Update(0, a.ID, func(rec *Annotation) {
		rec.Rect.X = 42
	})
	require.NoError(t, err)
	assert.Equal(t, 42.0, updated.Rect.X)

	stored, ok := c.Get(0, a.ID)
	require.True(t, ok)
	assert.Equal(t, 42.0, stored.Rect.X)
}

func TestCollectionUpdateRejectsInvalidResult(t *testing.T) {
	c := NewCollection()
	a := validDraw()
	require.NoError(t, c.Append(a))

	_, err := c.Update(0, a.ID, func(rec *Annotation) {
		rec.Rect.Width = -5
	})
	require.Error(t, err)

	// The stored record is untouched.
	stored, ok := c.Get(0, a.ID)
	require.True(t, ok)
	assert.Equal(t, a.Rect, stored.Rect)
}

func TestCollectionUpdateUnknownID(t *testing.T) {
	c := NewCollection()
	_, err := c.Update(0, uuid.New(), func(*Annotation) {})
	assert.Error(t, err)
}

func TestCollectionRemove(t *testing.T) {
	c := NewCollection()
	a := validDraw()
	require.NoError(t, c.Append(a))

	assert.True(t, c.Remove(0, a.ID))
	assert.False(t, c.Remove(0, a.ID))
	assert.Zero(t, c.Count(0))
}

func TestCollectionPageReturnsCopy(t *testing.T) {
	c := NewCollection()
	a := validDraw()
	require.NoError(t, c.Append(a))

	got := c.Page(0)
	got[0].Rect.X = 999

	stored, _ := c.Get(0, a.ID)
	assert.Equal(t, a.Rect.X, stored.Rect.X)
}
