package annotation

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-annotator/pkg/geometry"
)

func validDraw() Annotation {
	a := New(KindDraw, 0, geometry.NewRect(0, 0, 10, 10))
	a.Draw = &Draw{
		Path:    []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 10}},
		Color:   color.RGBA{R: 255, A: 255},
		Width:   2,
		Opacity: 1,
	}
	return a
}

func TestValidateAcceptsWellFormedRecords(t *testing.T) {
	assert.NoError(t, validDraw().Validate())

	h := New(KindHighlight, 1, geometry.NewRect(0, 0, 50, 12))
	h.Highlight = &Highlight{
		Mode:  HighlightText,
		Quads: []geometry.Quad{geometry.QuadFromRect(geometry.NewRect(0, 0, 50, 12))},
	}
	assert.NoError(t, h.Validate())

	r := New(KindRedact, 2, geometry.NewRect(50, 650, 100, 50))
	r.Redact = &Redact{}
	assert.NoError(t, r.Validate())
}

func TestValidateRejectsMissingPayload(t *testing.T) {
	a := New(KindDraw, 0, geometry.NewRect(0, 0, 10, 10))
	err := a.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing its payload")
}

func TestValidateRejectsShortDrawPath(t *testing.T) {
	a := validDraw()
	a.Draw.Path = a.Draw.Path[:1]
	assert.Error(t, a.Validate())
}

func TestValidateRejectsNonFiniteGeometry(t *testing.T) {
	a := validDraw()
	a.Draw.Path[1].X = math.NaN()
	assert.Error(t, a.Validate())

	b := validDraw()
	b.Rect.Width = math.Inf(1)
	assert.Error(t, b.Validate())
}

func TestValidateRejectsNegativeSize(t *testing.T) {
	a := validDraw()
	a.Rect.Height = -1
	assert.Error(t, a.Validate())
}

func TestValidateArrowNeedsTwoPoints(t *testing.T) {
	a := New(KindShape, 0, geometry.NewRect(0, 0, 20, 20))
	a.Shape = &Shape{Type: ShapeArrow}
	assert.Error(t, a.Validate())

	a.Shape.Points = []geometry.Point2D{{X: 0, Y: 0}, {X: 20, Y: 20}}
	assert.NoError(t, a.Validate())
}

func TestValidateOverlayHighlightNeedsPath(t *testing.T) {
	a := New(KindHighlight, 0, geometry.NewRect(0, 0, 30, 10))
	a.Highlight = &Highlight{
		Mode:  HighlightOverlay,
		Quads: []geometry.Quad{geometry.QuadFromRect(geometry.NewRect(0, 0, 30, 10))},
	}
	assert.Error(t, a.Validate())

	a.Highlight.Path = []geometry.Point2D{{X: 0, Y: 5}, {X: 30, Y: 5}}
	assert.NoError(t, a.Validate())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "draw", KindDraw.String())
	assert.Equal(t, "formField", KindFormField.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
