package editor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-annotator/internal/annotation"
	"doc-annotator/internal/config"
	"doc-annotator/internal/document"
	"doc-annotator/internal/tools"
	"doc-annotator/internal/viewport"
	"doc-annotator/pkg/geometry"
)

// laidViewport is a 612x792 page at zoom 1, rotation 0, with the
// surface at the window origin: screen (x, y) maps to document
// (x, 792-y).
func laidViewport() viewport.State {
	return viewport.State{
		Zoom:             1,
		DevicePixelRatio: 1,
		RenderScale:      2,
		SurfaceSize:      geometry.NewSize(612, 792),
		BufferSize:       geometry.NewSize(1224, 1584),
		PageWidth:        612,
		PageHeight:       792,
	}
}

func testSession() *Session {
	s := NewSession(document.NewBlankEngine(3, 612, 792), config.Default(), nil)
	s.SetViewport(laidViewport())
	return s
}

func TestPointerGestureCreatesAnnotation(t *testing.T) {
	s := testSession()
	var added []annotation.Annotation
	s.On(EventAnnotationAdded, func(data interface{}) {
		added = append(added, data.(annotation.Annotation))
	})

	s.SetTool(tools.KindShape)
	s.HandlePointerDown(100, 100, tools.Modifiers{})
	s.HandlePointerMove(200, 200, tools.Modifiers{})
	require.NoError(t, s.HandlePointerUp(200, 200, tools.Modifiers{}))

	require.Len(t, added, 1)
	assert.Equal(t, geometry.NewRect(100, 592, 100, 100), added[0].Rect)
	assert.Equal(t, 1, s.Collection().Count(0))
}

func TestUnlaidViewportProducesNothing(t *testing.T) {
	s := NewSession(document.NewBlankEngine(1, 612, 792), config.Default(), nil)
	s.SetTool(tools.KindShape)

	s.HandlePointerDown(100, 100, tools.Modifiers{})
	s.HandlePointerMove(200, 200, tools.Modifiers{})
	require.NoError(t, s.HandlePointerUp(200, 200, tools.Modifiers{}))

	assert.Equal(t, 0, s.Collection().Count(0))
}

func TestGestureKeepsViewportSnapshot(t *testing.T) {
	s := testSession()
	s.SetTool(tools.KindShape)

	s.HandlePointerDown(100, 100, tools.Modifiers{})
	// Zooming mid-gesture must not change how the remaining events of
	// this gesture convert.
	zoomed := laidViewport()
	zoomed.Zoom = 2
	zoomed.SurfaceSize = geometry.NewSize(1224, 1584)
	s.SetViewport(zoomed)
	s.HandlePointerMove(200, 200, tools.Modifiers{})
	require.NoError(t, s.HandlePointerUp(200, 200, tools.Modifiers{}))

	annots := s.Collection().Page(0)
	require.Len(t, annots, 1)
	assert.Equal(t, geometry.NewRect(100, 592, 100, 100), annots[0].Rect)
}

func TestZoomClamped(t *testing.T) {
	s := testSession()

	s.SetZoom(100)
	assert.InDelta(t, 5, s.Viewport().Zoom, 1e-9)
	s.SetZoom(0.01)
	assert.InDelta(t, 0.25, s.Viewport().Zoom, 1e-9)
}

func TestToolSwitchCancelsGesture(t *testing.T) {
	s := testSession()
	s.SetTool(tools.KindDraw)
	s.HandlePointerDown(100, 100, tools.Modifiers{})
	require.NotEqual(t, tools.PreviewNone, s.Preview().Shape)

	s.SetTool(tools.KindShape)
	assert.Equal(t, 0, s.Collection().Count(0))
	assert.Equal(t, tools.KindShape, s.ActiveTool())
}

func TestCommitTextKeepsBox(t *testing.T) {
	s := testSession()
	var selected []uuid.UUID
	s.On(EventSelectionChanged, func(data interface{}) {
		selected = append(selected, data.(uuid.UUID))
	})

	s.SetTool(tools.KindTextBox)
	s.HandlePointerDown(100, 100, tools.Modifiers{})
	require.NoError(t, s.HandlePointerUp(100, 100, tools.Modifiers{}))

	annots := s.Collection().Page(0)
	require.Len(t, annots, 1)
	id := annots[0].ID
	require.Equal(t, []uuid.UUID{id}, selected)
	require.True(t, annots[0].TextBox.Provisional)

	require.NoError(t, s.CommitText(0, id, "reviewed"))
	got, ok := s.Collection().Get(0, id)
	require.True(t, ok)
	assert.Equal(t, "reviewed", got.TextBox.Content)
	assert.False(t, got.TextBox.Provisional)
}

func TestCommitEmptyTextRemovesProvisionalBox(t *testing.T) {
	s := testSession()
	var removed []uuid.UUID
	s.On(EventAnnotationRemoved, func(data interface{}) {
		removed = append(removed, data.(uuid.UUID))
	})

	s.SetTool(tools.KindTextBox)
	s.HandlePointerDown(100, 100, tools.Modifiers{})
	require.NoError(t, s.HandlePointerUp(100, 100, tools.Modifiers{}))
	annots := s.Collection().Page(0)
	require.Len(t, annots, 1)

	require.NoError(t, s.CommitText(0, annots[0].ID, "   "))
	assert.Equal(t, 0, s.Collection().Count(0))
	assert.Equal(t, []uuid.UUID{annots[0].ID}, removed)
	assert.Equal(t, uuid.Nil, s.Tracker().Selected())
}

func TestCommitTextRejectsWrongKind(t *testing.T) {
	s := testSession()
	a := annotation.New(annotation.KindRedact, 0, geometry.NewRect(10, 10, 50, 50))
	a.Redact = &annotation.Redact{}
	require.NoError(t, s.Collection().Append(a))

	assert.Error(t, s.CommitText(0, a.ID, "text"))
}

func TestSetPageClearsSelection(t *testing.T) {
	s := testSession()
	s.SetTool(tools.KindTextBox)
	s.HandlePointerDown(100, 100, tools.Modifiers{})
	require.NoError(t, s.HandlePointerUp(100, 100, tools.Modifiers{}))
	require.NotEqual(t, uuid.Nil, s.Tracker().Selected())

	var pages []int
	s.On(EventPageChanged, func(data interface{}) {
		pages = append(pages, data.(int))
	})
	s.SetPage(1)

	assert.Equal(t, uuid.Nil, s.Tracker().Selected())
	assert.Equal(t, []int{1}, pages)
	assert.Equal(t, 1, s.Page())
}

func TestRemoveSelected(t *testing.T) {
	s := testSession()
	s.SetTool(tools.KindTextBox)
	s.HandlePointerDown(100, 100, tools.Modifiers{})
	require.NoError(t, s.HandlePointerUp(100, 100, tools.Modifiers{}))
	require.Equal(t, 1, s.Collection().Count(0))

	assert.True(t, s.RemoveSelected())
	assert.Equal(t, 0, s.Collection().Count(0))
	assert.False(t, s.RemoveSelected())
}

func TestSelectionFlowThroughSession(t *testing.T) {
	s := testSession()
	a := annotation.New(annotation.KindTextBox, 0, geometry.NewRect(100, 592, 100, 100))
	a.TextBox = &annotation.TextBox{Content: "note", FontSize: 14}
	require.NoError(t, s.Collection().Append(a))

	s.SetTool(tools.KindSelect)
	// Screen (150, 150) is document (150, 642), inside the box.
	s.HandlePointerDown(150, 150, tools.Modifiers{})
	require.NoError(t, s.HandlePointerUp(150, 150, tools.Modifiers{}))

	assert.Equal(t, a.ID, s.Tracker().Selected())
}

func TestRenderUsesCurrentRotation(t *testing.T) {
	s := testSession()
	vp := laidViewport()
	vp.Rotation = 90
	vp.SurfaceSize = geometry.NewSize(792, 612)
	vp.BufferSize = geometry.NewSize(1584, 1224)
	s.SetViewport(vp)

	rendered, err := s.Render(context.Background())
	require.NoError(t, err)
	// Rotated render swaps the buffer axes.
	assert.Equal(t, 1584, rendered.Width)
	assert.Equal(t, 1224, rendered.Height)
}

func TestSelectEmitsOncePerChange(t *testing.T) {
	s := testSession()
	a := annotation.New(annotation.KindTextBox, 0, geometry.NewRect(100, 592, 100, 100))
	a.TextBox = &annotation.TextBox{Content: "note", FontSize: 14}
	require.NoError(t, s.Collection().Append(a))

	var changes []uuid.UUID
	s.On(EventSelectionChanged, func(data interface{}) {
		changes = append(changes, data.(uuid.UUID))
	})

	s.Select(a.ID)
	s.Select(a.ID)
	s.Select(uuid.Nil)

	assert.Equal(t, []uuid.UUID{a.ID, uuid.Nil}, changes)
}

func TestUpdateAnnotationEmits(t *testing.T) {
	s := testSession()
	a := annotation.New(annotation.KindTextBox, 0, geometry.NewRect(100, 592, 100, 100))
	a.TextBox = &annotation.TextBox{Content: "draft", FontSize: 14}
	require.NoError(t, s.Collection().Append(a))

	var updated []annotation.Annotation
	s.On(EventAnnotationUpdated, func(data interface{}) {
		updated = append(updated, data.(annotation.Annotation))
	})

	err := s.UpdateAnnotation(0, a.ID, func(a *annotation.Annotation) {
		a.TextBox.Content = "final"
	})
	require.NoError(t, err)

	require.Len(t, updated, 1)
	assert.Equal(t, "final", updated[0].TextBox.Content)

	stored, ok := s.Collection().Get(0, a.ID)
	require.True(t, ok)
	assert.Equal(t, "final", stored.TextBox.Content)
}

func TestUpdateAnnotationUnknownID(t *testing.T) {
	s := testSession()
	err := s.UpdateAnnotation(0, uuid.New(), func(*annotation.Annotation) {})
	assert.Error(t, err)
}
