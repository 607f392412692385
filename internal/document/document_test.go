package document

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-annotator/pkg/geometry"
)

func TestFlipToEngine(t *testing.T) {
	// A drag from (50,700) to (150,650) on a 792-point page becomes
	// x=50 w=100 h=50 with top = 792-700 = 92.
	r := geometry.RectFromCorners(
		geometry.Point2D{X: 50, Y: 700},
		geometry.Point2D{X: 150, Y: 650},
	)
	flipped := FlipToEngine(r, 792)
	assert.Equal(t, TopLeftRect{X: 50, Y: 92, Width: 100, Height: 50}, flipped)
}

// countingEngine wraps BlankEngine and counts renders, with an
// injectable render failure.
type countingEngine struct {
	*BlankEngine
	renders   int
	renderErr error
}

func (e *countingEngine) RenderPage(ctx context.Context, page int, scale float64, rotation int) (*Rendered, error) {
	e.renders++
	if e.renderErr != nil {
		return nil, e.renderErr
	}
	return e.BlankEngine.RenderPage(ctx, page, scale, rotation)
}

func TestRenderCacheMemoizes(t *testing.T) {
	eng := &countingEngine{BlankEngine: NewBlankEngine(3, 612, 792)}
	cache := NewRenderCache(eng, 2)

	ctx := context.Background()
	first, err := cache.Render(ctx, 0, 0)
	require.NoError(t, err)
	second, err := cache.Render(ctx, 0, 0)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, eng.renders)

	// A different rotation is a separate entry.
	_, err = cache.Render(ctx, 0, 90)
	require.NoError(t, err)
	assert.Equal(t, 2, eng.renders)
}

func TestRenderCacheInvalidate(t *testing.T) {
	eng := &countingEngine{BlankEngine: NewBlankEngine(3, 612, 792)}
	cache := NewRenderCache(eng, 2)
	ctx := context.Background()

	_, err := cache.Render(ctx, 0, 0)
	require.NoError(t, err)
	_, err = cache.Render(ctx, 1, 0)
	require.NoError(t, err)

	cache.Invalidate(0)
	_, err = cache.Render(ctx, 0, 0)
	require.NoError(t, err)
	_, err = cache.Render(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, eng.renders)

	cache.InvalidateAll()
	_, err = cache.Render(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, eng.renders)
}

func TestRenderCacheReloadSurvivesRenderFailure(t *testing.T) {
	eng := &countingEngine{BlankEngine: NewBlankEngine(1, 612, 792)}
	cache := NewRenderCache(eng, 2)
	ctx := context.Background()

	_, err := cache.Render(ctx, 0, 0)
	require.NoError(t, err)

	eng.renderErr = errors.New("engine unavailable")
	rendered := cache.Reload(ctx, 0, 0)
	assert.Nil(t, rendered)

	// The stale raster must not come back from the cache.
	eng.renderErr = nil
	fresh, err := cache.Render(ctx, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, fresh)
	assert.Equal(t, 3, eng.renders)
}

func TestBlankEngineRenderDimensions(t *testing.T) {
	eng := NewBlankEngine(1, 612, 792)
	ctx := context.Background()

	rendered, err := eng.RenderPage(ctx, 0, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 1224, rendered.Width)
	assert.Equal(t, 1584, rendered.Height)
	assert.Equal(t, 612.0, rendered.PageWidth)

	rotated, err := eng.RenderPage(ctx, 0, 2, 90)
	require.NoError(t, err)
	assert.Equal(t, 1584, rotated.Width)
	assert.Equal(t, 1224, rotated.Height)
}

func TestBlankEngineRedactionPaintsPage(t *testing.T) {
	eng := NewBlankEngine(1, 100, 100)
	ctx := context.Background()

	require.NoError(t, eng.Redact(ctx, 0, TopLeftRect{X: 10, Y: 10, Width: 20, Height: 20}))
	require.Len(t, eng.Redactions(0), 1)

	rendered, err := eng.RenderPage(ctx, 0, 1, 0)
	require.NoError(t, err)
	r, g, b, _ := rendered.Image.At(15, 15).RGBA()
	assert.Zero(t, r+g+b, "redacted region should be black")
	assert.NotEqual(t, image.Point{}, rendered.Image.Bounds().Max)
}

func TestBlankEngineTextQueries(t *testing.T) {
	eng := NewBlankEngine(1, 612, 792)
	ctx := context.Background()

	_, err := eng.TextInRegion(ctx, 0, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 100, Y: 100})
	assert.ErrorIs(t, err, ErrNoText)

	eng.SetSpans(0, []TextSpan{
		{Text: "hello", Bounds: geometry.NewRect(10, 700, 50, 12)},
	})
	quads, err := eng.TextInRegion(ctx, 0, geometry.Point2D{X: 0, Y: 690}, geometry.Point2D{X: 100, Y: 720})
	require.NoError(t, err)
	assert.Len(t, quads, 1)

	_, err = eng.TextLayout(ctx, 5)
	assert.Error(t, err)
}
