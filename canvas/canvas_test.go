package canvas

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/filegrind/iiifpres-go/content"
	"github.com/filegrind/iiifpres-go/fragment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	canvasID = "https://example.org/iiif/book1/canvas/p1"
	image1ID = "https://example.org/iiif/book1/res/page1.jpg"
	image2ID = "https://example.org/iiif/book1/res/page1-alt.jpg"
	sound1ID = "https://example.org/iiif/book1/res/reading.mp3"
	video1ID = "https://example.org/iiif/book1/res/reading.mp4"
	text1ID  = "https://example.org/iiif/book1/res/page1.vtt"

	testWidth    = 480
	testHeight   = 360
	testDuration = 3600.0
)

// counterMinter hands out sequential ids
func counterMinter() Minter {
	n := 0
	return MinterFunc(func() (string, error) {
		n++
		return fmt.Sprintf("https://example.org/iiif/book1/anno/%d", n), nil
	})
}

func newTestCanvas(t *testing.T, width, height int, duration float64) *Canvas {
	t.Helper()
	c, err := NewCanvas(canvasID)
	require.NoError(t, err)
	if width > 0 {
		require.NoError(t, c.SetWidthHeight(width, height))
	}
	if duration > 0 {
		require.NoError(t, c.SetDuration(duration))
	}
	return c
}

func newImage(t *testing.T, id string, width, height int) *content.Resource {
	t.Helper()
	r, err := content.NewImage(id)
	require.NoError(t, err)
	if width > 0 {
		require.NoError(t, r.SetWidthHeight(width, height))
	}
	return r
}

func newSound(t *testing.T, duration float64) *content.Resource {
	t.Helper()
	r, err := content.NewSound(sound1ID)
	require.NoError(t, err)
	if duration > 0 {
		require.NoError(t, r.SetDuration(duration))
	}
	return r
}

func newVideo(t *testing.T, width, height int, duration float64) *content.Resource {
	t.Helper()
	r, err := content.NewVideo(video1ID)
	require.NoError(t, err)
	if width > 0 {
		require.NoError(t, r.SetWidthHeight(width, height))
	}
	if duration > 0 {
		require.NoError(t, r.SetDuration(duration))
	}
	return r
}

func sel(s string) *fragment.Selector {
	parsed := fragment.MustParse(s)
	return &parsed
}

// TEST100: Test extent kind depends only on which dimensions are positive
func Test100_extent_kind(t *testing.T) {
	assert.Equal(t, content.KindNone, ExtentKind(0, 0, 0))
	assert.Equal(t, content.KindNone, ExtentKind(480, 0, 0))
	assert.Equal(t, content.KindSpatial, ExtentKind(480, 360, 0))
	assert.Equal(t, content.KindTemporal, ExtentKind(0, 0, 1.5))
	assert.Equal(t, content.KindSpatioTemporal, ExtentKind(480, 360, 1.5))

	c := newTestCanvas(t, testWidth, testHeight, testDuration)
	assert.Equal(t, c.ExtentKind(), c.ExtentKind())
	assert.Equal(t, content.KindSpatioTemporal, c.ExtentKind())
}

// TEST101: Test canvas setters reject non-positive and non-finite values
func Test101_canvas_setters(t *testing.T) {
	c := newTestCanvas(t, 0, 0, 0)

	for _, dims := range [][2]int{{0, 360}, {480, 0}, {-1, 360}} {
		err := c.SetWidthHeight(dims[0], dims[1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedInput))
	}
	for _, d := range []float64{0, -5, math.Inf(1), math.NaN()} {
		err := c.SetDuration(d)
		require.Error(t, err)
		var argErr *ArgumentError
		assert.True(t, errors.As(err, &argErr))
	}
	assert.Equal(t, content.KindNone, c.ExtentKind())

	_, err := NewCanvas("not a uri")
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

// TEST102: Test painting an image of unspecified size onto a spatial canvas
func Test102_paint_image_whole_canvas(t *testing.T) {
	c := newTestCanvas(t, testWidth, testHeight, 0)

	anno, err := c.PaintWith(counterMinter(), nil, newImage(t, image1ID, 0, 0))
	require.NoError(t, err)

	body, ok := anno.Body().(Single)
	require.True(t, ok)
	assert.Equal(t, image1ID, body.Resource().ID())
	assert.Equal(t, WholeCanvas{CanvasID: canvasID}, anno.Target())
	assert.Equal(t, MotivationPainting, anno.Motivation())

	pages := c.PaintingPages()
	require.Len(t, pages, 1)
	require.Equal(t, 1, pages[0].Len())
	assert.Same(t, anno, pages[0].Annotations()[0])
	assert.Empty(t, c.SupplementingPages())
}

// TEST103: Test a sound fits a temporal canvas until it is longer than it
func Test103_sound_duration_against_canvas(t *testing.T) {
	c := newTestCanvas(t, 0, 0, testDuration)
	minter := counterMinter()

	_, err := c.PaintWith(minter, nil, newSound(t, 300))
	require.NoError(t, err)

	_, err = c.PaintWith(minter, nil, newSound(t, 3601))
	var contentErr *ContentOutOfBoundsError
	require.True(t, errors.As(err, &contentErr), "got %v", err)
	assert.Equal(t, ReasonExceedsExtent, contentErr.Reason)
	assert.Equal(t, content.KindTemporal, contentErr.Dimension)
	assert.Equal(t, sound1ID, contentErr.ResourceID)
	assert.Len(t, c.PaintingPages(), 1)
}

// TEST104: Test any sound is rejected by a canvas with no duration
func Test104_sound_on_spatial_canvas(t *testing.T) {
	c := newTestCanvas(t, testWidth, testHeight, 0)

	_, err := c.PaintWith(counterMinter(), nil, newSound(t, 0))
	var contentErr *ContentOutOfBoundsError
	require.True(t, errors.As(err, &contentErr), "got %v", err)
	assert.Equal(t, ReasonKindUnsupported, contentErr.Reason)
	assert.Equal(t, content.KindTemporal, contentErr.Dimension)
	assert.False(t, errors.Is(err, ErrMalformedInput))
}

// TEST105: Test a region one pixel taller than the canvas is a selector error
func Test105_selector_exceeds_canvas(t *testing.T) {
	c := newTestCanvas(t, testWidth, testHeight, 0)

	_, err := c.PaintWith(counterMinter(), sel("xywh=0,0,480,361"), newImage(t, image1ID, 0, 0))
	var selErr *SelectorOutOfBoundsError
	require.True(t, errors.As(err, &selErr), "got %v", err)
	assert.Equal(t, ReasonExceedsExtent, selErr.Reason)
	assert.Equal(t, "xywh=0,0,480,361", selErr.Selector)
	assert.Empty(t, c.PaintingPages())

	_, err = c.PaintWith(counterMinter(), sel("xywh=9223372036854775807,9223372036854775807,1,1"), newImage(t, image1ID, 0, 0))
	require.True(t, errors.As(err, &selErr), "got %v", err)
	assert.Equal(t, ReasonExceedsExtent, selErr.Reason)
	assert.Empty(t, c.PaintingPages())
}

// TEST106: Test content larger than a valid selector is a content error
func Test106_content_exceeds_selector(t *testing.T) {
	c := newTestCanvas(t, testWidth, testHeight, 0)

	_, err := c.PaintWith(counterMinter(), sel("xywh=0,0,480,360"), newImage(t, image1ID, 480, 361))
	var contentErr *ContentOutOfBoundsError
	require.True(t, errors.As(err, &contentErr), "got %v", err)
	assert.Equal(t, ReasonExceedsExtent, contentErr.Reason)
	assert.Equal(t, content.KindSpatial, contentErr.Dimension)

	// The resolved target is the region, not the canvas
	_, err = c.PaintWith(counterMinter(), sel("xywh=240,180,240,180"), newImage(t, image1ID, 480, 360))
	require.True(t, errors.As(err, &contentErr), "got %v", err)
}

// TEST107: Test painting two images in one call produces an ordered Choice
func Test107_two_images_make_choice(t *testing.T) {
	c := newTestCanvas(t, testWidth, testHeight, 0)
	img1 := newImage(t, image1ID, 0, 0)
	img2 := newImage(t, image2ID, 0, 0)

	anno, err := c.PaintWith(counterMinter(), nil, img1, img2)
	require.NoError(t, err)

	choice, ok := anno.Body().(Choice)
	require.True(t, ok)
	require.Equal(t, 2, choice.Len())
	resources := choice.Resources()
	assert.Equal(t, image1ID, resources[0].ID())
	assert.Equal(t, image2ID, resources[1].ID())
	assert.Len(t, c.PaintingPages(), 1)
}

// TEST108: Test a selector naming a dimension the canvas lacks is a selector error
func Test108_selector_dimension_missing(t *testing.T) {
	cases := []struct {
		name     string
		width    int
		duration float64
		fragment string
		missing  content.Kind
	}{
		{"temporal on spatial", testWidth, 0, "t=0,60", content.KindTemporal},
		{"spatial on temporal", 0, testDuration, "xywh=0,0,480,360", content.KindSpatial},
		{"both on spatial", testWidth, 0, "xywh=0,0,480,360&t=0,60", content.KindTemporal},
		{"both on temporal", 0, testDuration, "xywh=0,0,480,360&t=0,60", content.KindSpatial},
		{"spatial on empty", 0, 0, "xywh=0,0,1,1", content.KindSpatial},
	}
	resources := []*content.Resource{
		newImage(t, image1ID, 0, 0),
		newSound(t, 60),
		newVideo(t, 0, 0, 0),
	}

	for _, tc := range cases {
		for _, r := range resources {
			c := newTestCanvas(t, tc.width, testHeight, tc.duration)
			_, err := c.PaintWith(counterMinter(), sel(tc.fragment), r)

			var selErr *SelectorOutOfBoundsError
			require.True(t, errors.As(err, &selErr), "%s with %s: got %v", tc.name, r, err)
			assert.Equal(t, ReasonKindUnsupported, selErr.Reason, tc.name)
			assert.Equal(t, tc.missing, selErr.Dimension, tc.name)
		}
	}
}

// TEST109: Test resources on fragments of a spatiotemporal canvas
func Test109_fragments_of_spatiotemporal_canvas(t *testing.T) {
	c := newTestCanvas(t, testWidth, testHeight, testDuration)
	minter := counterMinter()

	_, err := c.PaintWith(minter, sel("xywh=0,0,480,360"), newImage(t, image1ID, 480, 360))
	require.NoError(t, err)
	_, err = c.PaintWith(minter, sel("t=0,60"), newSound(t, 60))
	require.NoError(t, err)
	_, err = c.PaintWith(minter, sel("xywh=0,0,480,360&t=0,3600"), newVideo(t, 480, 360, 3600))
	require.NoError(t, err)
	_, err = c.PaintWith(minter, sel("xywh=0,0,480,360&t=3000,3600"), newSound(t, 0))
	require.NoError(t, err)
	assert.Len(t, c.PaintingPages(), 4)

	// The target kind is the selector's kind
	var contentErr *ContentOutOfBoundsError
	_, err = c.PaintWith(minter, sel("t=0,60"), newImage(t, image1ID, 0, 0))
	require.True(t, errors.As(err, &contentErr), "got %v", err)
	assert.Equal(t, ReasonKindUnsupported, contentErr.Reason)
	_, err = c.PaintWith(minter, sel("xywh=0,0,480,360"), newVideo(t, 0, 0, 0))
	require.True(t, errors.As(err, &contentErr), "got %v", err)
	assert.Equal(t, content.KindTemporal, contentErr.Dimension)

	// A sound longer than the selected interval
	_, err = c.PaintWith(minter, sel("t=0,60"), newSound(t, 61))
	require.True(t, errors.As(err, &contentErr), "got %v", err)
	assert.Equal(t, ReasonExceedsExtent, contentErr.Reason)
	assert.Len(t, c.PaintingPages(), 4)
}

// TEST110: Test kindless resources need nothing from their target
func Test110_kindless_resources(t *testing.T) {
	c := newTestCanvas(t, 0, 0, 0)
	text, err := content.NewText(text1ID)
	require.NoError(t, err)

	_, err = c.SupplementWith(counterMinter(), nil, text)
	require.NoError(t, err)
	assert.Len(t, c.SupplementingPages(), 1)

	_, err = c.PaintWith(counterMinter(), nil, newImage(t, image1ID, 0, 0))
	var contentErr *ContentOutOfBoundsError
	assert.True(t, errors.As(err, &contentErr))
}

// TEST111: Test temporal selectors must lie inside the canvas duration
func Test111_temporal_selector_bounds(t *testing.T) {
	c := newTestCanvas(t, 0, 0, 60)
	minter := counterMinter()

	_, err := c.PaintWith(minter, sel("t=0,60"), newSound(t, 0))
	require.NoError(t, err)
	_, err = c.PaintWith(minter, sel("t=30,45.5"), newSound(t, 15.5))
	require.NoError(t, err)

	_, err = c.PaintWith(minter, sel("t=59,60.001"), newSound(t, 0))
	var selErr *SelectorOutOfBoundsError
	require.True(t, errors.As(err, &selErr), "got %v", err)
	assert.Equal(t, ReasonExceedsExtent, selErr.Reason)
	assert.Equal(t, content.KindTemporal, selErr.Dimension)
}

// TEST112: Test a region that fits passes for every region inside it
func Test112_containment_monotonicity(t *testing.T) {
	c := newTestCanvas(t, testWidth, testHeight, testDuration)
	outer := fragment.MustParse("xywh=40,40,400,280&t=100,200")
	_, err := ResolveTarget(c, &outer)
	require.NoError(t, err)

	for x := 40; x < 440; x += 37 {
		for w := 1; x+w <= 440; w += 53 {
			for _, interval := range [][2]float64{{100, 200}, {150, 151}, {199.5, 200}} {
				inner, err := fragment.NewSpatioTemporal(x, 40, w, 280, interval[0], interval[1])
				require.NoError(t, err)
				require.True(t, outer.Contains(inner))
				_, err = ResolveTarget(c, &inner)
				assert.NoError(t, err, inner.String())
			}
		}
	}
}

// TEST113: Test failed paints leave the canvas and minter untouched
func Test113_no_partial_mutation(t *testing.T) {
	c := newTestCanvas(t, testWidth, testHeight, 0)
	minted := 0
	minter := MinterFunc(func() (string, error) {
		minted++
		return fmt.Sprintf("https://example.org/anno/%d", minted), nil
	})

	_, err := c.PaintWith(minter, nil, newImage(t, image1ID, 0, 0), newSound(t, 0))
	require.Error(t, err)
	_, err = c.PaintWith(minter, sel("xywh=0,0,481,1"), newImage(t, image1ID, 0, 0))
	require.Error(t, err)
	_, err = c.PaintWith(minter, nil)
	require.Error(t, err)

	assert.Empty(t, c.PaintingPages())
	assert.Zero(t, minted)
}

// TEST114: Test minting failures are returned and nothing is appended
func Test114_minter_failure(t *testing.T) {
	c := newTestCanvas(t, testWidth, testHeight, 0)
	boom := errors.New("id space exhausted")
	calls := 0
	minter := MinterFunc(func() (string, error) {
		calls++
		if calls == 2 {
			return "", boom
		}
		return "https://example.org/anno/1", nil
	})

	_, err := c.PaintWith(minter, nil, newImage(t, image1ID, 0, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Empty(t, c.PaintingPages())
}

// TEST115: Test each paint call appends its own page in call order
func Test115_page_per_call(t *testing.T) {
	c := newTestCanvas(t, testWidth, testHeight, testDuration)
	minter := counterMinter()

	first, err := c.PaintWith(minter, nil, newImage(t, image1ID, 0, 0))
	require.NoError(t, err)
	second, err := c.PaintWith(minter, nil, newImage(t, image2ID, 0, 0))
	require.NoError(t, err)
	supplement, err := c.SupplementWith(minter, sel("t=0,10"), newSound(t, 0))
	require.NoError(t, err)

	pages := c.PaintingPages()
	require.Len(t, pages, 2)
	assert.Same(t, first, pages[0].Annotations()[0])
	assert.Same(t, second, pages[1].Annotations()[0])
	assert.NotEqual(t, pages[0].ID(), pages[1].ID())

	supplementing := c.SupplementingPages()
	require.Len(t, supplementing, 1)
	assert.Same(t, supplement, supplementing[0].Annotations()[0])
	assert.Equal(t, MotivationSupplementing, supplement.Motivation())

	// Returned slices are copies
	pages[0] = nil
	assert.NotNil(t, c.PaintingPages()[0])
}

// TEST116: Test resources are copied into the body when painted
func Test116_body_is_detached(t *testing.T) {
	c := newTestCanvas(t, testWidth, testHeight, 0)
	img := newImage(t, image1ID, 100, 100)

	anno, err := c.PaintWith(counterMinter(), nil, img)
	require.NoError(t, err)
	require.NoError(t, img.SetWidthHeight(5000, 5000))

	w, _, _ := anno.Body().(Single).Resource().DeclaredSize()
	assert.Equal(t, 100, w)
}
