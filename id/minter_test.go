package id

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/filegrind/iiifpres-go/canvas"
	"github.com/filegrind/iiifpres-go/content"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestID = "https://example.org/iiif/book1"

// TEST200: Test minted ids follow their templates
func Test200_id_templates(t *testing.T) {
	m := NewDefaultMinter(manifestID + "/")

	id, err := m.AnnotationID()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^`+regexp.QuoteMeta(manifestID)+`/annotations/anno-[0-9a-km-z]{4}$`), id)

	id, err = m.AnnotationPageID(manifestID + "/canvas-x1x0")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^`+regexp.QuoteMeta(manifestID)+`/canvas-x1x0/anno-page-[0-9a-km-z]{4}$`), id)

	id, err = m.CanvasID()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^`+regexp.QuoteMeta(manifestID)+`/canvas-[0-9a-km-z]{4}$`), id)

	id, err = m.Next()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, manifestID+"/annotations/anno-"))
	assert.Equal(t, manifestID, m.Base())
}

// TEST201: Test the same seed yields the same sequence
func Test201_seeded_sequence(t *testing.T) {
	a := NewDefaultMinter(manifestID, WithSeed(42))
	b := NewDefaultMinter(manifestID, WithSeed(42))
	c := NewDefaultMinter(manifestID, WithSeed(43))

	var fromA, fromB, fromC []string
	for i := 0; i < 20; i++ {
		idA, _ := a.Next()
		idB, _ := b.Next()
		idC, _ := c.Next()
		fromA, fromB, fromC = append(fromA, idA), append(fromB, idB), append(fromC, idC)
	}
	assert.Equal(t, fromA, fromB)
	assert.NotEqual(t, fromA, fromC)
}

// TEST202: Test every NOID is minted exactly once before exhaustion
func Test202_exhaustion(t *testing.T) {
	if testing.Short() {
		t.Skip("mints every NOID")
	}
	m := NewDefaultMinter(manifestID, WithSeed(7))
	assert.Equal(t, NoidCount, m.Size())

	seen := make(map[string]struct{}, NoidCount)
	for m.HasNext() {
		id, err := m.CanvasID()
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s after %d", id, len(seen))
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, NoidCount)
	assert.Zero(t, m.Remaining())

	_, err := m.AnnotationID()
	assert.True(t, errors.Is(err, ErrMinterExhausted))
}

// TEST203: Test existing ids are skipped
func Test203_existing_ids_skipped(t *testing.T) {
	probe := NewDefaultMinter(manifestID, WithSeed(99))
	first, err := probe.CanvasID()
	require.NoError(t, err)
	second, err := probe.CanvasID()
	require.NoError(t, err)

	m := NewDefaultMinter(manifestID, WithSeed(99), WithExisting(first, first))
	got, err := m.CanvasID()
	require.NoError(t, err)
	assert.Equal(t, second, got)
	assert.Equal(t, NoidCount-2, m.Remaining())
}

// TEST204: Test ids already on a canvas are registered as existing
func Test204_with_canvas(t *testing.T) {
	c, err := canvas.NewCanvas(manifestID + "/canvas-1")
	require.NoError(t, err)
	require.NoError(t, c.SetWidthHeight(100, 100))
	img, err := content.NewImage("https://example.org/img.jpg")
	require.NoError(t, err)

	m := NewDefaultMinter(manifestID, WithSeed(1))
	_, err = c.PaintWith(m, nil, img)
	require.NoError(t, err)

	ids := CanvasIDs(c)
	require.Len(t, ids, 3)
	assert.Equal(t, c.ID(), ids[0])
	assert.True(t, strings.HasPrefix(ids[1], c.ID()+"/anno-page-"))
	assert.True(t, strings.HasPrefix(ids[2], manifestID+"/annotations/anno-"))

	again := NewDefaultMinter(manifestID, WithSeed(1), WithCanvas(c))
	page, err := again.AnnotationPageID(c.ID())
	require.NoError(t, err)
	assert.NotEqual(t, ids[1], page)
}

// TEST205: Test UUID ids are unique and well formed
func Test205_uuid_minter(t *testing.T) {
	m := NewUUIDMinter(manifestID + "/")

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := m.Next()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(id, manifestID+"/"))
		parsed, err := uuid.Parse(strings.TrimPrefix(id, manifestID+"/"))
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
		assert.False(t, seen[id])
		seen[id] = true
	}
}
