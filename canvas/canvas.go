// Package canvas paints content resources onto IIIF canvases.
//
// A canvas has an optional spatial extent (width and height) and an
// optional temporal extent (duration). Painting checks a resource against
// the canvas, or against a media fragment of it, in two phases: the
// fragment must fit the canvas (SelectorOutOfBoundsError), then the
// resource must fit the resolved target (ContentOutOfBoundsError). A
// successful paint appends a new annotation page holding one annotation.
// Nothing is appended when a check fails.
//
// A Canvas is not safe for concurrent use.
package canvas

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/filegrind/iiifpres-go/content"
	"github.com/filegrind/iiifpres-go/standard"
)

// Canvas is a virtual container with optional dimensions onto which content
// is painted. Its page lists only grow, through painting, supplementing and
// decoding.
type Canvas struct {
	id       string
	label    string
	width    int
	height   int
	duration float64

	paintingPages      []*AnnotationPage
	supplementingPages []*AnnotationPage
}

// NewCanvas creates a canvas with no extent
func NewCanvas(id string) (*Canvas, error) {
	if err := content.CheckID(id); err != nil {
		return nil, NewArgumentError(standard.KeyID, "canvas id: %v", err)
	}
	return &Canvas{id: id}, nil
}

func (c *Canvas) ID() string        { return c.id }
func (c *Canvas) Label() string     { return c.label }
func (c *Canvas) Width() int        { return c.width }
func (c *Canvas) Height() int       { return c.height }
func (c *Canvas) Duration() float64 { return c.duration }

// SetLabel sets the canvas label
func (c *Canvas) SetLabel(label string) *Canvas {
	c.label = label
	return c
}

// SetWidthHeight gives the canvas a spatial extent. Both values must be
// positive.
func (c *Canvas) SetWidthHeight(width, height int) error {
	if width <= 0 || height <= 0 {
		return NewArgumentError("width/height", "canvas '%s' width and height must be positive, got %dx%d", c.id, width, height)
	}
	c.width = width
	c.height = height
	return nil
}

// SetDuration gives the canvas a temporal extent in seconds. It must be
// positive and finite.
func (c *Canvas) SetDuration(duration float64) error {
	if !(duration > 0) || math.IsInf(duration, 0) {
		return NewArgumentError(standard.KeyDuration, "canvas '%s' duration must be positive and finite, got %v", c.id, duration)
	}
	c.duration = duration
	return nil
}

// ExtentKind returns the dimensions the canvas has
func (c *Canvas) ExtentKind() content.Kind {
	return ExtentKind(c.width, c.height, c.duration)
}

// PaintingPages returns a copy of the canvas's painting pages in order
func (c *Canvas) PaintingPages() []*AnnotationPage {
	return copyPages(c.paintingPages)
}

// SupplementingPages returns a copy of the canvas's supplementing pages in
// order
func (c *Canvas) SupplementingPages() []*AnnotationPage {
	return copyPages(c.supplementingPages)
}

func copyPages(pages []*AnnotationPage) []*AnnotationPage {
	out := make([]*AnnotationPage, len(pages))
	copy(out, pages)
	return out
}

func (c *Canvas) appendPage(m Motivation, page *AnnotationPage) {
	switch m {
	case MotivationPainting:
		c.paintingPages = append(c.paintingPages, page)
	case MotivationSupplementing:
		c.supplementingPages = append(c.supplementingPages, page)
	}
}

func (c *Canvas) String() string {
	return fmt.Sprintf("Canvas <%s> %s", c.id, c.ExtentKind())
}

type canvasJSON struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Label       string            `json:"label,omitempty"`
	Height      int               `json:"height,omitempty"`
	Width       int               `json:"width,omitempty"`
	Duration    float64           `json:"duration,omitempty"`
	Items       []*AnnotationPage `json:"items,omitempty"`
	Annotations []*AnnotationPage `json:"annotations,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (c *Canvas) MarshalJSON() ([]byte, error) {
	return json.Marshal(canvasJSON{
		ID:          c.id,
		Type:        standard.TypeCanvas,
		Label:       c.label,
		Height:      c.height,
		Width:       c.width,
		Duration:    c.duration,
		Items:       c.paintingPages,
		Annotations: c.supplementingPages,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Dimensions are checked as by
// the setters and every annotation must carry the motivation of the list it
// appears in. Stored annotations are not re-checked against the canvas
// bounds.
func (c *Canvas) UnmarshalJSON(data []byte) error {
	var raw canvasJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != standard.TypeCanvas {
		return NewArgumentError(standard.KeyType, "expected %s, got '%s'", standard.TypeCanvas, raw.Type)
	}

	decoded, err := NewCanvas(raw.ID)
	if err != nil {
		return err
	}
	decoded.label = raw.Label
	if raw.Width != 0 || raw.Height != 0 {
		if err := decoded.SetWidthHeight(raw.Width, raw.Height); err != nil {
			return err
		}
	}
	if raw.Duration != 0 {
		if err := decoded.SetDuration(raw.Duration); err != nil {
			return err
		}
	}

	if err := checkPageMotivation(raw.Items, MotivationPainting, standard.KeyItems); err != nil {
		return err
	}
	if err := checkPageMotivation(raw.Annotations, MotivationSupplementing, standard.KeyAnnotations); err != nil {
		return err
	}
	decoded.paintingPages = raw.Items
	decoded.supplementingPages = raw.Annotations

	*c = *decoded
	return nil
}

func checkPageMotivation(pages []*AnnotationPage, want Motivation, field string) error {
	for i, page := range pages {
		if page == nil {
			return NewArgumentError(field, "page %d is null", i)
		}
		for _, a := range page.items {
			if a.motivation != want {
				return NewArgumentError(field, "annotation '%s' on page '%s' is %s, expected %s",
					a.id, page.id, a.motivation, want)
			}
		}
	}
	return nil
}
