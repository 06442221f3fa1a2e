package canvas

import (
	"fmt"

	"github.com/filegrind/iiifpres-go/content"
	"github.com/filegrind/iiifpres-go/fragment"
	"github.com/rs/zerolog"
)

// Request describes one paint or supplement call
type Request struct {
	Motivation Motivation
	// Selector limits the target to part of the canvas; nil targets the
	// whole canvas
	Selector *fragment.Selector
	// Content holds the resources to associate. More than one produces a
	// Choice body; nil entries are placeholders.
	Content  []*content.Resource
	TimeMode TimeMode
}

// Painter validates content against canvases and records the resulting
// annotations. It holds no canvas state and may be reused across canvases.
type Painter struct {
	minter Minter
	logger zerolog.Logger
}

// PainterOption configures a Painter
type PainterOption func(*Painter)

// WithLogger sets the logger used for paint decisions
func WithLogger(logger zerolog.Logger) PainterOption {
	return func(p *Painter) {
		p.logger = logger
	}
}

// NewPainter creates a painter that takes ids from minter
func NewPainter(minter Minter, opts ...PainterOption) *Painter {
	p := &Painter{
		minter: minter,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Paint validates req against c and, on success, appends a new page with a
// single annotation to the canvas list for req.Motivation. On any error the
// canvas is left unchanged.
func (p *Painter) Paint(c *Canvas, req Request) (*Annotation, error) {
	if c == nil {
		return nil, NewArgumentError("canvas", "canvas is nil")
	}
	if p.minter == nil {
		return nil, NewArgumentError("minter", "painter has no minter")
	}
	if !req.Motivation.IsValid() {
		return nil, NewArgumentError("motivation", "unsupported motivation '%s'", req.Motivation)
	}
	if !req.TimeMode.IsValid() {
		return nil, NewArgumentError("timeMode", "unknown time mode '%s'", req.TimeMode)
	}

	body, err := PackBody(req.Content...)
	if err != nil {
		return nil, err
	}
	target, err := NewTarget(c.id, req.Selector)
	if err != nil {
		return nil, err
	}
	if _, err := Validate(c, req.Selector, req.Content...); err != nil {
		p.logger.Debug().
			Err(err).
			Str("canvas", c.id).
			Str("motivation", string(req.Motivation)).
			Str("target", target.String()).
			Msg("paint rejected")
		return nil, err
	}

	pageID, annotationID, err := mintIDs(p.minter, c.id)
	if err != nil {
		return nil, fmt.Errorf("failed to mint ids for canvas '%s': %w", c.id, err)
	}

	annotation := &Annotation{
		id:         annotationID,
		motivation: req.Motivation,
		timeMode:   req.TimeMode,
		body:       body,
		target:     target,
	}
	c.appendPage(req.Motivation, &AnnotationPage{id: pageID, items: []*Annotation{annotation}})

	p.logger.Debug().
		Str("canvas", c.id).
		Str("annotation", annotationID).
		Str("page", pageID).
		Str("motivation", string(req.Motivation)).
		Str("target", target.String()).
		Int("resources", len(body.Resources())).
		Msg("painted")
	return annotation, nil
}

// PaintWith paints resources onto c, or onto the part of c that sel picks
// out when sel is not nil
func (p *Painter) PaintWith(c *Canvas, sel *fragment.Selector, resources ...*content.Resource) (*Annotation, error) {
	return p.Paint(c, Request{Motivation: MotivationPainting, Selector: sel, Content: resources})
}

// PaintWithFragment is PaintWith with the selector given as a media
// fragment string
func (p *Painter) PaintWithFragment(c *Canvas, frag string, resources ...*content.Resource) (*Annotation, error) {
	sel, err := fragment.Parse(frag)
	if err != nil {
		return nil, err
	}
	return p.PaintWith(c, &sel, resources...)
}

// SupplementWith associates supplementing resources with c, or with the
// part of c that sel picks out. The same bounds checks as painting apply.
func (p *Painter) SupplementWith(c *Canvas, sel *fragment.Selector, resources ...*content.Resource) (*Annotation, error) {
	return p.Paint(c, Request{Motivation: MotivationSupplementing, Selector: sel, Content: resources})
}

// SupplementWithFragment is SupplementWith with the selector given as a
// media fragment string
func (p *Painter) SupplementWithFragment(c *Canvas, frag string, resources ...*content.Resource) (*Annotation, error) {
	sel, err := fragment.Parse(frag)
	if err != nil {
		return nil, err
	}
	return p.SupplementWith(c, &sel, resources...)
}

// PaintWith paints resources onto the canvas using ids from minter
func (c *Canvas) PaintWith(minter Minter, sel *fragment.Selector, resources ...*content.Resource) (*Annotation, error) {
	return NewPainter(minter).PaintWith(c, sel, resources...)
}

// SupplementWith associates supplementing resources with the canvas using
// ids from minter
func (c *Canvas) SupplementWith(minter Minter, sel *fragment.Selector, resources ...*content.Resource) (*Annotation, error) {
	return NewPainter(minter).SupplementWith(c, sel, resources...)
}
