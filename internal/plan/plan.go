// Package plan reads paint plans: TOML files that describe a canvas and the
// content to paint onto and supplement it with.
package plan

import (
	"fmt"
	"os"

	"github.com/filegrind/iiifpres-go/canvas"
	"github.com/filegrind/iiifpres-go/content"
	"github.com/filegrind/iiifpres-go/fragment"
	"github.com/filegrind/iiifpres-go/id"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Minter names
const (
	MinterNOID = "noid"
	MinterUUID = "uuid"
)

// Canvas describes the canvas to build. An empty ID is minted.
type Canvas struct {
	ID       string  `toml:"id"`
	Label    string  `toml:"label"`
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Duration float64 `toml:"duration"`
}

// Content describes one content resource. Type may be left empty when it can
// be inferred from Format or from the id's file extension.
type Content struct {
	ID       string  `toml:"id"`
	Type     string  `toml:"type"`
	Format   string  `toml:"format"`
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Duration float64 `toml:"duration"`
	// Absent marks a Choice placeholder
	Absent bool `toml:"absent"`
}

// Step is one paint or supplement call
type Step struct {
	Selector string    `toml:"selector"`
	TimeMode string    `toml:"time_mode"`
	Content  []Content `toml:"content"`
}

// Plan is a parsed paint plan
type Plan struct {
	BaseID     string `toml:"base_id"`
	Minter     string `toml:"minter"`
	Seed       int64  `toml:"seed"`
	Canvas     Canvas `toml:"canvas"`
	Paint      []Step `toml:"paint"`
	Supplement []Step `toml:"supplement"`
}

// Load reads, normalizes and validates a plan file
func Load(path string) (*Plan, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plan: %w", err)
	}
	defer file.Close()

	var p Plan
	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	if err := p.normalize(content.DefaultRegistry()); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// NewMinter returns the minter the plan asks for
func (p *Plan) NewMinter(logger zerolog.Logger) canvas.Minter {
	if p.Minter == MinterUUID {
		return id.NewUUIDMinter(p.BaseID)
	}
	opts := []id.Option{id.WithLogger(logger)}
	if p.Seed != 0 {
		opts = append(opts, id.WithSeed(p.Seed))
	}
	if p.Canvas.ID != "" {
		opts = append(opts, id.WithExisting(p.Canvas.ID))
	}
	return id.NewDefaultMinter(p.BaseID, opts...)
}

type canvasMinter interface {
	CanvasID() (string, error)
}

// Apply builds the canvas and runs every paint step, then every supplement
// step, in file order. It stops at the first failing step.
func (p *Plan) Apply(painter *canvas.Painter, minter canvas.Minter) (*canvas.Canvas, error) {
	canvasID := p.Canvas.ID
	if canvasID == "" {
		var err error
		if cm, ok := minter.(canvasMinter); ok {
			canvasID, err = cm.CanvasID()
		} else {
			canvasID, err = minter.Next()
		}
		if err != nil {
			return nil, fmt.Errorf("mint canvas id: %w", err)
		}
	}

	c, err := canvas.NewCanvas(canvasID)
	if err != nil {
		return nil, err
	}
	c.SetLabel(p.Canvas.Label)
	if p.Canvas.Width > 0 || p.Canvas.Height > 0 {
		if err := c.SetWidthHeight(p.Canvas.Width, p.Canvas.Height); err != nil {
			return nil, err
		}
	}
	if p.Canvas.Duration > 0 {
		if err := c.SetDuration(p.Canvas.Duration); err != nil {
			return nil, err
		}
	}

	for i, step := range p.Paint {
		if err := step.apply(painter, c, canvas.MotivationPainting); err != nil {
			return nil, fmt.Errorf("paint[%d]: %w", i, err)
		}
	}
	for i, step := range p.Supplement {
		if err := step.apply(painter, c, canvas.MotivationSupplementing); err != nil {
			return nil, fmt.Errorf("supplement[%d]: %w", i, err)
		}
	}
	return c, nil
}

func (s Step) apply(painter *canvas.Painter, c *canvas.Canvas, motivation canvas.Motivation) error {
	req := canvas.Request{Motivation: motivation, TimeMode: canvas.TimeMode(s.TimeMode)}
	if s.Selector != "" {
		sel, err := fragment.Parse(s.Selector)
		if err != nil {
			return err
		}
		req.Selector = &sel
	}

	for i, item := range s.Content {
		if item.Absent {
			req.Content = append(req.Content, nil)
			continue
		}
		r, err := item.resource()
		if err != nil {
			return fmt.Errorf("content[%d]: %w", i, err)
		}
		req.Content = append(req.Content, r)
	}

	_, err := painter.Paint(c, req)
	return err
}

func (c Content) resource() (*content.Resource, error) {
	r, err := content.NewResource(c.ID, content.Type(c.Type))
	if err != nil {
		return nil, err
	}
	r.SetFormat(c.Format)
	if c.Width > 0 || c.Height > 0 {
		if err := r.SetWidthHeight(c.Width, c.Height); err != nil {
			return nil, err
		}
	}
	if c.Duration > 0 {
		if err := r.SetDuration(c.Duration); err != nil {
			return nil, err
		}
	}
	return r, nil
}
