package canvas

import (
	"fmt"

	"github.com/filegrind/iiifpres-go/content"
	"github.com/filegrind/iiifpres-go/fragment"
)

// PaintTarget is the space content is checked against: the whole canvas, or
// the part of it a selector picks out.
type PaintTarget struct {
	CanvasID string
	Kind     content.Kind
	Width    int
	Height   int
	Duration float64
	Selector *fragment.Selector
}

// ResolveTarget checks sel against the canvas and returns the resulting
// target. With no selector the target is the whole canvas. Failures are
// *SelectorOutOfBoundsError.
func ResolveTarget(c *Canvas, sel *fragment.Selector) (PaintTarget, error) {
	if sel == nil {
		return PaintTarget{
			CanvasID: c.id,
			Kind:     c.ExtentKind(),
			Width:    c.width,
			Height:   c.height,
			Duration: c.duration,
		}, nil
	}
	if sel.IsZero() {
		return PaintTarget{}, NewArgumentError("selector", "selector is empty")
	}

	canvasKind := c.ExtentKind()
	selector := *sel
	target := PaintTarget{CanvasID: c.id, Kind: selector.Kind(), Selector: &selector}

	if region, ok := sel.Region(); ok {
		if !canvasKind.HasSpatial() {
			return PaintTarget{}, newSelectorKindError(c.id, sel.String(), content.KindSpatial)
		}
		if !region.Within(c.width, c.height) {
			return PaintTarget{}, newSelectorExtentError(c.id, sel.String(), content.KindSpatial,
				fmt.Sprintf("region %d,%d,%d,%d does not fit in %dx%d",
					region.X, region.Y, region.W, region.H, c.width, c.height))
		}
		target.Width, target.Height = region.W, region.H
	}

	if interval, ok := sel.Interval(); ok {
		if !canvasKind.HasTemporal() {
			return PaintTarget{}, newSelectorKindError(c.id, sel.String(), content.KindTemporal)
		}
		if !interval.Within(c.duration) {
			return PaintTarget{}, newSelectorExtentError(c.id, sel.String(), content.KindTemporal,
				fmt.Sprintf("interval %v-%v does not fit in %v seconds", interval.Start, interval.End, c.duration))
		}
		target.Duration = interval.Duration()
	}

	return target, nil
}

// Check checks one resource against the target. Declared sizes are only
// compared along dimensions the target offers. Failures are
// *ContentOutOfBoundsError.
func (t PaintTarget) Check(r *content.Resource) error {
	if !t.Kind.Covers(r.RequiredKind()) {
		return newContentKindError(t.CanvasID, r, t.Kind)
	}

	if t.Kind.HasSpatial() {
		if w, h, ok := r.DeclaredSize(); ok && (w > t.Width || h > t.Height) {
			return newContentExtentError(t.CanvasID, r, content.KindSpatial,
				fmt.Sprintf("declared size %dx%d exceeds %dx%d", w, h, t.Width, t.Height))
		}
	}
	if t.Kind.HasTemporal() {
		if d, ok := r.DeclaredDuration(); ok && d > t.Duration {
			return newContentExtentError(t.CanvasID, r, content.KindTemporal,
				fmt.Sprintf("declared duration %v exceeds %v", d, t.Duration))
		}
	}
	return nil
}

// Validate runs both bounds phases: it resolves the target for sel and then
// checks every resource against it. nil resources are Choice placeholders
// and are skipped. Nothing is modified.
func Validate(c *Canvas, sel *fragment.Selector, resources ...*content.Resource) (PaintTarget, error) {
	target, err := ResolveTarget(c, sel)
	if err != nil {
		return PaintTarget{}, err
	}
	for _, r := range resources {
		if r == nil {
			continue
		}
		if err := target.Check(r); err != nil {
			return PaintTarget{}, err
		}
	}
	return target, nil
}
