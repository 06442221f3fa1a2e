package canvas

import (
	"fmt"

	"github.com/filegrind/iiifpres-go/content"
	"github.com/filegrind/iiifpres-go/standard"
)

// ErrMalformedInput is matched by every error caused by malformed authoring
// input: bad dimensions, bad fragments, empty or mis-shaped bodies.
var ErrMalformedInput = standard.ErrMalformedInput

// Reason discriminates the two ways a bounds check can fail
type Reason int

const (
	// ReasonKindUnsupported: a dimension is required that is not offered
	ReasonKindUnsupported Reason = iota + 1
	// ReasonExceedsExtent: a value is larger than the space it must fit in
	ReasonExceedsExtent
)

func (r Reason) String() string {
	switch r {
	case ReasonKindUnsupported:
		return "kind unsupported"
	case ReasonExceedsExtent:
		return "exceeds extent"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// ArgumentError reports malformed input to a canvas operation
type ArgumentError struct {
	Field   string
	Message string
}

func (e *ArgumentError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is matches ErrMalformedInput
func (e *ArgumentError) Is(target error) bool {
	return target == standard.ErrMalformedInput
}

// NewArgumentError creates an ArgumentError
func NewArgumentError(field, format string, args ...interface{}) *ArgumentError {
	return &ArgumentError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// SelectorOutOfBoundsError reports a selector that names a dimension the
// canvas does not have, or that reaches outside the canvas.
type SelectorOutOfBoundsError struct {
	Reason    Reason
	CanvasID  string
	Selector  string
	Dimension content.Kind
	Message   string
}

func (e *SelectorOutOfBoundsError) Error() string {
	return e.Message
}

func newSelectorKindError(canvasID, selector string, dim content.Kind) *SelectorOutOfBoundsError {
	return &SelectorOutOfBoundsError{
		Reason:    ReasonKindUnsupported,
		CanvasID:  canvasID,
		Selector:  selector,
		Dimension: dim,
		Message:   fmt.Sprintf("selector '%s' has a %s dimension but canvas '%s' does not", selector, dim, canvasID),
	}
}

func newSelectorExtentError(canvasID, selector string, dim content.Kind, detail string) *SelectorOutOfBoundsError {
	return &SelectorOutOfBoundsError{
		Reason:    ReasonExceedsExtent,
		CanvasID:  canvasID,
		Selector:  selector,
		Dimension: dim,
		Message:   fmt.Sprintf("selector '%s' is outside canvas '%s': %s", selector, canvasID, detail),
	}
}

// ContentOutOfBoundsError reports a content resource that needs a dimension
// the paint target does not offer, or whose declared size or duration is
// larger than the paint target.
type ContentOutOfBoundsError struct {
	Reason     Reason
	CanvasID   string
	ResourceID string
	Dimension  content.Kind
	Message    string
}

func (e *ContentOutOfBoundsError) Error() string {
	return e.Message
}

func newContentKindError(canvasID string, r *content.Resource, target content.Kind) *ContentOutOfBoundsError {
	missing := target.Missing(r.RequiredKind())
	return &ContentOutOfBoundsError{
		Reason:     ReasonKindUnsupported,
		CanvasID:   canvasID,
		ResourceID: r.ID(),
		Dimension:  missing,
		Message: fmt.Sprintf("%s needs a %s extent but the target on canvas '%s' is %s",
			r, missing, canvasID, target),
	}
}

func newContentExtentError(canvasID string, r *content.Resource, dim content.Kind, detail string) *ContentOutOfBoundsError {
	return &ContentOutOfBoundsError{
		Reason:     ReasonExceedsExtent,
		CanvasID:   canvasID,
		ResourceID: r.ID(),
		Dimension:  dim,
		Message:    fmt.Sprintf("%s does not fit its target on canvas '%s': %s", r, canvasID, detail),
	}
}
