package canvas

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/filegrind/iiifpres-go/fragment"
	"github.com/filegrind/iiifpres-go/standard"
)

// Target is where an annotation is placed: either a whole canvas or a
// fragment of one. The set of implementations is closed.
type Target interface {
	// Source returns the id of the canvas being targeted
	Source() string
	// Fragment returns the selector, if the target is part of the canvas
	Fragment() (fragment.Selector, bool)
	// String returns the target as a single URI, with any selector as
	// the fragment part
	String() string

	isTarget()
}

// WholeCanvas targets an entire canvas. It serializes as the bare id.
type WholeCanvas struct {
	CanvasID string
}

func (WholeCanvas) isTarget() {}

// Source returns the canvas id
func (t WholeCanvas) Source() string { return t.CanvasID }

// Fragment always reports false
func (t WholeCanvas) Fragment() (fragment.Selector, bool) { return fragment.Selector{}, false }

func (t WholeCanvas) String() string { return t.CanvasID }

// MarshalJSON implements json.Marshaler
func (t WholeCanvas) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.CanvasID)
}

// SpecificResource targets the part of a canvas picked out by a media
// fragment selector.
type SpecificResource struct {
	SourceID string
	Selector fragment.Selector
}

func (SpecificResource) isTarget() {}

// Source returns the canvas id
func (t SpecificResource) Source() string { return t.SourceID }

// Fragment returns the selector
func (t SpecificResource) Fragment() (fragment.Selector, bool) { return t.Selector, true }

func (t SpecificResource) String() string {
	return t.SourceID + "#" + t.Selector.String()
}

type specificResourceJSON struct {
	Type     string            `json:"type"`
	Source   string            `json:"source"`
	Selector fragment.Selector `json:"selector"`
}

// MarshalJSON implements json.Marshaler
func (t SpecificResource) MarshalJSON() ([]byte, error) {
	return json.Marshal(specificResourceJSON{
		Type:     standard.TypeSpecificResource,
		Source:   t.SourceID,
		Selector: t.Selector,
	})
}

// NewTarget returns WholeCanvas when sel is nil and SpecificResource
// otherwise. A non-nil zero selector is rejected.
func NewTarget(canvasID string, sel *fragment.Selector) (Target, error) {
	if sel == nil {
		return WholeCanvas{CanvasID: canvasID}, nil
	}
	if sel.IsZero() {
		return nil, NewArgumentError(standard.KeySelector, "selector is empty")
	}
	return SpecificResource{SourceID: canvasID, Selector: *sel}, nil
}

// decodeTarget accepts a bare canvas id, a canvas id with a media fragment
// ("…#xywh=…"), or a SpecificResource object.
func decodeTarget(data []byte) (Target, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, NewArgumentError(standard.KeyTarget, "annotation has no target")
	}

	if data[0] == '"' {
		var uri string
		if err := json.Unmarshal(data, &uri); err != nil {
			return nil, err
		}
		source, frag, found := strings.Cut(uri, "#")
		if source == "" {
			return nil, NewArgumentError(standard.KeyTarget, "target '%s' has no canvas id", uri)
		}
		if !found {
			return WholeCanvas{CanvasID: source}, nil
		}
		sel, err := fragment.Parse(frag)
		if err != nil {
			return nil, err
		}
		return SpecificResource{SourceID: source, Selector: sel}, nil
	}

	var raw specificResourceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Type != standard.TypeSpecificResource {
		return nil, NewArgumentError(standard.KeyTarget, "target type '%s' is not %s", raw.Type, standard.TypeSpecificResource)
	}
	if raw.Source == "" {
		return nil, NewArgumentError(standard.KeyTarget, "%s has no source", standard.TypeSpecificResource)
	}
	if raw.Selector.IsZero() {
		return nil, NewArgumentError(standard.KeyTarget, "%s has no selector", standard.TypeSpecificResource)
	}
	return SpecificResource{SourceID: raw.Source, Selector: raw.Selector}, nil
}
