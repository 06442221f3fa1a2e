package canvas

import (
	"bytes"
	"encoding/json"

	"github.com/filegrind/iiifpres-go/content"
	"github.com/filegrind/iiifpres-go/standard"
)

// Body is the content of an annotation: a single resource or an ordered
// Choice between alternatives. The set of implementations is closed.
type Body interface {
	// Resources returns the body's resources in order. Choice
	// placeholders are returned as nil.
	Resources() []*content.Resource

	isBody()
}

// Single is a body holding exactly one resource
type Single struct {
	resource *content.Resource
}

func (Single) isBody() {}

// Resource returns the body's resource
func (b Single) Resource() *content.Resource { return b.resource }

// Resources returns a one-element slice
func (b Single) Resources() []*content.Resource {
	return []*content.Resource{b.resource}
}

// MarshalJSON implements json.Marshaler
func (b Single) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.resource)
}

// Choice is an ordered list of alternatives. A nil entry is a placeholder
// for an absent alternative and serializes as "rdf:nil".
type Choice struct {
	items []*content.Resource
}

func (Choice) isBody() {}

// Len returns the number of alternatives, placeholders included
func (b Choice) Len() int { return len(b.items) }

// Resources returns a copy of the alternatives in order
func (b Choice) Resources() []*content.Resource {
	out := make([]*content.Resource, len(b.items))
	copy(out, b.items)
	return out
}

type choiceJSON struct {
	Type  string            `json:"type"`
	Items []json.RawMessage `json:"items"`
}

var rdfNilJSON = []byte(`"` + standard.RdfNil + `"`)

// MarshalJSON implements json.Marshaler
func (b Choice) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, 0, len(b.items))
	for _, r := range b.items {
		if r == nil {
			items = append(items, rdfNilJSON)
			continue
		}
		data, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		items = append(items, data)
	}
	return json.Marshal(choiceJSON{Type: standard.TypeChoice, Items: items})
}

// PackBody builds the body for resources painted onto the same target in
// one call. One resource yields a Single, more yield a Choice in call
// order with nils kept as placeholders. Resources are copied, so later
// changes by the caller do not reach an attached annotation.
func PackBody(resources ...*content.Resource) (Body, error) {
	present := 0
	for _, r := range resources {
		if r != nil {
			present++
		}
	}
	if present == 0 {
		return nil, NewArgumentError(standard.KeyBody, "at least one content resource is required")
	}

	if len(resources) == 1 {
		return Single{resource: resources[0].Clone()}, nil
	}
	items := make([]*content.Resource, len(resources))
	for i, r := range resources {
		items[i] = r.Clone()
	}
	return Choice{items: items}, nil
}

func decodeBody(data []byte) (Body, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, NewArgumentError(standard.KeyBody, "annotation has no body")
	}
	if data[0] != '{' {
		return nil, NewArgumentError(standard.KeyBody, "body must be a resource or a %s object", standard.TypeChoice)
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	if probe.Type != standard.TypeChoice {
		var r content.Resource
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, err
		}
		return PackBody(&r)
	}

	var raw choiceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw.Items) < 2 {
		return nil, NewArgumentError(standard.KeyItems, "%s needs at least two items, got %d", standard.TypeChoice, len(raw.Items))
	}
	resources := make([]*content.Resource, len(raw.Items))
	for i, item := range raw.Items {
		if bytes.Equal(bytes.TrimSpace(item), rdfNilJSON) {
			continue
		}
		var r content.Resource
		if err := json.Unmarshal(item, &r); err != nil {
			return nil, err
		}
		resources[i] = &r
	}
	return PackBody(resources...)
}
