package canvas

import (
	"encoding/json"
	"fmt"

	"github.com/filegrind/iiifpres-go/standard"
)

// Motivation says why a resource is associated with a canvas
type Motivation string

const (
	// MotivationPainting puts content on the canvas itself
	MotivationPainting Motivation = standard.MotivationPainting
	// MotivationSupplementing adds content derived from the canvas, such
	// as transcriptions or captions
	MotivationSupplementing Motivation = standard.MotivationSupplementing
)

// IsValid reports whether m is one of the supported motivations
func (m Motivation) IsValid() bool {
	return m == MotivationPainting || m == MotivationSupplementing
}

// TimeMode says how temporal content whose duration differs from its
// target should be played. The zero value means unspecified.
type TimeMode string

const (
	TimeModeTrim  TimeMode = standard.TimeModeTrim
	TimeModeScale TimeMode = standard.TimeModeScale
	TimeModeLoop  TimeMode = standard.TimeModeLoop
)

// IsValid reports whether t is unspecified or a known mode
func (t TimeMode) IsValid() bool {
	switch t {
	case "", TimeModeTrim, TimeModeScale, TimeModeLoop:
		return true
	}
	return false
}

// ParseTimeMode converts a string into a TimeMode
func ParseTimeMode(s string) (TimeMode, error) {
	t := TimeMode(s)
	if !t.IsValid() {
		return "", NewArgumentError(standard.KeyTimeMode, "unknown time mode '%s'", s)
	}
	return t, nil
}

// Annotation associates a body with a target. Annotations are created by
// painting and are not modified afterwards.
type Annotation struct {
	id         string
	motivation Motivation
	timeMode   TimeMode
	body       Body
	target     Target
}

func (a *Annotation) ID() string             { return a.id }
func (a *Annotation) Motivation() Motivation { return a.motivation }
func (a *Annotation) TimeMode() TimeMode     { return a.timeMode }
func (a *Annotation) Body() Body             { return a.body }
func (a *Annotation) Target() Target         { return a.target }

func (a *Annotation) String() string {
	return fmt.Sprintf("%s %s -> %s", a.motivation, a.id, a.target)
}

type annotationJSON struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Motivation string          `json:"motivation"`
	TimeMode   string          `json:"timeMode,omitempty"`
	Body       json.RawMessage `json:"body"`
	Target     json.RawMessage `json:"target"`
}

// MarshalJSON implements json.Marshaler
func (a *Annotation) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(a.body)
	if err != nil {
		return nil, fmt.Errorf("annotation '%s' body: %w", a.id, err)
	}
	target, err := json.Marshal(a.target)
	if err != nil {
		return nil, fmt.Errorf("annotation '%s' target: %w", a.id, err)
	}
	return json.Marshal(annotationJSON{
		ID:         a.id,
		Type:       standard.TypeAnnotation,
		Motivation: string(a.motivation),
		TimeMode:   string(a.timeMode),
		Body:       body,
		Target:     target,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var raw annotationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != standard.TypeAnnotation {
		return NewArgumentError(standard.KeyType, "expected %s, got '%s'", standard.TypeAnnotation, raw.Type)
	}
	if raw.ID == "" {
		return NewArgumentError(standard.KeyID, "annotation has no id")
	}
	motivation := Motivation(raw.Motivation)
	if !motivation.IsValid() {
		return NewArgumentError(standard.KeyMotivation, "annotation '%s' has unsupported motivation '%s'", raw.ID, raw.Motivation)
	}
	timeMode, err := ParseTimeMode(raw.TimeMode)
	if err != nil {
		return err
	}
	body, err := decodeBody(raw.Body)
	if err != nil {
		return fmt.Errorf("annotation '%s' body: %w", raw.ID, err)
	}
	target, err := decodeTarget(raw.Target)
	if err != nil {
		return fmt.Errorf("annotation '%s' target: %w", raw.ID, err)
	}

	*a = Annotation{id: raw.ID, motivation: motivation, timeMode: timeMode, body: body, target: target}
	return nil
}

// AnnotationPage is an ordered list of annotations. Painting creates one
// page per call.
type AnnotationPage struct {
	id    string
	items []*Annotation
}

// ID returns the page id
func (p *AnnotationPage) ID() string { return p.id }

// Len returns the number of annotations on the page
func (p *AnnotationPage) Len() int { return len(p.items) }

// Annotations returns a copy of the page's annotations in order
func (p *AnnotationPage) Annotations() []*Annotation {
	out := make([]*Annotation, len(p.items))
	copy(out, p.items)
	return out
}

type annotationPageJSON struct {
	ID    string        `json:"id"`
	Type  string        `json:"type"`
	Items []*Annotation `json:"items"`
}

// MarshalJSON implements json.Marshaler
func (p *AnnotationPage) MarshalJSON() ([]byte, error) {
	items := p.items
	if items == nil {
		items = []*Annotation{}
	}
	return json.Marshal(annotationPageJSON{ID: p.id, Type: standard.TypeAnnotationPage, Items: items})
}

// UnmarshalJSON implements json.Unmarshaler
func (p *AnnotationPage) UnmarshalJSON(data []byte) error {
	var raw annotationPageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != standard.TypeAnnotationPage {
		return NewArgumentError(standard.KeyType, "expected %s, got '%s'", standard.TypeAnnotationPage, raw.Type)
	}
	if raw.ID == "" {
		return NewArgumentError(standard.KeyID, "annotation page has no id")
	}
	for i, a := range raw.Items {
		if a == nil {
			return NewArgumentError(standard.KeyItems, "annotation page '%s' item %d is null", raw.ID, i)
		}
	}

	*p = AnnotationPage{id: raw.ID, items: raw.Items}
	return nil
}
