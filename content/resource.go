package content

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"

	"github.com/filegrind/iiifpres-go/standard"
)

// Type is a content resource type name
type Type string

const (
	TypeImage   Type = standard.TypeImage
	TypeSound   Type = standard.TypeSound
	TypeVideo   Type = standard.TypeVideo
	TypeText    Type = standard.TypeText
	TypeDataset Type = standard.TypeDataset
	TypeModel   Type = standard.TypeModel
)

// Types lists every content resource type in a stable order
var Types = []Type{TypeImage, TypeSound, TypeVideo, TypeText, TypeDataset, TypeModel}

// IsValid reports whether t is one of the known content resource types
func (t Type) IsValid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType converts a JSON type name into a Type
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", NewUnknownTypeError(s)
	}
	return t, nil
}

// Error codes for content resource errors
const (
	ErrorInvalidID         = 1
	ErrorUnknownType       = 2
	ErrorInvalidDimensions = 3
	ErrorInvalidDuration   = 4
	ErrorUnknownFormat     = 5
)

// ResourceError reports a content resource that cannot be constructed
type ResourceError struct {
	Code    int
	ID      string
	Message string
}

func (e *ResourceError) Error() string {
	return e.Message
}

// Is matches standard.ErrMalformedInput
func (e *ResourceError) Is(target error) bool {
	return target == standard.ErrMalformedInput
}

// NewUnknownTypeError creates an error for an unrecognized resource type
func NewUnknownTypeError(typeName string) *ResourceError {
	return &ResourceError{
		Code:    ErrorUnknownType,
		Message: fmt.Sprintf("unknown content resource type '%s'", typeName),
	}
}

// CheckID verifies that id is an absolute URI
func CheckID(id string) error {
	if id == "" {
		return &ResourceError{Code: ErrorInvalidID, Message: "resource ID cannot be empty"}
	}
	u, err := url.Parse(id)
	if err != nil || !u.IsAbs() {
		return &ResourceError{
			Code:    ErrorInvalidID,
			ID:      id,
			Message: fmt.Sprintf("resource ID '%s' is not an absolute URI", id),
		}
	}
	return nil
}

// Resource is a content resource: something that can be painted onto, or
// supplement, a canvas. Width, height and duration are optional declared
// metadata; they are not required for painting but, when present, they must
// fit the paint target.
type Resource struct {
	id       string
	typ      Type
	format   string
	width    int
	height   int
	duration float64
}

// NewResource creates a content resource of the supplied type
func NewResource(id string, t Type) (*Resource, error) {
	if err := CheckID(id); err != nil {
		return nil, err
	}
	if !t.IsValid() {
		err := NewUnknownTypeError(string(t))
		err.ID = id
		return nil, err
	}
	return &Resource{id: id, typ: t}, nil
}

// NewImage creates an image resource
func NewImage(id string) (*Resource, error) { return NewResource(id, TypeImage) }

// NewSound creates a sound resource
func NewSound(id string) (*Resource, error) { return NewResource(id, TypeSound) }

// NewVideo creates a video resource
func NewVideo(id string) (*Resource, error) { return NewResource(id, TypeVideo) }

// NewText creates a text resource
func NewText(id string) (*Resource, error) { return NewResource(id, TypeText) }

// NewDataset creates a dataset resource
func NewDataset(id string) (*Resource, error) { return NewResource(id, TypeDataset) }

// NewModel creates a model resource
func NewModel(id string) (*Resource, error) { return NewResource(id, TypeModel) }

// ID returns the resource's URI
func (r *Resource) ID() string { return r.id }

// Type returns the resource's type
func (r *Resource) Type() Type { return r.typ }

// Format returns the resource's MIME format, or "" if none was set
func (r *Resource) Format() string { return r.format }

// Width returns the declared width, or 0
func (r *Resource) Width() int { return r.width }

// Height returns the declared height, or 0
func (r *Resource) Height() int { return r.height }

// Duration returns the declared duration, or 0
func (r *Resource) Duration() float64 { return r.duration }

// SetFormat sets the resource's MIME format
func (r *Resource) SetFormat(format string) *Resource {
	r.format = format
	return r
}

// SetWidthHeight declares the resource's size. Both values must be positive.
func (r *Resource) SetWidthHeight(width, height int) error {
	if width <= 0 || height <= 0 {
		return &ResourceError{
			Code:    ErrorInvalidDimensions,
			ID:      r.id,
			Message: fmt.Sprintf("resource '%s' width and height must be positive, got %dx%d", r.id, width, height),
		}
	}
	r.width = width
	r.height = height
	return nil
}

// SetDuration declares the resource's duration in seconds. It must be
// positive and finite.
func (r *Resource) SetDuration(duration float64) error {
	if !(duration > 0) || math.IsInf(duration, 0) {
		return &ResourceError{
			Code:    ErrorInvalidDuration,
			ID:      r.id,
			Message: fmt.Sprintf("resource '%s' duration must be positive and finite, got %v", r.id, duration),
		}
	}
	r.duration = duration
	return nil
}

// RequiredKind returns the dimensions this resource needs from its target
func (r *Resource) RequiredKind() Kind {
	return CapabilityOf(r.typ)
}

// DeclaredSize returns the declared width and height, if the resource has them
func (r *Resource) DeclaredSize() (width, height int, ok bool) {
	if r.width > 0 && r.height > 0 {
		return r.width, r.height, true
	}
	return 0, 0, false
}

// DeclaredDuration returns the declared duration, if the resource has one
func (r *Resource) DeclaredDuration() (float64, bool) {
	if r.duration > 0 {
		return r.duration, true
	}
	return 0, false
}

// Clone returns an independent copy of r
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// Equals checks if two resources carry the same values
func (r *Resource) Equals(other *Resource) bool {
	if r == nil || other == nil {
		return r == other
	}
	return *r == *other
}

func (r *Resource) String() string {
	return fmt.Sprintf("%s <%s>", r.typ, r.id)
}

type resourceJSON struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Format   string  `json:"format,omitempty"`
	Height   int     `json:"height,omitempty"`
	Width    int     `json:"width,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(resourceJSON{
		ID:       r.id,
		Type:     string(r.typ),
		Format:   r.format,
		Height:   r.height,
		Width:    r.width,
		Duration: r.duration,
	})
}

// UnmarshalJSON implements json.Unmarshaler. The same checks as the
// constructors and setters apply.
func (r *Resource) UnmarshalJSON(data []byte) error {
	var raw resourceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t, err := ParseType(raw.Type)
	if err != nil {
		return err
	}
	decoded, err := NewResource(raw.ID, t)
	if err != nil {
		return err
	}
	decoded.format = raw.Format
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

	*r = *decoded
	return nil
}
