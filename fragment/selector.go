// Package fragment implements the subset of W3C Media Fragments used to
// select part of a IIIF canvas: a spatial rectangle, a temporal interval,
// or both.
//
// Canonical string forms:
//
//	xywh=<x>,<y>,<w>,<h>
//	t=<start>,<end>
//	xywh=<x>,<y>,<w>,<h>&t=<start>,<end>
//
// Selectors are values: they are immutable once constructed and compare
// structurally with ==.
package fragment

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/filegrind/iiifpres-go/content"
	"github.com/filegrind/iiifpres-go/standard"
)

// Region is a spatial rectangle in canvas pixel coordinates
type Region struct {
	X, Y, W, H int
}

// Contains reports whether other lies entirely inside r
func (r Region) Contains(other Region) bool {
	return spanContains(r.X, r.W, other.X, other.W) && spanContains(r.Y, r.H, other.Y, other.H)
}

// spanContains never forms start+length, which can overflow int
func spanContains(outerStart, outerLen, innerStart, innerLen int) bool {
	if innerStart < outerStart || outerLen < 0 || innerLen < 0 {
		return false
	}
	offset := uint64(innerStart) - uint64(outerStart)
	return offset <= uint64(outerLen) && uint64(innerLen) <= uint64(outerLen)-offset
}

// Within reports whether r lies entirely inside [0,0,width,height]
func (r Region) Within(width, height int) bool {
	return Region{W: width, H: height}.Contains(r)
}

func (r Region) String() string {
	return fmt.Sprintf("xywh=%d,%d,%d,%d", r.X, r.Y, r.W, r.H)
}

func (r Region) validate(input string) error {
	if r.X < 0 || r.Y < 0 || r.W < 0 || r.H < 0 {
		return newParseError(ErrorOutOfRange, input, fmt.Sprintf("spatial values must not be negative: %v", r))
	}
	if r.W == 0 || r.H == 0 {
		return newParseError(ErrorDegenerate, input, fmt.Sprintf("spatial width and height must be positive: %v", r))
	}
	return nil
}

// Interval is a temporal range in seconds
type Interval struct {
	Start, End float64
}

// Duration returns End - Start
func (i Interval) Duration() float64 {
	return i.End - i.Start
}

// Contains reports whether other lies entirely inside i
func (i Interval) Contains(other Interval) bool {
	return other.Start >= i.Start && other.End <= i.End
}

// Within reports whether i lies entirely inside [0,duration]
func (i Interval) Within(duration float64) bool {
	return Interval{End: duration}.Contains(i)
}

func (i Interval) String() string {
	return "t=" + formatSeconds(i.Start) + "," + formatSeconds(i.End)
}

func (i Interval) validate(input string) error {
	if math.IsNaN(i.Start) || math.IsNaN(i.End) || math.IsInf(i.Start, 0) || math.IsInf(i.End, 0) {
		return newParseError(ErrorOutOfRange, input, fmt.Sprintf("temporal values must be finite: %v", i))
	}
	if i.Start < 0 {
		return newParseError(ErrorOutOfRange, input, fmt.Sprintf("temporal start must not be negative: %v", i))
	}
	if !(i.End > i.Start) {
		return newParseError(ErrorDegenerate, input, fmt.Sprintf("temporal end must be after start: %v", i))
	}
	return nil
}

// Selector is a media fragment selector. The zero value selects nothing and
// is rejected wherever a selector is required; use Parse or one of the New
// functions.
type Selector struct {
	region      Region
	interval    Interval
	hasRegion   bool
	hasInterval bool
}

// NewSpatial creates a selector for a rectangle
func NewSpatial(x, y, w, h int) (Selector, error) {
	region := Region{X: x, Y: y, W: w, H: h}
	if err := region.validate(region.String()); err != nil {
		return Selector{}, err
	}
	return Selector{region: region, hasRegion: true}, nil
}

// NewTemporal creates a selector for a time interval
func NewTemporal(start, end float64) (Selector, error) {
	interval := Interval{Start: start, End: end}
	if err := interval.validate(interval.String()); err != nil {
		return Selector{}, err
	}
	return Selector{interval: interval, hasInterval: true}, nil
}

// NewSpatioTemporal creates a selector for a rectangle during a time interval
func NewSpatioTemporal(x, y, w, h int, start, end float64) (Selector, error) {
	spatial, err := NewSpatial(x, y, w, h)
	if err != nil {
		return Selector{}, err
	}
	temporal, err := NewTemporal(start, end)
	if err != nil {
		return Selector{}, err
	}
	spatial.interval = temporal.interval
	spatial.hasInterval = true
	return spatial, nil
}

// Parse parses a media fragment string. Either dimension order is accepted,
// as are a leading '#', the explicit "pixel:" and "npt:" units, leading
// zeros and the "1." / ".5" decimal forms. String always produces the
// canonical spatial-then-temporal form without them, so Parse followed by
// String returns the input unchanged only when the input is canonical.
func Parse(s string) (Selector, error) {
	input := s
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return Selector{}, newParseError(ErrorEmpty, input, "media fragment cannot be empty")
	}

	var sel Selector
	for _, part := range strings.Split(s, "&") {
		key, value, found := strings.Cut(part, "=")
		if !found || key == "" {
			return Selector{}, newParseError(ErrorInvalidFormat, input,
				fmt.Sprintf("invalid media fragment dimension (must be key=value): '%s'", part))
		}

		switch key {
		case "xywh":
			if sel.hasRegion {
				return Selector{}, newParseError(ErrorDuplicateDimension, input, "media fragment has more than one xywh dimension")
			}
			region, err := parseRegion(input, value)
			if err != nil {
				return Selector{}, err
			}
			sel.region, sel.hasRegion = region, true
		case "t":
			if sel.hasInterval {
				return Selector{}, newParseError(ErrorDuplicateDimension, input, "media fragment has more than one t dimension")
			}
			interval, err := parseInterval(input, value)
			if err != nil {
				return Selector{}, err
			}
			sel.interval, sel.hasInterval = interval, true
		default:
			return Selector{}, newParseError(ErrorUnknownDimension, input,
				fmt.Sprintf("unsupported media fragment dimension '%s'", key))
		}
	}

	return sel, nil
}

// MustParse is like Parse but panics on error. It is meant for fragments
// that are compile-time constants.
func MustParse(s string) Selector {
	sel, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func parseRegion(input, value string) (Region, error) {
	if strings.HasPrefix(value, "percent:") {
		return Region{}, newParseError(ErrorUnsupportedUnit, input, "percent spatial units are not supported")
	}
	value = strings.TrimPrefix(value, "pixel:")

	tokens := strings.Split(value, ",")
	if len(tokens) != 4 {
		return Region{}, newParseError(ErrorTokenCount, input,
			fmt.Sprintf("xywh needs 4 comma-separated values, got %d", countTokens(value)))
	}

	var nums [4]int
	for i, tok := range tokens {
		if !isDigits(tok) {
			return Region{}, newParseError(ErrorInvalidNumber, input,
				fmt.Sprintf("xywh value '%s' is not a non-negative integer", tok))
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return Region{}, newParseError(ErrorInvalidNumber, input,
				fmt.Sprintf("xywh value '%s' is out of range", tok))
		}
		nums[i] = n
	}

	region := Region{X: nums[0], Y: nums[1], W: nums[2], H: nums[3]}
	if err := region.validate(input); err != nil {
		return Region{}, err
	}
	return region, nil
}

func parseInterval(input, value string) (Interval, error) {
	value = strings.TrimPrefix(value, "npt:")

	tokens := strings.Split(value, ",")
	if len(tokens) != 2 {
		return Interval{}, newParseError(ErrorTokenCount, input,
			fmt.Sprintf("t needs 2 comma-separated values, got %d", countTokens(value)))
	}

	var nums [2]float64
	for i, tok := range tokens {
		if !isDecimal(tok) {
			return Interval{}, newParseError(ErrorInvalidNumber, input,
				fmt.Sprintf("t value '%s' is not a non-negative number of seconds", tok))
		}
		n, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Interval{}, newParseError(ErrorInvalidNumber, input,
				fmt.Sprintf("t value '%s' is out of range", tok))
		}
		nums[i] = n
	}

	interval := Interval{Start: nums[0], End: nums[1]}
	if err := interval.validate(input); err != nil {
		return Interval{}, err
	}
	return interval, nil
}

func countTokens(value string) int {
	if value == "" {
		return 0
	}
	return strings.Count(value, ",") + 1
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isDecimal accepts 12, 12.5, 12. and .5
func isDecimal(s string) bool {
	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if !hasDot {
		return isDigits(intPart)
	}
	if intPart == "" && fracPart == "" {
		return false
	}
	return (intPart == "" || isDigits(intPart)) && (fracPart == "" || isDigits(fracPart))
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IsZero reports whether s selects nothing
func (s Selector) IsZero() bool {
	return !s.hasRegion && !s.hasInterval
}

// HasRegion reports whether s carries a spatial dimension
func (s Selector) HasRegion() bool { return s.hasRegion }

// HasInterval reports whether s carries a temporal dimension
func (s Selector) HasInterval() bool { return s.hasInterval }

// Region returns the spatial dimension, if any
func (s Selector) Region() (Region, bool) { return s.region, s.hasRegion }

// Interval returns the temporal dimension, if any
func (s Selector) Interval() (Interval, bool) { return s.interval, s.hasInterval }

// Kind returns the union of the dimension kinds present on s
func (s Selector) Kind() content.Kind {
	kind := content.KindNone
	if s.hasRegion {
		kind = kind.Union(content.KindSpatial)
	}
	if s.hasInterval {
		kind = kind.Union(content.KindTemporal)
	}
	return kind
}

// Equals checks if two selectors have the same region and interval
func (s Selector) Equals(other Selector) bool {
	return s == other
}

// Contains reports whether every dimension of other is present on s and
// lies inside it
func (s Selector) Contains(other Selector) bool {
	if other.hasRegion && !(s.hasRegion && s.region.Contains(other.region)) {
		return false
	}
	if other.hasInterval && !(s.hasInterval && s.interval.Contains(other.interval)) {
		return false
	}
	return true
}

// String returns the canonical fragment, spatial part first
func (s Selector) String() string {
	parts := make([]string, 0, 2)
	if s.hasRegion {
		parts = append(parts, s.region.String())
	}
	if s.hasInterval {
		parts = append(parts, s.interval.String())
	}
	return strings.Join(parts, "&")
}

type selectorJSON struct {
	Type       string `json:"type"`
	ConformsTo string `json:"conformsTo"`
	Value      string `json:"value"`
}

// MarshalJSON implements json.Marshaler, producing a FragmentSelector object
func (s Selector) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return nil, newParseError(ErrorEmpty, "", "cannot serialize an empty media fragment selector")
	}
	return json.Marshal(selectorJSON{
		Type:       standard.TypeFragmentSelector,
		ConformsTo: standard.MediaFragmentsURI,
		Value:      s.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Selector) UnmarshalJSON(data []byte) error {
	var raw selectorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != standard.TypeFragmentSelector {
		return newParseError(ErrorInvalidFormat, raw.Value,
			fmt.Sprintf("selector type '%s' is not %s", raw.Type, standard.TypeFragmentSelector))
	}
	if raw.ConformsTo != "" && raw.ConformsTo != standard.MediaFragmentsURI {
		return newParseError(ErrorInvalidFormat, raw.Value,
			fmt.Sprintf("fragment selector conforms to '%s', not %s", raw.ConformsTo, standard.MediaFragmentsURI))
	}

	parsed, err := Parse(raw.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
