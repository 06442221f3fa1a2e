package canvas

import "github.com/filegrind/iiifpres-go/content"

// ExtentKind classifies a canvas by the dimensions it has. A width and
// height are present only when both are positive; a duration only when it
// is positive.
func ExtentKind(width, height int, duration float64) content.Kind {
	kind := content.KindNone
	if width > 0 && height > 0 {
		kind = kind.Union(content.KindSpatial)
	}
	if duration > 0 {
		kind = kind.Union(content.KindTemporal)
	}
	return kind
}
