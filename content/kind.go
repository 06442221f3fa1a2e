// Package content models IIIF content resources (images, sounds, videos,
// texts, datasets and models) together with the dimensions each kind of
// resource needs from whatever it is painted onto.
package content

import "fmt"

// Kind classifies which dimensions an entity has: none, spatial (width and
// height), temporal (duration) or both. It is a bit set so that kinds can be
// combined and compared.
type Kind uint8

const (
	KindNone           Kind = 0
	KindSpatial        Kind = 1
	KindTemporal       Kind = 2
	KindSpatioTemporal Kind = KindSpatial | KindTemporal
)

// HasSpatial reports whether k includes a spatial extent
func (k Kind) HasSpatial() bool {
	return k&KindSpatial != 0
}

// HasTemporal reports whether k includes a temporal extent
func (k Kind) HasTemporal() bool {
	return k&KindTemporal != 0
}

// Union returns the kind having every dimension of k and other
func (k Kind) Union(other Kind) Kind {
	return k | other
}

// Covers reports whether k offers every dimension that required needs
func (k Kind) Covers(required Kind) bool {
	return required&^k == 0
}

// Missing returns the dimensions of required that k does not offer
func (k Kind) Missing(required Kind) Kind {
	return required &^ k
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSpatial:
		return "spatial"
	case KindTemporal:
		return "temporal"
	case KindSpatioTemporal:
		return "spatiotemporal"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// CapabilityOf returns the dimensions a resource of type t requires from its
// paint target. The mapping is fixed: images are spatial, sounds temporal,
// videos both, and texts, datasets and models need neither.
func CapabilityOf(t Type) Kind {
	switch t {
	case TypeImage:
		return KindSpatial
	case TypeSound:
		return KindTemporal
	case TypeVideo:
		return KindSpatioTemporal
	default:
		return KindNone
	}
}
