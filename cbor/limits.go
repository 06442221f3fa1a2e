package cbor

// DefaultMaxDocument is the default size limit for one encoded document
const DefaultMaxDocument int = 3_670_016

// MaxDocumentHardLimit caps every document regardless of configured limits
const MaxDocumentHardLimit int = 16_777_216

// Limits bounds the documents a Reader or Writer will handle
type Limits struct {
	MaxDocument int `cbor:"max_document"`
}

// DefaultLimits returns the default limits
func DefaultLimits() Limits {
	return Limits{MaxDocument: DefaultMaxDocument}
}

func (l Limits) check(size int, what string) error {
	if size > l.MaxDocument {
		return &SizeError{Size: size, Limit: l.MaxDocument, What: what}
	}
	if size > MaxDocumentHardLimit {
		return &SizeError{Size: size, Limit: MaxDocumentHardLimit, What: what}
	}
	return nil
}
