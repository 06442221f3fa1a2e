package canvas

// Minter supplies fresh ids for the annotations and pages that painting
// creates. Every returned id must be unique.
type Minter interface {
	Next() (string, error)
}

// ResourceMinter is a Minter that mints ids by role. When the minter passed
// to a Painter implements it, pages and annotations get ids from the
// matching method instead of Next.
type ResourceMinter interface {
	Minter
	AnnotationID() (string, error)
	AnnotationPageID(canvasID string) (string, error)
}

// MinterFunc adapts a function to the Minter interface
type MinterFunc func() (string, error)

// Next calls f
func (f MinterFunc) Next() (string, error) { return f() }

func mintIDs(m Minter, canvasID string) (pageID, annotationID string, err error) {
	if rm, ok := m.(ResourceMinter); ok {
		if pageID, err = rm.AnnotationPageID(canvasID); err != nil {
			return "", "", err
		}
		if annotationID, err = rm.AnnotationID(); err != nil {
			return "", "", err
		}
		return pageID, annotationID, nil
	}

	if pageID, err = m.Next(); err != nil {
		return "", "", err
	}
	if annotationID, err = m.Next(); err != nil {
		return "", "", err
	}
	return pageID, annotationID, nil
}
