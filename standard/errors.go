package standard

import "errors"

// ErrMalformedInput is matched (through errors.Is) by every error that
// reports authoring input which can never be valid: a selector string
// outside the media fragment grammar, non-positive dimensions, an empty
// content list and the like.
var ErrMalformedInput = errors.New("malformed input")
