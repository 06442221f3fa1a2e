package fragment

import "github.com/filegrind/iiifpres-go/standard"

// Error codes for media fragment parsing
const (
	ErrorEmpty              = 1
	ErrorInvalidFormat      = 2
	ErrorUnknownDimension   = 3
	ErrorDuplicateDimension = 4
	ErrorTokenCount         = 5
	ErrorInvalidNumber      = 6
	ErrorOutOfRange         = 7
	ErrorDegenerate         = 8
	ErrorUnsupportedUnit    = 9
)

// ParseError reports a media fragment that does not match the grammar or
// whose values are negative or degenerate
type ParseError struct {
	Code    int
	Input   string
	Message string
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return e.Message
	}
	return "invalid media fragment '" + e.Input + "': " + e.Message
}

// Is matches standard.ErrMalformedInput
func (e *ParseError) Is(target error) bool {
	return target == standard.ErrMalformedInput
}

func newParseError(code int, input, message string) *ParseError {
	return &ParseError{Code: code, Input: input, Message: message}
}
