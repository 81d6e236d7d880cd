package precision

import "fmt"

// ParseError indicates a malformed precision string. It is never recovered
// locally; callers surface the message verbatim.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unsupported quantization type string %q: %s", e.Input, e.Reason)
}
