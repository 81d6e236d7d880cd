package toolchain

import (
	"fmt"
	"strings"
)

// ParseError indicates a string with no parseable major.minor version prefix.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse toolchain version string %q", e.Input)
}

// UnsupportedVersionError indicates a requested version with no catalog match
// when defaulting was disallowed. The message enumerates every known valid
// version so the caller can correct the request.
type UnsupportedVersionError struct {
	Requested string
	Known     []Version
}

func (e *UnsupportedVersionError) Error() string {
	known := make([]string, len(e.Known))
	for i, v := range e.Known {
		known[i] = v.FullVersionWithFlavor()
		if len(v.Tags) > 0 {
			known[i] += " (" + strings.Join(v.Tags, ", ") + ")"
		}
	}
	return fmt.Sprintf("toolchain version %s is not supported by the catalog. Available versions are:\n    %s",
		e.Requested, strings.Join(known, "\n    "))
}
