package platform

import "fmt"

// ParseError reports a platform triple string that failed validation.
type ParseError struct {
	Triple string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid platform triple %q: %s", e.Triple, e.Reason)
}

// UnsupportedError reports a summary that describes a build shape this tool
// cannot represent, such as more than one target platform.
type UnsupportedError struct {
	Reason string
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return "unsupported build metadata: " + e.Reason
}
