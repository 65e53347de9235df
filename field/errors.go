package field

import "fmt"

// ParseError reports a converter's FromFieldValue failing to make sense
// of on-wire text. Offset is relative to the text the converter was
// given (not the whole header line).
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field: parse error at offset %d: %s", e.Offset, e.Reason)
}

func parseErr(off int, reason string) error {
	return &ParseError{Offset: off, Reason: reason}
}
