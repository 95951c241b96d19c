package m3u8

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingHeader is returned when the first non-empty line of the
	// input is not #EXTM3U.
	ErrMissingHeader = errors.New("m3u8: missing #EXTM3U header")

	// ErrInvalidHierarchy is returned when a segment tag appears in a
	// playlist already known not to be a media playlist.
	ErrInvalidHierarchy = errors.New("m3u8: segment tag outside media playlist")
)

// MalformedDirectiveError is returned when a #EXT line does not match the
// tag grammar. Line holds the offending input for diagnostics.
type MalformedDirectiveError struct {
	Line string
}

func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("m3u8: malformed directive %q", e.Line)
}

// MissingAttributeError is returned by Tag.RequiredAttr when a mandatory
// attribute is absent. It is never produced during parsing itself.
type MissingAttributeError struct {
	Tag       string
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("m3u8: tag %s missing required attribute %s", e.Tag, e.Attribute)
}
