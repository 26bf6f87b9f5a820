package layout

import (
	"errors"
	"fmt"
)

// ErrPathNotFound is returned by ClearLayer in strict mode when the parent
// path does not exist.
var ErrPathNotFound = errors.New("path not found")

// FormatError reports a component whose name has the LED or resistor prefix
// but no parsable ring index.
type FormatError struct {
	Element string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("element %q: bad ring position: %v", e.Element, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// LookupError reports a required document part that is missing.
type LookupError struct {
	Kind string // "signal", "section" or "pass"
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}
