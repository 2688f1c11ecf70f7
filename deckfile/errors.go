package deckfile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat is returned for deck files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported deck file format")

// Error locates a problem in a deck file. Slide and Primitive are 1-based;
// zero means the problem is not inside one.
type Error struct {
	File      string
	Slide     int
	Primitive int
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Slide > 0 {
		fmt.Fprintf(&b, "slide %d: ", e.Slide)
	}
	if e.Primitive > 0 {
		fmt.Fprintf(&b, "primitive %d: ", e.Primitive)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }
