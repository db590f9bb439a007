package parse

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedBlock is returned when a '[' is never closed.
	ErrUnterminatedBlock = errors.New("unterminated kanji block")
	// ErrMissingReading is returned for a block without any reading field.
	ErrMissingReading = errors.New("kanji block has no reading")
	// ErrReadingCountMismatch is returned when a block has several readings
	// that don't line up with its literals.
	ErrReadingCountMismatch = errors.New("reading count does not match literal count")
	// ErrEmptyLiteral is returned for a block with an empty literal field.
	ErrEmptyLiteral = errors.New("kanji block has an empty literal")
)

// Error describes where strict parsing failed.
//
// The failure condition is one of the Err* sentinels and can be matched with
// errors.Is.
type Error struct {
	Kind   error
	Offset int
	Block  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("furigana: %v at byte %d: %q", e.Kind, e.Offset, e.Block)
}

func (e *Error) Unwrap() error { return e.Kind }
