// Package errs defines the errors returned by the table codec.
//
// Format errors all wrap ErrFormat, so callers can classify any structural problem with
//
//	if errors.Is(err, errs.ErrFormat) { ... }
//
// and still match the specific sentinel when they need to.
package errs

import (
	"errors"
	"fmt"
)

// ErrFormat is the parent of every structural table error.
var ErrFormat = errors.New("invalid table format")

// Format errors.
var (
	// ErrFileTooSmall is returned when the buffer cannot hold the entry count.
	ErrFileTooSmall = fmt.Errorf("%w: file too small to contain valid data", ErrFormat)
	// ErrTruncatedOffsetTable is returned when the declared count needs more offset bytes than the buffer has.
	ErrTruncatedOffsetTable = fmt.Errorf("%w: not enough data for string offsets", ErrFormat)
	// ErrOffsetOutOfRange is returned when an entry starts or ends outside the buffer.
	ErrOffsetOutOfRange = fmt.Errorf("%w: string offset outside the file", ErrFormat)
	// ErrOffsetOrder is returned when an entry's successor starts before it.
	ErrOffsetOrder = fmt.Errorf("%w: string offsets are not ascending", ErrFormat)
)

// Encoder errors.
var (
	ErrTooManyEntries = errors.New("too many entries for a 16-bit count")
	ErrTableTooLarge  = errors.New("entry offset exceeds 16-bit range")
)

// ErrInvalidOption is returned by enum parsers and option setters.
var ErrInvalidOption = errors.New("invalid option")

// EscapeError describes a bracketed escape that could not be turned into a byte.
//
// It is never fatal: the escape is dropped and decoding continues.
type EscapeError struct {
	// Sequence is the text between the brackets.
	Sequence string
	// Radix is the numeral base the sequence was parsed in.
	Radix int
	// Err is the underlying parse failure.
	Err error
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("could not decode control character %q (base %d): %v", e.Sequence, e.Radix, e.Err)
}

func (e *EscapeError) Unwrap() error {
	return e.Err
}

// ErrUnmappableRune is reported when a text character has no byte in the selected charset.
var ErrUnmappableRune = errors.New("character not representable in charset")

// ErrEntryIndex is returned when an entry index is outside [0, count).
var ErrEntryIndex = errors.New("entry index out of range")
