package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/gotbl/errs"
)

type (
	CharMode      uint8
	Charset       uint8
	SliceStrategy uint8
	Mode          uint8
)

const (
	CharModeDecimal     CharMode = 0x1 // CharModeDecimal renders escapes as decimal numerals.
	CharModeHexadecimal CharMode = 0x2 // CharModeHexadecimal renders escapes as two-digit uppercase hex.

	CharsetLatin1 Charset = 0x1 // CharsetLatin1 maps every byte to the code point of the same value.
	CharsetRaw    Charset = 0x2 // CharsetRaw passes bytes through unchanged.

	SliceByOffset   SliceStrategy = 0x1 // SliceByOffset ends an entry where the next one starts.
	SliceByNullScan SliceStrategy = 0x2 // SliceByNullScan ends an entry at its first 0x00 byte.

	ModeTblToText Mode = 0x1 // ModeTblToText converts a binary table to text.
	ModeTextToTbl Mode = 0x2 // ModeTextToTbl converts text to a binary table.
	ModeAnalyse   Mode = 0x3 // ModeAnalyse reports on the structure of a binary table.
)

// Radix returns the numeral base of the mode, 10 for unknown values.
func (m CharMode) Radix() int {
	if m == CharModeHexadecimal {
		return 16
	}

	return 10
}

func (m CharMode) String() string {
	switch m {
	case CharModeDecimal:
		return "decimal"
	case CharModeHexadecimal:
		return "hexadecimal"
	default:
		return "unknown"
	}
}

func (c Charset) String() string {
	switch c {
	case CharsetLatin1:
		return "latin1"
	case CharsetRaw:
		return "raw"
	default:
		return "unknown"
	}
}

func (s SliceStrategy) String() string {
	switch s {
	case SliceByOffset:
		return "offset"
	case SliceByNullScan:
		return "nullscan"
	default:
		return "unknown"
	}
}

func (m Mode) String() string {
	switch m {
	case ModeTblToText:
		return "tbl-to-text"
	case ModeTextToTbl:
		return "text-to-tbl"
	case ModeAnalyse:
		return "analyse"
	default:
		return "unknown"
	}
}

// CharModes lists the accepted escape modes in display order.
var CharModes = []CharMode{CharModeDecimal, CharModeHexadecimal}

// Charsets lists the accepted charsets in display order.
var Charsets = []Charset{CharsetLatin1, CharsetRaw}

// SliceStrategies lists the accepted slice strategies in display order.
var SliceStrategies = []SliceStrategy{SliceByOffset, SliceByNullScan}

// Modes lists the accepted modes in display order.
var Modes = []Mode{ModeTblToText, ModeTextToTbl, ModeAnalyse}

// ParseCharMode parses the String form of a CharMode, case-insensitively.
func ParseCharMode(s string) (CharMode, error) {
	return parseEnum(s, "control character mode", CharModes)
}

// ParseCharset parses the String form of a Charset, case-insensitively.
func ParseCharset(s string) (Charset, error) {
	return parseEnum(s, "charset", Charsets)
}

// ParseSliceStrategy parses the String form of a SliceStrategy, case-insensitively.
func ParseSliceStrategy(s string) (SliceStrategy, error) {
	return parseEnum(s, "slice strategy", SliceStrategies)
}

// ParseMode parses the String form of a Mode, case-insensitively.
// "analyze" is accepted as an alias of "analyse".
func ParseMode(s string) (Mode, error) {
	if strings.EqualFold(s, "analyze") {
		return ModeAnalyse, nil
	}

	return parseEnum(s, "mode", Modes)
}

// Names returns the String form of every value in vals.
func Names[T fmt.Stringer](vals []T) []string {
	names := make([]string, len(vals))
	for i, v := range vals {
		names[i] = v.String()
	}

	return names
}

func parseEnum[T fmt.Stringer](s, what string, vals []T) (T, error) {
	for _, v := range vals {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}

	var zero T

	return zero, fmt.Errorf("%w: %s %q, must be one of %s",
		errs.ErrInvalidOption, what, s, strings.Join(Names(vals), ", "))
}
