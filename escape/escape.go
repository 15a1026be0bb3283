package escape

import (
	"fmt"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/arloliu/gotbl/errs"
	"github.com/arloliu/gotbl/format"
	"github.com/arloliu/gotbl/internal/options"
)

const (
	escapeOpen  = '<'
	escapeClose = '>'
	controlMax  = 0x20
	hexDigits   = "0123456789ABCDEF"
)

// ErrorHandler receives the non-fatal errors found while decoding text.
type ErrorHandler func(err error)

// Option configures an Escaper.
type Option = options.Option[*Escaper]

// Escaper maps entry bytes to escaped text and back.
//
// An Escaper is immutable after New and safe for concurrent use as long as its error
// handler is.
type Escaper struct {
	mode    format.CharMode
	charset format.Charset
	onError ErrorHandler
}

// New creates an Escaper. Without options it uses decimal escapes, the Latin-1 charset and
// logs malformed escapes through slog.Default().
func New(opts ...Option) (*Escaper, error) {
	e := &Escaper{
		mode:    format.CharModeDecimal,
		charset: format.CharsetLatin1,
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	if e.onError == nil {
		e.onError = LogHandler(slog.Default())
	}

	return e, nil
}

// WithCharMode selects the numeral radix used inside escapes.
func WithCharMode(mode format.CharMode) Option {
	return options.New(func(e *Escaper) error {
		switch mode {
		case format.CharModeDecimal, format.CharModeHexadecimal:
			e.mode = mode
			return nil
		default:
			return fmt.Errorf("%w: control character mode %d", errs.ErrInvalidOption, mode)
		}
	})
}

// WithCharset selects how unescaped bytes map to text characters.
func WithCharset(charset format.Charset) Option {
	return options.New(func(e *Escaper) error {
		switch charset {
		case format.CharsetLatin1, format.CharsetRaw:
			e.charset = charset
			return nil
		default:
			return fmt.Errorf("%w: charset %d", errs.ErrInvalidOption, charset)
		}
	})
}

// WithErrorHandler sets the handler for malformed escapes and unmappable characters.
func WithErrorHandler(h ErrorHandler) Option {
	return options.NoError(func(e *Escaper) {
		e.onError = h
	})
}

// WithLogger reports malformed escapes as warnings on logger.
func WithLogger(logger *slog.Logger) Option {
	return WithErrorHandler(LogHandler(logger))
}

// LogHandler returns an ErrorHandler that logs each error at warn level.
func LogHandler(logger *slog.Logger) ErrorHandler {
	return func(err error) {
		logger.Warn("dropping undecodable text", "error", err)
	}
}

// CharMode returns the configured escape mode.
func (e *Escaper) CharMode() format.CharMode {
	return e.mode
}

// Charset returns the configured charset.
func (e *Escaper) Charset() format.Charset {
	return e.charset
}

// NeedsEscape reports whether b is written as a bracketed numeral.
func NeedsEscape(b byte) bool {
	return b < controlMax || b == escapeOpen || b == escapeClose
}

// Encode returns the text form of data.
func (e *Escaper) Encode(data []byte) string {
	return string(e.AppendEncode(make([]byte, 0, len(data)), data))
}

// AppendEncode appends the text form of data to dst and returns the extended slice.
func (e *Escaper) AppendEncode(dst []byte, data []byte) []byte {
	for _, b := range data {
		switch {
		case NeedsEscape(b):
			dst = e.appendEscape(dst, b)
		case e.charset == format.CharsetLatin1 && b >= utf8.RuneSelf:
			dst = utf8.AppendRune(dst, charmap.ISO8859_1.DecodeByte(b))
		default:
			dst = append(dst, b)
		}
	}

	return dst
}

func (e *Escaper) appendEscape(dst []byte, b byte) []byte {
	dst = append(dst, escapeOpen)
	if e.mode == format.CharModeHexadecimal {
		dst = append(dst, hexDigits[b>>4], hexDigits[b&0x0F])
	} else {
		dst = strconv.AppendUint(dst, uint64(b), 10)
	}

	return append(dst, escapeClose)
}

// Decode returns the bytes described by text.
//
// Malformed escapes and characters outside the charset are dropped and reported to the
// error handler; Decode itself never fails.
func (e *Escaper) Decode(text string) []byte {
	return e.AppendDecode(make([]byte, 0, len(text)), text)
}

// AppendDecode appends the bytes described by text to dst and returns the extended slice.
func (e *Escaper) AppendDecode(dst []byte, text string) []byte {
	for i := 0; i < len(text); {
		c := text[i]

		if c == escapeOpen {
			// An escape runs to the next '>' or, when there is none, to the end of the text.
			j := i + 1
			for j < len(text) && text[j] != escapeClose {
				j++
			}
			dst = e.appendNumeral(dst, text[i+1:j])
			i = j + 1

			continue
		}

		if e.charset == format.CharsetRaw || c < utf8.RuneSelf {
			dst = append(dst, c)
			i++

			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			// Not UTF-8 to begin with; keep the byte as it is.
			dst = append(dst, c)
			i++

			continue
		}

		if b, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			dst = append(dst, b)
		} else {
			e.onError(fmt.Errorf("%w: %q (%U)", errs.ErrUnmappableRune, r, r))
		}
		i += size
	}

	return dst
}

func (e *Escaper) appendNumeral(dst []byte, seq string) []byte {
	radix := e.mode.Radix()

	v, err := strconv.ParseUint(seq, radix, 8)
	if err != nil {
		e.onError(&errs.EscapeError{Sequence: seq, Radix: radix, Err: err})
		return dst
	}

	return append(dst, byte(v))
}
