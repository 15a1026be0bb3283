package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/gotbl/errs"
	"github.com/arloliu/gotbl/escape"
	"github.com/arloliu/gotbl/internal/options"
	"github.com/arloliu/gotbl/internal/pool"
	"github.com/arloliu/gotbl/section"
)

// Terminator is the escaped form of the 0x00 byte that conventionally ends every entry.
const Terminator = "<0>"

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// Encoder builds a table from escaped text lines.
//
// Note: an Encoder is NOT reusable. After Finish, create a new one.
type Encoder struct {
	escOpts      []escape.Option
	escaper      *escape.Escaper
	data         *pool.ByteBuffer
	starts       []int
	unterminated []int
	finished     bool
}

// NewEncoder creates an Encoder.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	if e.escaper == nil {
		esc, err := escape.New(e.escOpts...)
		if err != nil {
			return nil, err
		}
		e.escaper = esc
	}

	e.data = pool.GetTableBuffer()

	return e, nil
}

// WithEscapeOptions configures the escaper used to unescape lines.
func WithEscapeOptions(opts ...escape.Option) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.escOpts = append(e.escOpts, opts...)
	})
}

// WithEscaper makes the encoder use esc; WithEscapeOptions is then ignored.
func WithEscaper(esc *escape.Escaper) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.escaper = esc
	})
}

// Count returns the number of lines added so far.
func (e *Encoder) Count() int {
	return len(e.starts)
}

// AddLine unescapes text and appends it as the next entry.
//
// Malformed escapes inside text are dropped and reported by the escaper; they do not fail
// AddLine.
func (e *Encoder) AddLine(text string) error {
	if e.finished {
		return fmt.Errorf("table encoder already finished")
	}
	if len(e.starts) >= section.MaxCount {
		return fmt.Errorf("%w: more than %d lines", errs.ErrTooManyEntries, section.MaxCount)
	}

	e.starts = append(e.starts, e.data.Len())
	if !strings.HasSuffix(text, Terminator) {
		e.unterminated = append(e.unterminated, len(e.starts))
	}

	e.data.Grow(len(text))
	e.data.B = e.escaper.AppendDecode(e.data.B, text)

	return nil
}

// AddLines adds every line in order.
func (e *Encoder) AddLines(lines []string) error {
	for _, line := range lines {
		if err := e.AddLine(line); err != nil {
			return err
		}
	}

	return nil
}

// Finish lays out the header and data and returns the finished table.
//
// It fails with errs.ErrTableTooLarge when an entry starts beyond the reach of a 16-bit
// offset.
func (e *Encoder) Finish() (*Table, error) {
	if e.finished {
		return nil, fmt.Errorf("table encoder already finished")
	}
	e.finished = true
	defer pool.PutTableBuffer(e.data)

	header, err := section.NewHeader(len(e.starts))
	if err != nil {
		return nil, err
	}

	base := header.Size()
	for i, start := range e.starts {
		if err := header.SetOffset(i, base+start); err != nil {
			return nil, err
		}
	}

	out := make([]byte, 0, base+e.data.Len())
	out = header.AppendTo(out)
	out = append(out, e.data.Bytes()...)

	return &Table{data: out, unterminated: e.unterminated}, nil
}

// Table is an encoded table.
type Table struct {
	data         []byte
	unterminated []int
}

// Bytes returns the encoded table.
func (t *Table) Bytes() []byte {
	return t.data
}

// Len returns the encoded size in bytes.
func (t *Table) Len() int {
	return len(t.data)
}

// Unterminated returns the 1-based numbers of the lines that did not end in Terminator,
// in ascending order.
func (t *Table) Unterminated() []int {
	return t.unterminated
}

// WriteTo writes the encoded table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.data)
	return int64(n), err
}
