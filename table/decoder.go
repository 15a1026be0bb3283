package table

import (
	"bytes"
	"fmt"

	"github.com/arloliu/gotbl/errs"
	"github.com/arloliu/gotbl/format"
	"github.com/arloliu/gotbl/internal/options"
	"github.com/arloliu/gotbl/section"
)

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*Decoder]

// Decoder reads entries out of a table buffer.
type Decoder struct {
	data     []byte
	header   *section.Header
	strategy format.SliceStrategy
	line     int
	hasLine  bool
}

// NewDecoder parses the header of data.
//
// It fails with errs.ErrFileTooSmall or errs.ErrTruncatedOffsetTable when the header does
// not fit in data. Entry offsets are validated when entries are read.
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{
		data:     data,
		header:   &section.Header{},
		strategy: format.SliceByOffset,
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	if err := d.header.Parse(data); err != nil {
		return nil, err
	}

	return d, nil
}

// WithSliceStrategy selects how entry ends are found.
func WithSliceStrategy(strategy format.SliceStrategy) DecoderOption {
	return options.New(func(d *Decoder) error {
		switch strategy {
		case format.SliceByOffset, format.SliceByNullScan:
			d.strategy = strategy
			return nil
		default:
			return fmt.Errorf("%w: slice strategy %d", errs.ErrInvalidOption, strategy)
		}
	})
}

// WithLine restricts Entries to the entry at index.
func WithLine(index int) DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.line = index
		d.hasLine = true
	})
}

// Count returns the number of entries declared by the header.
func (d *Decoder) Count() int {
	return d.header.Count()
}

// Offset returns the start position of entry i as stored in the offset table.
func (d *Decoder) Offset(i int) int {
	return int(d.header.Offsets[i])
}

// Strategy returns the slice strategy in use.
func (d *Decoder) Strategy() format.SliceStrategy {
	return d.strategy
}

// Entry returns the raw bytes of entry i. The slice aliases the decoder's buffer.
func (d *Decoder) Entry(i int) ([]byte, error) {
	if i < 0 || i >= d.Count() {
		return nil, fmt.Errorf("%w: %d of %d", errs.ErrEntryIndex, i, d.Count())
	}

	if d.strategy == format.SliceByNullScan {
		return d.nullScanEntry(i)
	}

	start, end, err := d.header.EntryBounds(i, len(d.data))
	if err != nil {
		return nil, err
	}

	return d.data[start:end], nil
}

// Entries returns every selected entry in index order.
//
// All selected entries are validated before anything is returned, so a format error
// means no entries at all. With WithLine set the result holds at most one entry.
func (d *Decoder) Entries() ([][]byte, error) {
	if d.hasLine {
		if d.line < 0 || d.line >= d.Count() {
			return nil, nil
		}

		entry, err := d.Entry(d.line)
		if err != nil {
			return nil, err
		}

		return [][]byte{entry}, nil
	}

	entries := make([][]byte, d.Count())
	for i := range entries {
		entry, err := d.Entry(i)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}

	return entries, nil
}

// nullScanEntry slices entry i from its offset up to, not including, the first 0x00 byte
// or the end of the buffer.
func (d *Decoder) nullScanEntry(i int) ([]byte, error) {
	start := d.Offset(i)
	if start >= len(d.data) {
		return nil, fmt.Errorf("%w: entry %d offset %d, file size %d", errs.ErrOffsetOutOfRange, i, start, len(d.data))
	}

	rest := d.data[start:]
	if end := bytes.IndexByte(rest, 0); end >= 0 {
		return rest[:end], nil
	}

	return rest, nil
}
