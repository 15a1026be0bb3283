package section

import (
	"fmt"

	"github.com/arloliu/gotbl/endian"
	"github.com/arloliu/gotbl/errs"
)

// Header is the count and offset table at the start of a table buffer.
type Header struct {
	// Offsets holds the absolute start position of every entry, in entry order.
	// len(Offsets) is the entry count.
	Offsets []uint16
}

// NewHeader creates a header for count entries with all offsets zero.
func NewHeader(count int) (*Header, error) {
	if count < 0 || count > MaxCount {
		return nil, fmt.Errorf("%w: %d entries", errs.ErrTooManyEntries, count)
	}

	return &Header{Offsets: make([]uint16, count)}, nil
}

// ParseCount reads the entry count from the first two bytes of data.
func ParseCount(data []byte) (int, error) {
	count, ok := endian.Uint16At(endian.GetLittleEndianEngine(), data, 0)
	if !ok {
		return 0, errs.ErrFileTooSmall
	}

	return int(count), nil
}

// Parse reads the count and the offset table from data.
//
// It fails with errs.ErrFileTooSmall when data cannot hold the count and with
// errs.ErrTruncatedOffsetTable when it cannot hold every offset. Offsets are not checked
// against the buffer here; see EntryBounds.
func (h *Header) Parse(data []byte) error {
	count, err := ParseCount(data)
	if err != nil {
		return err
	}

	if len(data) < HeaderEnd(count) {
		return fmt.Errorf("%w: %d entries need %d bytes, file has %d",
			errs.ErrTruncatedOffsetTable, count, HeaderEnd(count), len(data))
	}

	engine := endian.GetLittleEndianEngine()
	h.Offsets = make([]uint16, count)
	for i := range h.Offsets {
		h.Offsets[i] = engine.Uint16(data[CountSize+i*OffsetSize:])
	}

	return nil
}

// Count returns the number of entries.
func (h *Header) Count() int {
	return len(h.Offsets)
}

// Size returns the encoded size of the header in bytes.
func (h *Header) Size() int {
	return HeaderEnd(len(h.Offsets))
}

// SetOffset sets the start position of entry i.
func (h *Header) SetOffset(i int, pos int) error {
	if pos < 0 || pos > MaxOffset {
		return fmt.Errorf("%w: entry %d at byte %d", errs.ErrTableTooLarge, i, pos)
	}
	h.Offsets[i] = uint16(pos) //nolint: gosec

	return nil
}

// EntryBounds returns the extent [start, end) of entry i inside a buffer of dataLen bytes.
//
// The end is the next entry's offset, or dataLen for the last entry.
func (h *Header) EntryBounds(i int, dataLen int) (start, end int, err error) {
	start = int(h.Offsets[i])
	if start >= dataLen {
		return 0, 0, fmt.Errorf("%w: entry %d offset %d, file size %d", errs.ErrOffsetOutOfRange, i, start, dataLen)
	}

	end = dataLen
	if i+1 < len(h.Offsets) {
		end = int(h.Offsets[i+1])
	}

	if end > dataLen {
		return 0, 0, fmt.Errorf("%w: entry %d ends at %d, file size %d", errs.ErrOffsetOutOfRange, i, end, dataLen)
	}
	if end < start {
		return 0, 0, fmt.Errorf("%w: entry %d starts at %d, next entry at %d", errs.ErrOffsetOrder, i, start, end)
	}

	return start, end, nil
}

// AppendTo appends the encoded header to buf.
func (h *Header) AppendTo(buf []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	buf = engine.AppendUint16(buf, uint16(len(h.Offsets))) //nolint: gosec
	for _, off := range h.Offsets {
		buf = engine.AppendUint16(buf, off)
	}

	return buf
}

// Bytes serializes the header into a new byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, h.Size()))
}
