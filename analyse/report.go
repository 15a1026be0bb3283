package analyse

import (
	"fmt"
	"io"

	"github.com/arloliu/gotbl/internal/pool"
)

// WriteTo renders the report as human-readable text.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bb := pool.GetTableBuffer()
	defer pool.PutTableBuffer(bb)

	fmt.Fprintf(bb, "File size: %d bytes\n", r.Size)
	fmt.Fprintf(bb, "Fingerprint (xxh64): 0x%016X\n", r.Fingerprint)

	if r.TooSmall {
		bb.WriteString("File too small to contain valid data.\n")
		return bb.WriteTo(w)
	}

	fmt.Fprintf(bb, "Number of entries: %d\n", r.Count)

	if r.Truncated {
		bb.WriteString("File does not contain enough data for all offsets.\n")
		return bb.WriteTo(w)
	}

	bb.WriteString("Offset table:\n")
	for i, off := range r.Offsets {
		fmt.Fprintf(bb, "  Entry %3d: offset 0x%04X\n", i, off)
	}

	if r.FirstOffset > r.HeaderEnd {
		fmt.Fprintf(bb, "Warning: Detected %d bytes of unknown data between header and first string:\n",
			r.FirstOffset-r.HeaderEnd)
		for _, b := range r.Gap {
			fmt.Fprintf(bb, "%02X ", b)
		}
		bb.WriteString("\n")
	} else {
		bb.WriteString("No unexpected data detected between header and first string.\n")
	}

	for _, warn := range r.Warnings {
		switch warn.Kind {
		case WarningOutOfBounds:
			fmt.Fprintf(bb, "  Warning: Offset %d is outside the file bounds.\n", warn.Position)
		case WarningNotNullTerminated:
			fmt.Fprintf(bb, "  Warning: Offset %d is not null terminated.\n", warn.Position)
		}
	}

	if len(r.Warnings) == 0 {
		bb.WriteString("All strings appear to be correctly null terminated.\n")
	}

	return bb.WriteTo(w)
}
