package analyse

import (
	"slices"

	"github.com/arloliu/gotbl/internal/hash"
	"github.com/arloliu/gotbl/section"
)

// WarningKind classifies a per-entry finding.
type WarningKind uint8

const (
	// WarningOutOfBounds means the presumed last byte of an entry lies outside the buffer.
	WarningOutOfBounds WarningKind = iota + 1
	// WarningNotNullTerminated means the last byte of an entry is not 0x00.
	WarningNotNullTerminated
)

func (k WarningKind) String() string {
	switch k {
	case WarningOutOfBounds:
		return "out of bounds"
	case WarningNotNullTerminated:
		return "not null terminated"
	default:
		return "unknown"
	}
}

// EntryWarning is a problem found with a single entry.
type EntryWarning struct {
	// Index is the entry index.
	Index int
	// Kind is the kind of problem.
	Kind WarningKind
	// Position is the offending byte position for WarningOutOfBounds and the entry's
	// start offset for WarningNotNullTerminated.
	Position int
}

// Report is the result of Analyze.
type Report struct {
	// Size is the buffer length in bytes.
	Size int
	// Fingerprint is the xxHash64 of the whole buffer.
	Fingerprint uint64
	// TooSmall is set when the buffer cannot hold the entry count. Nothing else is filled in.
	TooSmall bool
	// Count is the declared number of entries.
	Count int
	// Truncated is set when the buffer cannot hold the whole offset table. Only Size,
	// Fingerprint and Count are filled in.
	Truncated bool
	// Offsets holds every entry offset in index order.
	Offsets []int
	// HeaderEnd is the position right after the offset table.
	HeaderEnd int
	// FirstOffset is the smallest entry offset, or HeaderEnd when there are no entries.
	FirstOffset int
	// Gap holds the bytes between HeaderEnd and FirstOffset, clipped to the buffer.
	Gap []byte
	// Warnings lists per-entry problems in index order.
	Warnings []EntryWarning
}

// Complete reports whether the analysis got past the header checks.
func (r *Report) Complete() bool {
	return !r.TooSmall && !r.Truncated
}

// Healthy reports whether the buffer has a complete header, no hidden gap and no entry
// warnings.
func (r *Report) Healthy() bool {
	return r.Complete() && len(r.Gap) == 0 && len(r.Warnings) == 0
}

// Analyze inspects data and returns what it found.
func Analyze(data []byte) *Report {
	r := &Report{
		Size:        len(data),
		Fingerprint: hash.Fingerprint(data),
	}

	count, err := section.ParseCount(data)
	if err != nil {
		r.TooSmall = true
		return r
	}
	r.Count = count

	header := &section.Header{}
	if err := header.Parse(data); err != nil {
		r.Truncated = true
		return r
	}

	r.Offsets = make([]int, count)
	for i, off := range header.Offsets {
		r.Offsets[i] = int(off)
	}

	r.HeaderEnd = section.HeaderEnd(count)
	r.FirstOffset = r.HeaderEnd
	if count > 0 {
		r.FirstOffset = slices.Min(r.Offsets)
	}

	if r.FirstOffset > r.HeaderEnd {
		r.Gap = data[r.HeaderEnd:min(r.FirstOffset, len(data))]
	}

	r.Warnings = checkTermination(data, r.Offsets)

	return r
}

// checkTermination looks at the presumed last byte of every entry: the byte before the
// next entry's offset, or the last byte of the buffer for the final entry.
func checkTermination(data []byte, offsets []int) []EntryWarning {
	var warnings []EntryWarning

	for i, off := range offsets {
		end := len(data) - 1
		if i+1 < len(offsets) {
			end = offsets[i+1] - 1
		}

		if end < 0 || end >= len(data) {
			warnings = append(warnings, EntryWarning{Index: i, Kind: WarningOutOfBounds, Position: end})
			continue
		}

		if data[end] != 0 {
			warnings = append(warnings, EntryWarning{Index: i, Kind: WarningNotNullTerminated, Position: off})
		}
	}

	return warnings
}
