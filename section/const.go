package section

import "math"

const (
	CountSize  = 2              // size of the entry count field in bytes
	OffsetSize = 2              // size of one offset table slot in bytes
	MaxCount   = math.MaxUint16 // largest entry count the count field can hold
	MaxOffset  = math.MaxUint16 // largest position an offset slot can address
)

// HeaderEnd returns the position of the first byte after the offset table of a table
// holding count entries.
func HeaderEnd(count int) int {
	return CountSize + count*OffsetSize
}
