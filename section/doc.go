// Package section defines the binary layout of a .tbl string table header.
//
// A table is a count, an offset table and a data region:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Count (2 bytes, u16 LE)                                  │
//	├──────────────────────────────────────────────────────────┤
//	│ Offset table (Count × 2 bytes, u16 LE)                   │
//	│  - absolute byte position of each entry                  │
//	├──────────────────────────────────────────────────────────┤
//	│ String data (variable)                                   │
//	│  - entry bytes back to back, each conventionally         │
//	│    terminated by a single 0x00                           │
//	└──────────────────────────────────────────────────────────┘
//
// No end offset is stored. Entry i spans [Offsets[i], Offsets[i+1]) and the last entry
// runs to the end of the buffer.
package section
