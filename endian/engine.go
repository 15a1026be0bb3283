// Package endian provides the byte order used by the .tbl string-table format.
//
// The package combines the ByteOrder and AppendByteOrder interfaces of encoding/binary
// into a single EndianEngine so that header parsing and header emission can share one
// value:
//
//	engine := endian.GetLittleEndianEngine()
//	count := engine.Uint16(data[0:2])
//	buf = engine.AppendUint16(buf, count)
//
// Table files are always little-endian; there is no big-endian variant of the format.
//
// All functions in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian satisfies this interface.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Uint16At reads the uint16 stored at byte position pos of data.
//
// It reports false when fewer than two bytes are available at pos.
func Uint16At(engine EndianEngine, data []byte, pos int) (uint16, bool) {
	if pos < 0 || pos+2 > len(data) {
		return 0, false
	}

	return engine.Uint16(data[pos : pos+2]), true
}
