package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	var testValue uint16 = 0x0102
	bytes := make([]byte, 2)
	engine.PutUint16(bytes, testValue)
	// Little endian should put LSB first
	require.Equal(t, byte(0x02), bytes[0], "Little endian should put LSB first")
	require.Equal(t, byte(0x01), bytes[1], "Little endian should put MSB second")

	require.Equal(t, testValue, engine.Uint16(bytes))
	require.Equal(t, []byte{0x34, 0x12}, engine.AppendUint16(nil, 0x1234))
}

func TestUint16At(t *testing.T) {
	engine := GetLittleEndianEngine()
	data := []byte{0x03, 0x00, 0x08, 0x00, 0xFF}

	t.Run("Reads value at start", func(t *testing.T) {
		v, ok := Uint16At(engine, data, 0)
		require.True(t, ok)
		require.Equal(t, uint16(3), v)
	})

	t.Run("Reads value at offset", func(t *testing.T) {
		v, ok := Uint16At(engine, data, 2)
		require.True(t, ok)
		require.Equal(t, uint16(8), v)
	})

	t.Run("Reads value spanning last byte", func(t *testing.T) {
		v, ok := Uint16At(engine, data, 3)
		require.True(t, ok)
		require.Equal(t, uint16(0xFF00), v)
	})

	t.Run("Rejects position past the end", func(t *testing.T) {
		_, ok := Uint16At(engine, data, 4)
		require.False(t, ok)
	})

	t.Run("Rejects negative position", func(t *testing.T) {
		_, ok := Uint16At(engine, data, -1)
		require.False(t, ok)
	})

	t.Run("Rejects empty data", func(t *testing.T) {
		_, ok := Uint16At(engine, nil, 0)
		require.False(t, ok)
	})
}
