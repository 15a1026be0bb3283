package analyse

import (
	"bytes"
	"testing"

	"github.com/arloliu/gotbl/internal/hash"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, r *Report) string {
	t.Helper()

	var out bytes.Buffer
	n, err := r.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(out.Len()), n)

	return out.String()
}

func TestAnalyze_WellFormed(t *testing.T) {
	data := []byte{0x02, 0x00, 0x06, 0x00, 0x09, 0x00, 'H', 'i', 0x00, 'Y', 'o', 0x00}

	r := Analyze(data)

	require.True(t, r.Complete())
	require.True(t, r.Healthy())
	require.Equal(t, 12, r.Size)
	require.Equal(t, hash.Fingerprint(data), r.Fingerprint)
	require.Equal(t, 2, r.Count)
	require.Equal(t, []int{6, 9}, r.Offsets)
	require.Equal(t, 6, r.HeaderEnd)
	require.Equal(t, 6, r.FirstOffset)
	require.Empty(t, r.Gap)
	require.Empty(t, r.Warnings)

	text := render(t, r)
	require.Contains(t, text, "File size: 12 bytes\n")
	require.Contains(t, text, "Number of entries: 2\n")
	require.Contains(t, text, "Offset table:\n  Entry   0: offset 0x0006\n  Entry   1: offset 0x0009\n")
	require.Contains(t, text, "No unexpected data detected between header and first string.\n")
	require.Contains(t, text, "All strings appear to be correctly null terminated.\n")
}

func TestAnalyze_TooSmall(t *testing.T) {
	for _, data := range [][]byte{nil, {0x01}} {
		r := Analyze(data)

		require.True(t, r.TooSmall)
		require.False(t, r.Complete())
		require.False(t, r.Healthy())

		text := render(t, r)
		require.Contains(t, text, "File too small to contain valid data.")
		require.NotContains(t, text, "Number of entries")
	}
}

func TestAnalyze_TruncatedOffsetTable(t *testing.T) {
	r := Analyze([]byte{0x04, 0x00, 0x0A, 0x00})

	require.True(t, r.Truncated)
	require.Equal(t, 4, r.Count)
	require.Nil(t, r.Offsets)

	text := render(t, r)
	require.Contains(t, text, "Number of entries: 4\n")
	require.Contains(t, text, "File does not contain enough data for all offsets.")
	require.NotContains(t, text, "Offset table:")
}

func TestAnalyze_ZeroEntries(t *testing.T) {
	r := Analyze([]byte{0x00, 0x00})

	require.True(t, r.Healthy())
	require.Equal(t, 2, r.FirstOffset)

	text := render(t, r)
	require.Contains(t, text, "Number of entries: 0\nOffset table:\nNo unexpected data")
	require.Contains(t, text, "All strings appear to be correctly null terminated.")
}

func TestAnalyze_HeaderGap(t *testing.T) {
	data := []byte{0x01, 0x00, 0x07, 0x00, 0xDE, 0xAD, 0x0F, 'A', 0x00}

	r := Analyze(data)

	require.Equal(t, []byte{0xDE, 0xAD, 0x0F}, r.Gap)
	require.False(t, r.Healthy())
	require.Empty(t, r.Warnings)

	text := render(t, r)
	require.Contains(t, text, "Warning: Detected 3 bytes of unknown data between header and first string:\nDE AD 0F \n")
}

func TestAnalyze_GapUsesSmallestOffset(t *testing.T) {
	// Offsets are out of order; the gap ends at the smaller one.
	data := []byte{0x02, 0x00, 0x0A, 0x00, 0x07, 0x00, 0xEE, 'a', 0x00, 0x00, 'b', 0x00}

	r := Analyze(data)

	require.Equal(t, 7, r.FirstOffset)
	require.Equal(t, []byte{0xEE}, r.Gap)
}

func TestAnalyze_GapClippedToBuffer(t *testing.T) {
	data := []byte{0x01, 0x00, 0x40, 0x00, 0x01}

	r := Analyze(data)

	require.Equal(t, 0x40, r.FirstOffset)
	require.Equal(t, []byte{0x01}, r.Gap)
	require.Contains(t, render(t, r), "Detected 60 bytes of unknown data")
}

func TestAnalyze_NotNullTerminated(t *testing.T) {
	data := []byte{0x02, 0x00, 0x06, 0x00, 0x08, 0x00, 'a', 'b', 'c', 0x00}

	r := Analyze(data)

	require.Equal(t, []EntryWarning{{Index: 0, Kind: WarningNotNullTerminated, Position: 6}}, r.Warnings)

	text := render(t, r)
	require.Contains(t, text, "  Warning: Offset 6 is not null terminated.\n")
	require.NotContains(t, text, "All strings appear")
}

func TestAnalyze_LastEntryNotNullTerminated(t *testing.T) {
	data := []byte{0x01, 0x00, 0x04, 0x00, 'x', 'y'}

	r := Analyze(data)

	require.Equal(t, []EntryWarning{{Index: 0, Kind: WarningNotNullTerminated, Position: 4}}, r.Warnings)
}

func TestAnalyze_OutOfBounds(t *testing.T) {
	t.Run("Next offset past the end", func(t *testing.T) {
		data := []byte{0x02, 0x00, 0x06, 0x00, 0x50, 0x00, 'a', 0x00}

		r := Analyze(data)

		require.Equal(t, []EntryWarning{{Index: 0, Kind: WarningOutOfBounds, Position: 0x4F}}, r.Warnings)

		text := render(t, r)
		require.Contains(t, text, "  Warning: Offset 79 is outside the file bounds.\n")
		require.NotContains(t, text, "All strings appear")
	})

	t.Run("Next offset zero", func(t *testing.T) {
		data := []byte{0x02, 0x00, 0x06, 0x00, 0x00, 0x00, 'a', 0x00}

		r := Analyze(data)

		require.Len(t, r.Warnings, 1)
		require.Equal(t, WarningOutOfBounds, r.Warnings[0].Kind)
		require.Equal(t, -1, r.Warnings[0].Position)
	})

	t.Run("Analysis continues after a warning", func(t *testing.T) {
		data := []byte{0x03, 0x00, 0x08, 0x00, 0x60, 0x00, 0x08, 0x00, 'a', 'b'}

		r := Analyze(data)

		require.Equal(t, []EntryWarning{
			{Index: 0, Kind: WarningOutOfBounds, Position: 0x5F},
			{Index: 2, Kind: WarningNotNullTerminated, Position: 8},
		}, r.Warnings)
	})
}

func TestWarningKind_String(t *testing.T) {
	require.Equal(t, "out of bounds", WarningOutOfBounds.String())
	require.Equal(t, "not null terminated", WarningNotNullTerminated.String())
	require.Equal(t, "unknown", WarningKind(0).String())
}
