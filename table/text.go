package table

import (
	"bufio"
	"fmt"
	"io"

	"github.com/arloliu/gotbl/escape"
	"github.com/arloliu/gotbl/internal/pool"
)

// maxLineSize bounds a single text line; no entry of a 16-bit table comes close.
const maxLineSize = 1 << 20

// WriteText writes one escaped line per entry to w, each followed by a newline.
//
// The text is assembled in memory and written with a single call.
func WriteText(w io.Writer, esc *escape.Escaper, entries [][]byte) (int64, error) {
	bb := pool.GetTableBuffer()
	defer pool.PutTableBuffer(bb)

	for _, entry := range entries {
		bb.Grow(len(entry) + 1)
		bb.B = esc.AppendEncode(bb.B, entry)
		_ = bb.WriteByte('\n')
	}

	return bb.WriteTo(w)
}

// ReadLines splits r into lines, dropping "\n" and "\r\n" line endings.
// A final line without a newline is kept; a trailing newline does not add an empty line.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text lines: %w", err)
	}

	return lines, nil
}
