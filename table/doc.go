// Package table encodes and decodes .tbl string tables.
//
// # Decoding
//
// A Decoder parses the header once and hands out entries as raw byte slices that alias
// the input buffer:
//
//	dec, err := table.NewDecoder(data)
//	if err != nil {
//	    return err // errors.Is(err, errs.ErrFormat)
//	}
//	entries, err := dec.Entries()
//
// Entries are sliced by offset distance: entry i ends where entry i+1 starts and the last
// entry runs to the end of the buffer, so the conventional 0x00 terminator is part of the
// entry. The legacy strategy, format.SliceByNullScan, ends each entry at its first 0x00
// instead and drops the terminator.
//
// WithLine restricts Entries to a single index. An index outside [0, count) selects nothing
// and is not an error.
//
// # Encoding
//
// An Encoder collects text lines, unescapes each one and lays the results out back to back
// behind a freshly computed offset table:
//
//	enc, _ := table.NewEncoder(table.WithEscapeOptions(escape.WithCharMode(format.CharModeHexadecimal)))
//	_ = enc.AddLines(lines)
//	tbl, err := enc.Finish()
//	os.WriteFile(path, tbl.Bytes(), 0o644)
//
// Nothing is appended to an entry; a line is expected to carry its own "<0>" terminator.
// Lines that do not end in "<0>" are listed by Table.Unterminated.
//
// Neither Decoder nor Encoder is safe for concurrent use.
package table
