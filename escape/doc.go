// Package escape converts between raw entry bytes and their printable text form.
//
// Bytes below 0x20 and the bracket characters '<' (0x3C) and '>' (0x3E) are written as a
// bracketed numeral, every other byte as a single character:
//
//	esc, _ := escape.New(escape.WithCharMode(format.CharModeDecimal))
//	esc.Encode([]byte("Hi\x00"))    // "Hi<0>"
//	esc.Decode("<60>tag<62><0>")    // "<tag>\x00"
//
// In hexadecimal mode the numeral is always two uppercase digits ("<0A>").
//
// # Charsets
//
// Bytes from 0x80 upwards have no single obvious text form. With format.CharsetLatin1
// (the default) byte b becomes the code point U+00b, so the text is valid UTF-8 and every
// byte survives a round trip. With format.CharsetRaw bytes are copied verbatim and the text
// may not be valid UTF-8.
//
// # Malformed escapes
//
// An escape whose numeral does not parse in the configured radix, or does not fit in a
// byte, is dropped: it contributes no bytes and the error handler receives an
// *errs.EscapeError. The default handler logs a warning through log/slog.
package escape
