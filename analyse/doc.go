// Package analyse inspects the structure of a .tbl buffer without decoding it.
//
// Analyze never fails. Structural problems that make the rest of the buffer unreadable
// (a missing count, a truncated offset table) end the analysis early and are recorded on
// the Report; per-entry problems are collected as warnings and the analysis carries on.
//
//	report := analyse.Analyze(data)
//	report.WriteTo(os.Stdout)
//
// The rendered text lists the entry count, the offset table, any bytes hidden between the
// offset table and the first string, and every entry whose last byte is not 0x00.
package analyse
