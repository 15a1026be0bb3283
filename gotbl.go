// Package gotbl converts .tbl string tables, as shipped with the data files of several
// strategy games, to editable text and back, and reports on their internal structure.
//
// A table is a 16-bit entry count, a table of 16-bit entry offsets and the entry bytes:
//
//	[u16 count][count × u16 offset][entry data...]
//
// In text form every entry is one line. Control bytes and the bracket characters are
// written as bracketed numerals, so "Hello\x00" becomes "Hello<0>".
//
// # Basic Usage
//
// Converting a table to text, on stdout when outputPath is empty:
//
//	err := gotbl.TableToText("stat_txt.tbl", "stat_txt.txt", os.Stdout)
//
// Converting text back to a table:
//
//	unterminated, err := gotbl.TextToTable("stat_txt.txt", "stat_txt.tbl",
//	    gotbl.WithCharMode(format.CharModeHexadecimal),
//	)
//
// unterminated lists the 1-based lines that did not end in "<0>"; it is a warning, the
// table is written regardless.
//
// Inspecting a table:
//
//	report, err := gotbl.Analyse("stat_txt.tbl", os.Stdout)
//
// # Package Structure
//
// This package wraps the table, escape and analyse packages with file handling and
// logging. Use those packages directly to work on in-memory buffers.
package gotbl

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/arloliu/gotbl/analyse"
	"github.com/arloliu/gotbl/errs"
	"github.com/arloliu/gotbl/escape"
	"github.com/arloliu/gotbl/format"
	"github.com/arloliu/gotbl/internal/fsutil"
	"github.com/arloliu/gotbl/internal/options"
	"github.com/arloliu/gotbl/table"
)

// Option configures a conversion.
type Option = options.Option[*config]

type config struct {
	charMode format.CharMode
	charset  format.Charset
	strategy format.SliceStrategy
	line     int
	hasLine  bool
	logger   *slog.Logger
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		charMode: format.CharModeDecimal,
		charset:  format.CharsetLatin1,
		strategy: format.SliceByOffset,
		logger:   slog.Default(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCharMode selects decimal or hexadecimal escapes. Defaults to decimal.
func WithCharMode(mode format.CharMode) Option {
	return options.NoError(func(c *config) {
		c.charMode = mode
	})
}

// WithCharset selects how bytes from 0x80 upwards appear in text. Defaults to Latin-1.
func WithCharset(charset format.Charset) Option {
	return options.NoError(func(c *config) {
		c.charset = charset
	})
}

// WithSliceStrategy selects how entries are cut out of a table. Defaults to offset distance.
func WithSliceStrategy(strategy format.SliceStrategy) Option {
	return options.NoError(func(c *config) {
		c.strategy = strategy
	})
}

// WithLine restricts table-to-text conversion to the entry at index.
func WithLine(index int) Option {
	return options.NoError(func(c *config) {
		c.line = index
		c.hasLine = true
	})
}

// WithLogger sets the logger for non-fatal warnings. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(c *config) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalidOption)
		}
		c.logger = logger

		return nil
	})
}

func (c *config) escaper() (*escape.Escaper, error) {
	return escape.New(
		escape.WithCharMode(c.charMode),
		escape.WithCharset(c.charset),
		escape.WithLogger(c.logger),
	)
}

// Decode returns the text form of every selected entry of the table in data.
func Decode(data []byte, opts ...Option) ([]string, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	entries, esc, err := cfg.decode(data)
	if err != nil {
		return nil, err
	}

	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = esc.Encode(entry)
	}

	return lines, nil
}

// Encode builds a table from text lines.
func Encode(lines []string, opts ...Option) (*table.Table, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return cfg.encode(lines)
}

// TableToText converts the table at inputPath to text and writes it to outputPath, or to
// stdout when outputPath is empty.
//
// The table is decoded completely before the output is opened, so a format error leaves
// no output file behind.
func TableToText(inputPath, outputPath string, stdout io.Writer, opts ...Option) (err error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	data, err := fsutil.ReadFile(inputPath)
	if err != nil {
		return err
	}

	entries, esc, err := cfg.decode(data)
	if err != nil {
		return err
	}
	cfg.logger.Debug("table decoded", "path", inputPath, "entries", len(entries), "bytes", len(data))

	sink, err := fsutil.OpenSink(outputPath, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	if _, err := table.WriteText(sink, esc, entries); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}

	return nil
}

// TextToTable converts the text file at inputPath to a table written to outputPath.
//
// It returns the 1-based numbers of the lines that did not end in "<0>", after logging
// them as a single warning. Those lines are still written.
func TextToTable(inputPath, outputPath string, opts ...Option) ([]int, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	f, err := fsutil.OpenFile(inputPath)
	if err != nil {
		return nil, err
	}
	lines, err := table.ReadLines(f)
	_ = f.Close()
	if err != nil {
		return nil, err
	}

	tbl, err := cfg.encode(lines)
	if err != nil {
		return nil, err
	}

	if err := fsutil.WriteFile(outputPath, tbl.Bytes()); err != nil {
		return nil, err
	}
	cfg.logger.Debug("table written", "path", outputPath, "entries", len(lines), "bytes", tbl.Len())

	unterminated := tbl.Unterminated()
	if len(unterminated) > 0 {
		cfg.logger.Warn("lines are not properly null-terminated (missing <0>)", "lines", unterminated)
	}

	return unterminated, nil
}

// Analyse inspects the table at inputPath and writes the report to w.
//
// A malformed table is not an error: the findings are in the report. Only failing to read
// the file or to write the report is.
func Analyse(inputPath string, w io.Writer) (*analyse.Report, error) {
	data, err := fsutil.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	report := analyse.Analyze(data)
	if _, err := report.WriteTo(w); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return report, nil
}

func (c *config) decode(data []byte) ([][]byte, *escape.Escaper, error) {
	esc, err := c.escaper()
	if err != nil {
		return nil, nil, err
	}

	decOpts := []table.DecoderOption{table.WithSliceStrategy(c.strategy)}
	if c.hasLine {
		decOpts = append(decOpts, table.WithLine(c.line))
	}

	dec, err := table.NewDecoder(data, decOpts...)
	if err != nil {
		return nil, nil, err
	}

	entries, err := dec.Entries()
	if err != nil {
		return nil, nil, err
	}

	return entries, esc, nil
}

func (c *config) encode(lines []string) (*table.Table, error) {
	esc, err := c.escaper()
	if err != nil {
		return nil, err
	}

	enc, err := table.NewEncoder(table.WithEscaper(esc))
	if err != nil {
		return nil, err
	}

	if err := enc.AddLines(lines); err != nil {
		return nil, err
	}

	return enc.Finish()
}
