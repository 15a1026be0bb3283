package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/gotbl"
	"github.com/arloliu/gotbl/format"
)

const (
	// ExitCodeUsage is returned for invalid flags or flag combinations.
	ExitCodeUsage = 2
	// Version is reported by --version.
	Version = "0.2.0"
)

// ExitError is an error that carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(msg string, args ...any) error {
	return &ExitError{Code: ExitCodeUsage, Message: fmt.Sprintf(msg, args...)}
}

// Shells lists the shells accepted by --generate-shell-completions.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Config is the validated result of parsing the command line.
type Config struct {
	Mode          format.Mode
	Input         string
	Output        string
	CharMode      format.CharMode
	Charset       format.Charset
	SliceStrategy format.SliceStrategy
	Line          uint16
	HasLine       bool
	LogLevel      slog.Level
}

// Options returns the conversion options described by the config.
func (c *Config) Options(logger *slog.Logger) []gotbl.Option {
	opts := []gotbl.Option{
		gotbl.WithCharMode(c.CharMode),
		gotbl.WithCharset(c.Charset),
		gotbl.WithSliceStrategy(c.SliceStrategy),
		gotbl.WithLogger(logger),
	}
	if c.HasLine {
		opts = append(opts, gotbl.WithLine(int(c.Line)))
	}

	return opts
}

type flags struct {
	input         string
	output        string
	mode          string
	charMode      string
	charset       string
	sliceStrategy string
	line          uint16
	logLevel      string
	shell         string
}

// NewRootCommand builds the gotbl command. Regular output goes to stdout; logs, warnings
// and errors go to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "gotbl",
		Short: "Converts *.tbl files from Blizzard games to text and vice versa.",
		Long: `gotbl converts the string tables (*.tbl) used by Blizzard strategy games to
editable text and back, and analyses tables for structural problems.

Modes:
  tbl-to-text  Convert a binary table to text (stdout unless --output is given).
  text-to-tbl  Convert text to a binary table (--output required).
  analyse      Report the header, offset table and termination of every entry.

Control bytes and the characters '<' and '>' are written as <N>, in decimal or
hexadecimal depending on --control-character-mode. Every line is expected to end
with <0>, the terminating null byte.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.shell != "" {
				return generateCompletion(cmd, f.shell)
			}

			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
			logger.Debug("CLI arguments validated", "mode", cfg.Mode, "input", cfg.Input, "output", cfg.Output)

			return Execute(cfg, stdout, logger)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitCodeUsage, Message: err.Error()}
	})

	fs := cmd.Flags()
	fs.StringVarP(&f.input, "input", "i", "", "Specifies the input file path")
	fs.StringVarP(&f.output, "output", "o", "",
		"Specifies the output file path. If omitted in tbl-to-text mode, output goes to stdout.")
	fs.StringVarP(&f.mode, "mode", "m", "",
		"Mode of operation ("+strings.Join(format.Names(format.Modes), ", ")+")")
	fs.StringVarP(&f.charMode, "control-character-mode", "c", format.CharModeDecimal.String(),
		"Specifies whether to use decimal or hexadecimal for control characters")
	fs.StringVar(&f.charset, "charset", format.CharsetLatin1.String(),
		"How bytes 0x80-0xFF appear in text ("+strings.Join(format.Names(format.Charsets), ", ")+")")
	fs.StringVar(&f.sliceStrategy, "slice-strategy", format.SliceByOffset.String(),
		"How entries are cut out of a table ("+strings.Join(format.Names(format.SliceStrategies), ", ")+")")
	fs.Uint16VarP(&f.line, "line-number", "l", 0, "If given, only the specified line will be printed.")
	fs.StringVar(&f.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.shell, "generate-shell-completions", "",
		"Generate shell completions ("+strings.Join(Shells, ", ")+")")

	_ = cmd.MarkFlagFilename("input", "tbl", "txt")
	_ = cmd.MarkFlagFilename("output", "tbl", "txt")
	registerEnumCompletion(cmd, "mode", format.Names(format.Modes))
	registerEnumCompletion(cmd, "control-character-mode", format.Names(format.CharModes))
	registerEnumCompletion(cmd, "charset", format.Names(format.Charsets))
	registerEnumCompletion(cmd, "slice-strategy", format.Names(format.SliceStrategies))
	registerEnumCompletion(cmd, "log-level", []string{"debug", "info", "warn", "error"})
	registerEnumCompletion(cmd, "generate-shell-completions", Shells)

	return cmd
}

func registerEnumCompletion(cmd *cobra.Command, flag string, values []string) {
	_ = cmd.RegisterFlagCompletionFunc(flag,
		func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		})
}

// config validates the parsed flags. Every invalid combination is rejected here, before
// any file is touched.
func (f *flags) config(cmd *cobra.Command) (*Config, error) {
	if f.mode == "" {
		return nil, usageError("Mode of operation must be specified!")
	}
	if f.input == "" {
		return nil, usageError("Input file must be specified!")
	}

	mode, err := format.ParseMode(f.mode)
	if err != nil {
		return nil, usageError("%v", err)
	}
	charMode, err := format.ParseCharMode(f.charMode)
	if err != nil {
		return nil, usageError("%v", err)
	}
	charset, err := format.ParseCharset(f.charset)
	if err != nil {
		return nil, usageError("%v", err)
	}
	strategy, err := format.ParseSliceStrategy(f.sliceStrategy)
	if err != nil {
		return nil, usageError("%v", err)
	}
	level, ok := logLevels[strings.ToLower(f.logLevel)]
	if !ok {
		return nil, usageError("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", f.logLevel)
	}

	hasLine := cmd.Flags().Changed("line-number")
	strategySet := cmd.Flags().Changed("slice-strategy")

	switch mode {
	case format.ModeTextToTbl:
		if f.output == "" {
			return nil, usageError("Output file must be specified in text-to-tbl mode.")
		}
		if hasLine {
			return nil, usageError("Line number option is not applicable in text-to-tbl mode.")
		}
		if strategySet {
			return nil, usageError("Slice strategy option is not applicable in text-to-tbl mode.")
		}
	case format.ModeAnalyse:
		if f.output != "" {
			return nil, usageError("Output file must not be specified in analyse mode.")
		}
		if hasLine {
			return nil, usageError("Line number option is not applicable in analyse mode.")
		}
		if strategySet {
			return nil, usageError("Slice strategy option is not applicable in analyse mode.")
		}
	case format.ModeTblToText:
	}

	return &Config{
		Mode:          mode,
		Input:         f.input,
		Output:        f.output,
		CharMode:      charMode,
		Charset:       charset,
		SliceStrategy: strategy,
		Line:          f.line,
		HasLine:       hasLine,
		LogLevel:      level,
	}, nil
}

// Execute runs the operation selected by cfg.
func Execute(cfg *Config, stdout io.Writer, logger *slog.Logger) error {
	switch cfg.Mode {
	case format.ModeTblToText:
		return gotbl.TableToText(cfg.Input, cfg.Output, stdout, cfg.Options(logger)...)
	case format.ModeTextToTbl:
		_, err := gotbl.TextToTable(cfg.Input, cfg.Output, cfg.Options(logger)...)
		return err
	case format.ModeAnalyse:
		_, err := gotbl.Analyse(cfg.Input, stdout)
		return err
	default:
		return errors.New("unknown mode")
	}
}

func generateCompletion(cmd *cobra.Command, shell string) error {
	out := cmd.OutOrStdout()

	switch strings.ToLower(shell) {
	case "bash":
		return cmd.GenBashCompletionV2(out, true)
	case "zsh":
		return cmd.GenZshCompletion(out)
	case "fish":
		return cmd.GenFishCompletion(out, true)
	case "powershell":
		return cmd.GenPowerShellCompletionWithDesc(out)
	default:
		return usageError("unsupported shell %q: must be one of %s", shell, strings.Join(Shells, ", "))
	}
}
