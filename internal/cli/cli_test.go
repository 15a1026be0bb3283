package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/gotbl/format"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func requireExitCode(t *testing.T, err error, code int, msg string) {
	t.Helper()

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %v", err)
	require.Equal(t, code, exitErr.Code)
	if msg != "" {
		require.Equal(t, msg, exitErr.Message)
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestFlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"missing mode", []string{"-i", "a.tbl"}, "Mode of operation must be specified!"},
		{"missing input", []string{"-m", "tbl-to-text"}, "Input file must be specified!"},
		{"text-to-tbl without output", []string{"-m", "text-to-tbl", "-i", "a.txt"},
			"Output file must be specified in text-to-tbl mode."},
		{"text-to-tbl with line", []string{"-m", "text-to-tbl", "-i", "a.txt", "-o", "a.tbl", "-l", "3"},
			"Line number option is not applicable in text-to-tbl mode."},
		{"analyse with output", []string{"-m", "analyse", "-i", "a.tbl", "-o", "x"},
			"Output file must not be specified in analyse mode."},
		{"analyse with line", []string{"-m", "analyse", "-i", "a.tbl", "-l", "0"},
			"Line number option is not applicable in analyse mode."},
		{"analyse with strategy", []string{"-m", "analyse", "-i", "a.tbl", "--slice-strategy", "nullscan"},
			"Slice strategy option is not applicable in analyse mode."},
		{"unknown mode", []string{"-m", "shuffle", "-i", "a.tbl"}, ""},
		{"unknown char mode", []string{"-m", "tbl-to-text", "-i", "a.tbl", "-c", "octal"}, ""},
		{"unknown charset", []string{"-m", "tbl-to-text", "-i", "a.tbl", "--charset", "utf16"}, ""},
		{"unknown log level", []string{"-m", "tbl-to-text", "-i", "a.tbl", "--log-level", "loud"}, ""},
		{"line out of u16 range", []string{"-m", "tbl-to-text", "-i", "a.tbl", "-l", "70000"}, ""},
		{"unknown flag", []string{"--bogus"}, ""},
		{"positional argument", []string{"-m", "analyse", "-i", "a.tbl", "extra"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCommand(t, tt.args...)
			require.Error(t, err)
			if tt.name == "positional argument" {
				return
			}
			requireExitCode(t, err, ExitCodeUsage, tt.msg)
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand(&out, &out)
	require.NoError(t, cmd.ParseFlags([]string{"-m", "tbl-to-text", "-i", "a.tbl"}))

	f := &flags{}
	f.mode, _ = cmd.Flags().GetString("mode")
	f.input, _ = cmd.Flags().GetString("input")
	f.charMode, _ = cmd.Flags().GetString("control-character-mode")
	f.charset, _ = cmd.Flags().GetString("charset")
	f.sliceStrategy, _ = cmd.Flags().GetString("slice-strategy")
	f.logLevel, _ = cmd.Flags().GetString("log-level")

	cfg, err := f.config(cmd)
	require.NoError(t, err)
	require.Equal(t, format.ModeTblToText, cfg.Mode)
	require.Equal(t, format.CharModeDecimal, cfg.CharMode)
	require.Equal(t, format.CharsetLatin1, cfg.Charset)
	require.Equal(t, format.SliceByOffset, cfg.SliceStrategy)
	require.False(t, cfg.HasLine)
}

func TestTableToTextStdout(t *testing.T) {
	// count=2, offsets 6 and 9: "Hi\x00", "Yo\x00"
	data := []byte{2, 0, 6, 0, 9, 0, 'H', 'i', 0, 'Y', 'o', 0}
	input := writeFile(t, "in.tbl", data)

	stdout, _, err := runCommand(t, "-m", "tbl-to-text", "-i", input)
	require.NoError(t, err)
	require.Equal(t, "Hi<0>\nYo<0>\n", stdout)

	stdout, _, err = runCommand(t, "-m", "tbl-to-text", "-i", input, "-l", "1", "-c", "hexadecimal")
	require.NoError(t, err)
	require.Equal(t, "Yo<00>\n", stdout)

	stdout, _, err = runCommand(t, "-m", "tbl-to-text", "-i", input, "-l", "5")
	require.NoError(t, err)
	require.Empty(t, stdout)

	stdout, _, err = runCommand(t, "-m", "tbl-to-text", "-i", input, "--slice-strategy", "nullscan")
	require.NoError(t, err)
	require.Equal(t, "Hi\nYo\n", stdout)
}

func TestTextToTableWarnsOnUnterminated(t *testing.T) {
	input := writeFile(t, "in.txt", []byte("Hello<0>\nWorld\n"))
	output := filepath.Join(t.TempDir(), "out.tbl")

	stdout, stderr, err := runCommand(t, "-m", "text-to-tbl", "-i", input, "-o", output)
	require.NoError(t, err)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "not properly null-terminated")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, []byte{2, 0, 6, 0, 12, 0, 'H', 'e', 'l', 'l', 'o', 0, 'W', 'o', 'r', 'l', 'd'}, data)

	_, stderr, err = runCommand(t, "-m", "text-to-tbl", "-i", input, "-o", output, "--log-level", "error")
	require.NoError(t, err)
	require.Empty(t, stderr)
}

func TestAnalyse(t *testing.T) {
	input := writeFile(t, "tiny.tbl", []byte{1})

	stdout, _, err := runCommand(t, "-m", "analyse", "-i", input)
	require.NoError(t, err)
	require.Contains(t, stdout, "too small")

	input = writeFile(t, "ok.tbl", []byte{1, 0, 4, 0, 'A', 0})
	stdout, _, err = runCommand(t, "-m", "analyze", "-i", input)
	require.NoError(t, err)
	require.Contains(t, stdout, "Number of entries: 1")
	require.Contains(t, stdout, "All strings appear to be correctly null terminated.")
}

func TestFormatErrorIsNotUsageError(t *testing.T) {
	input := writeFile(t, "bad.tbl", []byte{5, 0, 4, 0})

	_, _, err := runCommand(t, "-m", "tbl-to-text", "-i", input)
	require.Error(t, err)

	var exitErr *ExitError
	require.False(t, errors.As(err, &exitErr))
}

func TestMissingInputFile(t *testing.T) {
	_, _, err := runCommand(t, "-m", "tbl-to-text", "-i", filepath.Join(t.TempDir(), "missing.tbl"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read")
}

func TestShellCompletions(t *testing.T) {
	for _, shell := range Shells {
		t.Run(shell, func(t *testing.T) {
			stdout, _, err := runCommand(t, "--generate-shell-completions", shell)
			require.NoError(t, err)
			require.Contains(t, stdout, "gotbl")
		})
	}

	_, _, err := runCommand(t, "--generate-shell-completions", "tcsh")
	requireExitCode(t, err, ExitCodeUsage, "")
}
