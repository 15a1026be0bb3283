// Package cli turns command-line arguments into one call of the gotbl conversion or
// analysis functions. It owns flag parsing, flag-combination checks, logger setup, shell
// completion scripts and exit codes.
package cli
