// Package fsutil provides the file handling shared by the conversion commands.
package fsutil

import (
	"fmt"
	"io"
	"os"
)

// ReadFile reads the whole file at path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	return data, nil
}

// OpenFile opens the file at path for reading.
func OpenFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	return f, nil
}

// OpenSink returns the destination for converted output. An empty path selects fallback,
// which is not closed by the returned sink; any other path is created or truncated.
func OpenSink(path string, fallback io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{fallback}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return f, nil
}

// WriteFile writes data to path through OpenSink and closes it, reporting the first error.
func WriteFile(path string, data []byte) (err error) {
	sink, err := OpenSink(path, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	if _, err := sink.Write(data); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
