package main

import (
	"fmt"
	"io"
	"os"
)

// getInputReader handles the 3 modes of input:
// 1. Explicit stdin with -f -
// 2. Piped input (auto-detected when no file is given)
// 3. File input
func getInputReader(stdin io.Reader, file string) (io.Reader, func() error, error) {
	noop := func() error { return nil }

	// Mode 1: Explicit stdin
	if file == "-" {
		return stdin, noop, nil
	}

	// Mode 2: Piped input when no file is given
	if file == "" {
		if hasPipedInput(stdin) {
			return stdin, noop, nil
		}
		return nil, nil, &CLIError{
			Type:    "input",
			Message: "no input",
			Hint:    "pass -f <file>, -f - or pipe notation lines to stdin",
		}
	}

	// Mode 3: File input
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening file %s: %w", file, err)
	}
	return f, f.Close, nil
}

// hasPipedInput detects if there's data piped to stdin. Readers that are
// not files, as in tests, count as piped.
func hasPipedInput(stdin io.Reader) bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return stdin != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	// Note: We don't check Size() > 0 because pipes may not report size correctly
	return (stat.Mode() & os.ModeCharDevice) == 0
}
