package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// promptInt asks for an integer until the answer parses and passes validate.
// Rejected answers print the reason and prompt again; only end of input or a
// read error stops the loop.
func promptInt(scanner *bufio.Scanner, w io.Writer, prompt string, validate func(int) error) (int, error) {
	for {
		fmt.Fprintln(w, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		value, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		if err := validate(value); err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		return value, nil
	}
}

func newLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}
