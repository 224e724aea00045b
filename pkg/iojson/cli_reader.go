package iojson

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader reads raw JSON input from the --file flag or from stdin.
type FileReader struct {
	path string
}

func (fr *FileReader) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.path,
	}
}

// SetDefault uses path when the --file flag was not given.
func (fr *FileReader) SetDefault(path string) {
	if fr.path == "" {
		fr.path = path
	}
}

// Source names the input for messages: the file path or "stdin".
func (fr *FileReader) Source() string {
	if fr.path == "" {
		return "stdin"
	}
	return fr.path
}

// Read returns the input bytes. Reading from a terminal is refused so the
// command does not hang waiting for input.
func (fr *FileReader) Read() ([]byte, error) {
	return fr.read(os.Stdin)
}

func (fr *FileReader) read(stdin *os.File) ([]byte, error) {
	if fr.path != "" {
		data, err := os.ReadFile(fr.path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return data, nil
	}

	if term.IsTerminal(int(stdin.Fd())) {
		return nil, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
