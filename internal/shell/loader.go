package shell

import (
	"bufio"
	"fmt"
	"os"
)

// SourceLoader loads exactly two lines of raw text from an opaque reference.
// Implementations must release any underlying handle before returning, on
// every exit path.
type SourceLoader interface {
	Load(ref string) (first, second string, err error)
}

// FileLoader loads two-line sources from filesystem paths.
type FileLoader struct{}

// Load opens the file at path and reads its first two lines.
//
// The first line is required; a file without a second line yields an empty
// second line, so a planet file with no obstacle row stays valid. The handle
// is closed via defer on every path, including read failures.
func (FileLoader) Load(path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open source %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", "", fmt.Errorf("read source %s: %w", path, err)
		}
		return "", "", fmt.Errorf("source %s: empty file, expected two lines", path)
	}
	first := scanner.Text()

	var second string
	if scanner.Scan() {
		second = scanner.Text()
	} else if err := scanner.Err(); err != nil {
		return "", "", fmt.Errorf("read source %s: %w", path, err)
	}

	return first, second, nil
}
