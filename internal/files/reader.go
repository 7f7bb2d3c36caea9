package files

import (
	"bytes"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FSReader reads files from the local filesystem.
type FSReader struct{}

// ReadLines returns the file's lines without line terminators. CRLF endings
// and a leading UTF-8 byte order mark are removed.
func (FSReader) ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(string(bytes.TrimPrefix(data, utf8BOM))), nil
}

// SplitLines splits text on '\n' and drops a trailing '\r' from each line.
// A final newline does not produce an empty last line.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
