// Package fs implements the file system side of uartship: reading the
// source text and appending received text to the output file.
package fs

import (
	"fmt"
	"os"
	"strings"
)

// newlines folds CRLF and lone CR line endings to LF.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// AppendFile implements ports.TextAppender for a path on disk.
// The file is opened, synced and closed on every append so that each
// chunk is durable before the next poll.
type AppendFile struct {
	path string
}

// NewAppendFile creates an AppendFile for path. The file is created on
// first append if it does not exist.
func NewAppendFile(path string) *AppendFile {
	return &AppendFile{path: path}
}

// Append writes text at the end of the file.
func (a *AppendFile) Append(text string) (err error) {
	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync output: %w", err)
	}
	return nil
}

// Path returns the output file path.
func (a *AppendFile) Path() string {
	return a.path
}

// ReadText returns the whole content of path as text with line endings
// normalized to "\n". A missing file is reported with an error satisfying errors.Is(err, os.ErrNotExist).
func ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return newlines.Replace(string(b)), nil
}
