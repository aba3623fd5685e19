package fs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxTextFileSize bounds the size of an import file.
const MaxTextFileSize = 4 << 20

var (
	// ErrWrongExtension is returned when a file does not carry the expected extension.
	ErrWrongExtension = errors.New("wrong file extension")
	// ErrNotText is returned for files that are not UTF-8 text.
	ErrNotText = errors.New("file is not UTF-8 text")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTextFile reads a UTF-8 text file whose name ends in ext (for example
// ".txt"). The extension is matched exactly, so "CATS.TXT" is rejected,
// and is checked before the file is opened. A leading byte order mark is dropped.
func ReadTextFile(path string, ext string) (string, error) {
	if !strings.HasSuffix(filepath.Base(path), ext) {
		return "", fmt.Errorf("%w: %s (want %s)", ErrWrongExtension, filepath.Base(path), ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("not a regular file: %s", path)
	}
	if info.Size() > MaxTextFileSize {
		return "", fmt.Errorf("file too large: %s (%d bytes, max %d)", path, info.Size(), MaxTextFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrNotText, filepath.Base(path))
	}
	return string(data), nil
}
