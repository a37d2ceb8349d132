// Package output names and writes generated contracts.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-xcmgen/pkg/params"
)

// DefaultExtension is used when no extension is configured.
const DefaultExtension = "sol"

// ErrExists is returned when the target file exists and overwriting is off.
var ErrExists = errors.New("output: file already exists")

// FileName returns "<ContractName>.<ext>", e.g. "MyCoolBridgeBridge.sol".
func FileName(p params.GenerationParameters, ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = DefaultExtension
	}
	return p.ContractName() + "." + ext
}

// Writer persists a rendered contract into Dir.
type Writer struct {
	Dir       string
	Extension string
	Overwrite bool
}

// Path returns the file the writer would produce for p.
func (w Writer) Path(p params.GenerationParameters) string {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, FileName(p, w.Extension))
}

// Write creates the output directory when needed and writes source to the
// file named after p. It returns the written path.
func (w Writer) Write(p params.GenerationParameters, source string) (string, error) {
	path := w.Path(p)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("output: create directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !w.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return path, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return "", fmt.Errorf("output: open %s: %w", path, err)
	}
	if _, err := f.WriteString(source); err != nil {
		f.Close()
		return "", fmt.Errorf("output: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("output: close %s: %w", path, err)
	}
	return path, nil
}
