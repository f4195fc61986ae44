// Package reportfile decides where a profiling report lands and writes it
// there.
package reportfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultFilename is the report name used when none is configured.
const DefaultFilename = "performance.log"

// Reporter is anything that can serialize itself as a report.
type Reporter interface {
	WriteReport(w io.Writer) error
}

// DocumentsDir returns the user's documents directory as the desktop
// declares it: $XDG_DOCUMENTS_DIR, then user-dirs.dirs on Linux and the
// known folder on Windows and macOS. When that directory does not exist the
// home directory is used instead.
func DocumentsDir() (string, error) {
	// Pick up environment changes made since the last lookup.
	xdg.Reload()

	docs := xdg.UserDirs.Documents
	if docs != "" {
		if info, err := os.Stat(docs); err == nil && info.IsDir() {
			return docs, nil
		}
	}
	if xdg.Home == "" {
		return "", fmt.Errorf("resolve home directory: no home for user")
	}
	return xdg.Home, nil
}

// Path resolves filename against the documents directory. Absolute names
// are returned unchanged.
func Path(filename string) (string, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	if filepath.IsAbs(filename) {
		return filename, nil
	}

	dir, err := DocumentsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filename), nil
}

// Write creates path, including missing parent directories, and writes the
// report into it. The first error from writing, flushing or closing wins.
func Write(path string, r Reporter) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report file: %w", cerr)
		}
	}()

	buf := bufio.NewWriter(f)
	if err := r.WriteReport(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flush report file: %w", err)
	}
	return nil
}
