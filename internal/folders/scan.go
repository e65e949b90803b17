package folders

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ScanMode selects what ScanFolder reports for each directory.
type ScanMode int

const (
	// ScanAll lists every regular file.
	ScanAll ScanMode = iota
	// ScanFirstPerDir lists only the first file of each directory.
	ScanFirstPerDir
)

func (m ScanMode) String() string {
	switch m {
	case ScanAll:
		return "all"
	case ScanFirstPerDir:
		return "first-per-dir"
	default:
		return fmt.Sprintf("ScanMode(%d)", int(m))
	}
}

// ScanFolder walks root top-down and returns base file names. Directories are
// visited in lexical order and each directory's files are listed before its
// subdirectories' files. Subdirectories that cannot be read are logged and skipped.
func ScanFolder(root string, mode ScanMode) ([]string, error) {
	// WalkDir reports root as given; filepath.Dir below always returns clean paths.
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("folders.ScanFolder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("folders.ScanFolder: %s: %w", root, errNotDir)
	}

	var order []string
	files := make(map[string][]string)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("skipping unreadable path", slog.String("path", path), slog.Any("error", err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			order = append(order, path)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		dir := filepath.Dir(path)
		files[dir] = append(files[dir], d.Name())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("folders.ScanFolder: %w", err)
	}

	result := []string{}
	for _, dir := range order {
		names := files[dir]
		if len(names) == 0 {
			continue
		}
		if mode == ScanFirstPerDir {
			result = append(result, names[0])
			continue
		}
		result = append(result, names...)
	}

	slog.Debug("folder scanned", slog.String("root", root), slog.String("mode", mode.String()), slog.Int("files", len(result)))
	return result, nil
}

var errNotDir = errors.New("not a directory")
