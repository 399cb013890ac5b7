// Package files provides input-workbook discovery for the demand pipeline:
// listing candidate workbooks and selecting the most recent pipeline input
// in a directory.
package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	pipeerrors "demandcli/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	logger *slog.Logger
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{logger: logger}
}

// FindWorkbooks finds all Excel workbooks in the specified directory,
// sorted by modification time (oldest first). Excel lock files ("~$"
// prefixed) are skipped.
func (d *Discovery) FindWorkbooks(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// LatestWorkbook returns the most recently modified workbook in dir whose
// name starts with prefix. An empty prefix matches every workbook. Returns
// a NO_INPUT_FILE error when nothing matches.
func (d *Discovery) LatestWorkbook(dir, prefix string) (FileInfo, error) {
	files, err := d.FindWorkbooks(dir)
	if err != nil {
		return FileInfo{}, err
	}

	var latest *FileInfo
	for i := range files {
		if prefix != "" && !strings.HasPrefix(files[i].Name, prefix) {
			continue
		}
		if latest == nil || files[i].ModTime.After(latest.ModTime) {
			latest = &files[i]
		}
	}

	if latest == nil {
		return FileInfo{}, pipeerrors.Wrap(pipeerrors.ErrNoInputFile,
			pipeerrors.CodeNoInputFile,
			fmt.Sprintf("no workbook matching prefix %q in %s", prefix, dir))
	}

	d.logger.Info("input workbook selected",
		slog.String("path", latest.Path),
		slog.Time("mod_time", latest.ModTime))

	return *latest, nil
}
